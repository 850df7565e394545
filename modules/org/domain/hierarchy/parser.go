package hierarchy

// Report describes what the parser did with the submitted text.
type Report struct {
	// Lines counts non-blank input lines.
	Lines int `json:"lines"`
	// Records counts lines that carried a name and a title.
	Records int `json:"records"`
	// Employees counts unique names.
	Employees int `json:"employees"`
	// Dropped holds 1-based numbers of lines skipped as malformed.
	Dropped          []int    `json:"dropped,omitempty"`
	Duplicates       []string `json:"duplicates,omitempty"`
	DanglingManagers []string `json:"dangling_managers,omitempty"`
	RootCandidates   int      `json:"root_candidates"`
	SecondaryLinks   int      `json:"secondary_links"`
	Synthetic        bool     `json:"synthetic_root"`
	Policy           string   `json:"duplicate_policy"`
}

type Result struct {
	Root   *Node
	Report Report
}

// Parse converts "Name, Title[, Manager]" lines into a single-rooted tree.
// Empty or whitespace-only text yields a nil tree and no error.
func Parse(text string, opts ...Option) (*Node, error) {
	res, err := ParseWithReport(text, opts...)
	if err != nil {
		return nil, err
	}
	return res.Root, nil
}

func ParseWithReport(text string, opts ...Option) (*Result, error) {
	o := buildOptions(opts)
	records, dropped := Scan(text)

	res := &Result{Report: Report{
		Lines:   len(records) + len(dropped),
		Records: len(records),
		Dropped: dropped,
		Policy:  o.policy.String(),
	}}
	if len(records) == 0 {
		return res, nil
	}

	g := BuildGraph(records, opts...)
	if err := g.CheckCycles(); err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	roots := g.Roots()
	candidates := make([]*Node, 0, len(roots))
	for _, i := range roots {
		candidates = append(candidates, nodes[i])
	}
	for i := 0; i < g.Len(); i++ {
		res.Report.SecondaryLinks += len(g.entries[i].Secondary)
	}

	res.Root = Normalize(candidates)
	res.Report.Employees = g.Len()
	res.Report.Duplicates = g.Duplicates()
	res.Report.DanglingManagers = g.DanglingManagers()
	res.Report.RootCandidates = len(candidates)
	res.Report.Synthetic = res.Root.IsSynthetic()
	return res, nil
}
