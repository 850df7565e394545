package hierarchy

// NoManager marks an entry without a resolved primary manager.
const NoManager = -1

// Entry is one unique employee in the arena. Manager references are indices
// into the same arena.
type Entry struct {
	Name  string
	Title string
	// Line is the first line that mentions the name.
	Line int
	// Manager is the primary manager: the first line for this name whose
	// manager field resolved.
	Manager int
	// Secondary holds further distinct managers named on later lines.
	Secondary []int

	children []int
}

// Graph is the name-indexed arena built from a set of records.
type Graph struct {
	entries []Entry
	byName  map[string]int

	duplicates []string
	dangling   []string
}

// BuildGraph runs both passes over records: register every name, then
// resolve manager references against the full set of names.
func BuildGraph(records []Record, opts ...Option) *Graph {
	o := buildOptions(opts)
	g := &Graph{byName: make(map[string]int, len(records))}

	seenDup := map[string]struct{}{}
	for _, rec := range records {
		if i, ok := g.byName[rec.Name]; ok {
			if _, reported := seenDup[rec.Name]; !reported {
				seenDup[rec.Name] = struct{}{}
				g.duplicates = append(g.duplicates, rec.Name)
			}
			if o.policy == LastWins {
				g.entries[i].Title = rec.Title
			}
			continue
		}
		g.byName[rec.Name] = len(g.entries)
		g.entries = append(g.entries, Entry{
			Name:    rec.Name,
			Title:   rec.Title,
			Line:    rec.Line,
			Manager: NoManager,
		})
	}

	seenDangling := map[string]struct{}{}
	for _, rec := range records {
		if !rec.HasManager() {
			continue
		}
		mgr, ok := g.byName[rec.Manager]
		if !ok {
			if _, reported := seenDangling[rec.Manager]; !reported {
				seenDangling[rec.Manager] = struct{}{}
				g.dangling = append(g.dangling, rec.Manager)
			}
			continue
		}
		g.link(g.byName[rec.Name], mgr)
	}
	return g
}

func (g *Graph) link(emp, mgr int) {
	e := &g.entries[emp]
	switch {
	case e.Manager == NoManager:
		e.Manager = mgr
		g.entries[mgr].children = append(g.entries[mgr].children, emp)
	case e.Manager == mgr:
	default:
		for _, s := range e.Secondary {
			if s == mgr {
				return
			}
		}
		e.Secondary = append(e.Secondary, mgr)
	}
}

func (g *Graph) Len() int {
	return len(g.entries)
}

// Entry returns a copy of the i-th employee in first-occurrence order.
func (g *Graph) Entry(i int) Entry {
	e := g.entries[i]
	e.Secondary = append([]int(nil), e.Secondary...)
	e.children = nil
	return e
}

func (g *Graph) Lookup(name string) (int, bool) {
	i, ok := g.byName[name]
	return i, ok
}

// Roots returns the root candidates in first-occurrence order.
func (g *Graph) Roots() []int {
	var roots []int
	for i, e := range g.entries {
		if e.Manager == NoManager {
			roots = append(roots, i)
		}
	}
	return roots
}

// Duplicates lists names that appear on more than one line.
func (g *Graph) Duplicates() []string {
	return append([]string(nil), g.duplicates...)
}

// DanglingManagers lists manager names that never appear as an employee.
func (g *Graph) DanglingManagers() []string {
	return append([]string(nil), g.dangling...)
}

// CheckCycles follows every primary manager chain and fails on the first one
// that revisits an employee, including self-references.
func (g *Graph) CheckCycles() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(g.entries))
	for start := range g.entries {
		if state[start] != unvisited {
			continue
		}
		var path []int
		cur := start
		for cur != NoManager && state[cur] == unvisited {
			state[cur] = visiting
			path = append(path, cur)
			cur = g.entries[cur].Manager
		}
		if cur != NoManager && state[cur] == visiting {
			var cycle []string
			for i := len(path) - 1; i >= 0; i-- {
				if path[i] == cur {
					for _, p := range path[i:] {
						cycle = append(cycle, g.entries[p].Name)
					}
					break
				}
			}
			cycle = append(cycle, g.entries[cur].Name)
			return &CyclicHierarchyError{Cycle: cycle}
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

// Nodes materialises one *Node per entry with children linked in input order.
// The graph must be acyclic; call CheckCycles first.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.entries))
	for i, e := range g.entries {
		nodes[i] = NewNode(e.Name, e.Title)
	}
	for i, e := range g.entries {
		for _, c := range e.children {
			nodes[i].Children = append(nodes[i].Children, nodes[c])
		}
		for _, s := range e.Secondary {
			nodes[i].SecondaryManagers = append(nodes[i].SecondaryManagers, g.entries[s].Name)
		}
	}
	return nodes
}
