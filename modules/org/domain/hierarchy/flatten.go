package hierarchy

import "strings"

// Flatten walks the tree depth-first and emits one record per employee with
// its parent's name as manager. The synthetic root is not emitted; its
// children come out without a manager. Dotted-line managers follow as extra
// records for the same employee.
func Flatten(root *Node) []Record {
	if root == nil {
		return nil
	}
	var out []Record
	root.Walk(func(node, parent *Node, _ int) {
		if node.IsSynthetic() {
			return
		}
		rec := Record{Line: len(out) + 1, Name: node.Name, Title: node.Title}
		if parent != nil && !parent.IsSynthetic() {
			rec.Manager = parent.Name
		}
		out = append(out, rec)
		for _, m := range node.SecondaryManagers {
			out = append(out, Record{Line: len(out) + 1, Name: node.Name, Title: node.Title, Manager: m})
		}
	})
	return out
}

// FormatLines renders records back into the "Name, Title[, Manager]" text
// accepted by Parse.
func FormatLines(records []Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Name)
		b.WriteString(", ")
		b.WriteString(r.Title)
		if r.Manager != "" {
			b.WriteString(", ")
			b.WriteString(r.Manager)
		}
	}
	return b.String()
}
