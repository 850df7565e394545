package hierarchy

// Normalize guarantees a single root: nil for no candidates, the candidate
// itself when there is one, otherwise a synthetic root holding all of them in
// order.
func Normalize(candidates []*Node) *Node {
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}
	root := NewNode(SyntheticRootName, "")
	root.Children = append(root.Children, candidates...)
	return root
}
