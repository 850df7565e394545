package hierarchy

import "encoding/json"

// SyntheticRootName names the virtual root that groups several top-level
// employees into one chart.
const SyntheticRootName = "Organization"

// Node is one box of the org chart. Its JSON form is the chart description
// consumed by the renderer.
type Node struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Children []*Node `json:"children"`
	// SecondaryManagers lists dotted-line managers by name.
	SecondaryManagers []string `json:"secondary_managers,omitempty"`
}

func NewNode(name, title string) *Node {
	return &Node{Name: name, Title: title, Children: []*Node{}}
}

// IsSynthetic reports whether n is the virtual "Organization" root. Real
// employees always carry a non-empty title, so the empty title is decisive.
func (n *Node) IsSynthetic() bool {
	return n != nil && n.Name == SyntheticRootName && n.Title == ""
}

// Walk visits n and its descendants in pre-order. A node reachable twice is
// visited once.
func (n *Node) Walk(fn func(node, parent *Node, depth int)) {
	if n == nil {
		return
	}
	visited := map[*Node]struct{}{}
	var walk func(node, parent *Node, depth int)
	walk = func(node, parent *Node, depth int) {
		if _, ok := visited[node]; ok {
			return
		}
		visited[node] = struct{}{}
		fn(node, parent, depth)
		for _, child := range node.Children {
			if child != nil {
				walk(child, node, depth+1)
			}
		}
	}
	walk(n, nil, 0)
}

// Size counts the nodes of the tree rooted at n, including n.
func (n *Node) Size() int {
	count := 0
	n.Walk(func(*Node, *Node, int) { count++ })
	return count
}

// MarshalTree encodes root as chart JSON. The empty tree encodes as {}.
func MarshalTree(root *Node) ([]byte, error) {
	if root == nil {
		return []byte(`{}`), nil
	}
	return json.Marshal(root)
}

// UnmarshalTree decodes chart JSON produced by MarshalTree. {} and null
// decode to the empty tree.
func UnmarshalTree(b []byte) (*Node, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	var root Node
	if err := json.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	root.Walk(func(node, _ *Node, _ int) {
		if node.Children == nil {
			node.Children = []*Node{}
		}
	})
	return &root, nil
}
