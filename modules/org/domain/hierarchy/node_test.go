package hierarchy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

func TestMarshalTree(t *testing.T) {
	b, err := hierarchy.MarshalTree(nil)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(b))

	root, err := hierarchy.Parse("Alice, CEO\nBob, CTO, Alice")
	require.NoError(t, err)
	b, err = hierarchy.MarshalTree(root)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Alice","title":"CEO","children":[{"name":"Bob","title":"CTO","children":[]}]}`, string(b))
}

func TestUnmarshalTree(t *testing.T) {
	for _, empty := range []string{`{}`, `null`} {
		root, err := hierarchy.UnmarshalTree([]byte(empty))
		require.NoError(t, err)
		require.Nil(t, root)
	}

	root, err := hierarchy.UnmarshalTree([]byte(`{"name":"A","title":"CEO","children":[{"name":"B","title":"CTO"}]}`))
	require.NoError(t, err)
	require.Equal(t, "B", root.Children[0].Name)
	require.NotNil(t, root.Children[0].Children)
	require.Equal(t, 2, root.Size())

	_, err = hierarchy.UnmarshalTree([]byte(`[1,2]`))
	require.Error(t, err)
}

func TestNode_WalkDepth(t *testing.T) {
	root, err := hierarchy.Parse("A, CEO\nB, CTO, A\nC, Dev, B\nD, CFO, A")
	require.NoError(t, err)

	depths := map[string]int{}
	root.Walk(func(n, _ *hierarchy.Node, depth int) { depths[n.Name] = depth })
	require.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "D": 1}, depths)
}

func TestGraph_Lookup(t *testing.T) {
	records, _ := hierarchy.Scan("A, CEO\nB, CTO, A\nB, CTO, C\nC, CFO, A")
	g := hierarchy.BuildGraph(records)
	require.Equal(t, 3, g.Len())

	b, ok := g.Lookup("B")
	require.True(t, ok)
	a, _ := g.Lookup("A")
	c, _ := g.Lookup("C")
	entry := g.Entry(b)
	require.Equal(t, a, entry.Manager)
	require.Equal(t, []int{c}, entry.Secondary)
	require.Equal(t, []int{a}, g.Roots())

	_, ok = g.Lookup("Z")
	require.False(t, ok)
}
