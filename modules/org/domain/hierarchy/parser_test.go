package hierarchy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

func TestParse_SingleLineIsRoot(t *testing.T) {
	root, err := hierarchy.Parse("Alice, CEO")
	require.NoError(t, err)
	require.Equal(t, hierarchy.NewNode("Alice", "CEO"), root)
}

func TestParse_SingleChain(t *testing.T) {
	root, err := hierarchy.Parse("Alice, CEO\nBob, CTO, Alice\nCarol, Engineer, Bob")
	require.NoError(t, err)
	require.False(t, root.IsSynthetic())
	require.Equal(t, "Alice", root.Name)
	require.Len(t, root.Children, 1)
	require.Equal(t, "Bob", root.Children[0].Name)
	require.Len(t, root.Children[0].Children, 1)
	require.Equal(t, "Carol", root.Children[0].Children[0].Name)
	require.Empty(t, root.Children[0].Children[0].Children)
}

func TestParse_TwoChainsUnderSyntheticRoot(t *testing.T) {
	res, err := hierarchy.ParseWithReport("Alice, CEO\nBob, CTO, Alice\nDan, Chair\nEve, Secretary, Dan")
	require.NoError(t, err)

	root := res.Root
	require.True(t, root.IsSynthetic())
	require.Equal(t, hierarchy.SyntheticRootName, root.Name)
	require.Equal(t, "", root.Title)
	require.Len(t, root.Children, 2)
	require.Equal(t, "Alice", root.Children[0].Name)
	require.Equal(t, "Dan", root.Children[1].Name)
	require.Equal(t, "Bob", root.Children[0].Children[0].Name)
	require.Equal(t, "Eve", root.Children[1].Children[0].Name)

	require.True(t, res.Report.Synthetic)
	require.Equal(t, 2, res.Report.RootCandidates)
	require.Equal(t, 4, res.Report.Employees)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n\t\n"} {
		res, err := hierarchy.ParseWithReport(text)
		require.NoError(t, err)
		require.Nil(t, res.Root)
		require.Zero(t, res.Report.Employees)
		require.Zero(t, res.Report.Lines)
	}
}

func TestParse_ManagerDefinedLater(t *testing.T) {
	root, err := hierarchy.Parse("Bob, CTO, Alice\nAlice, CEO")
	require.NoError(t, err)
	require.Equal(t, "Alice", root.Name)
	require.Equal(t, "Bob", root.Children[0].Name)
}

func TestParse_DropsMalformedLines(t *testing.T) {
	text := "Alice, CEO\nBob\n, Title only\nCarol, \nDan, Engineer, Alice, extra"
	res, err := hierarchy.ParseWithReport(text)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4}, res.Report.Dropped)
	require.Equal(t, 2, res.Report.Records)
	require.Equal(t, 5, res.Report.Lines)

	var names []string
	res.Root.Walk(func(n, _ *hierarchy.Node, _ int) { names = append(names, n.Name) })
	require.Equal(t, []string{"Alice", "Dan"}, names)
}

func TestParse_DanglingManagerBecomesRoot(t *testing.T) {
	res, err := hierarchy.ParseWithReport("Alice, CEO\nBob, CTO, Zed\nCarol, CFO, Zed")
	require.NoError(t, err)
	require.True(t, res.Root.IsSynthetic())
	require.Len(t, res.Root.Children, 3)
	require.Equal(t, []string{"Zed"}, res.Report.DanglingManagers)
}

func TestParse_Cycles(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		cycle []string
	}{
		{name: "self", text: "Alice, CEO, Alice", cycle: []string{"Alice", "Alice"}},
		{name: "two hops", text: "Alice, CEO, Bob\nBob, CTO, Alice", cycle: []string{"Alice", "Bob", "Alice"}},
		{
			name:  "behind a root",
			text:  "Root, CEO\nA, VP, Root\nB, Dir, C\nC, Dir, D\nD, Dir, B",
			cycle: []string{"B", "C", "D", "B"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := hierarchy.Parse(tc.text)
			require.Nil(t, root)
			require.ErrorIs(t, err, hierarchy.ErrCyclicHierarchy)

			var cyc *hierarchy.CyclicHierarchyError
			require.True(t, errors.As(err, &cyc))
			require.Equal(t, tc.cycle, cyc.Cycle)
		})
	}
}

func TestParse_DuplicatePolicy(t *testing.T) {
	text := "Alice, CEO\nBob, CTO, Alice\nBob, Chief Architect, Alice"

	t.Run("first wins by default", func(t *testing.T) {
		res, err := hierarchy.ParseWithReport(text)
		require.NoError(t, err)
		require.Equal(t, "CTO", res.Root.Children[0].Title)
		require.Len(t, res.Root.Children, 1)
		require.Equal(t, []string{"Bob"}, res.Report.Duplicates)
		require.Equal(t, "first", res.Report.Policy)
	})

	t.Run("last wins overwrites title", func(t *testing.T) {
		res, err := hierarchy.ParseWithReport(text, hierarchy.WithDuplicatePolicy(hierarchy.LastWins))
		require.NoError(t, err)
		require.Equal(t, "Chief Architect", res.Root.Children[0].Title)
		require.Len(t, res.Root.Children, 1)
		require.Equal(t, "last", res.Report.Policy)
	})
}

func TestParse_SecondaryManagers(t *testing.T) {
	text := "Alice, CEO\nBob, CTO, Alice\nCarol, CFO, Alice\nDan, Engineer, Bob\nDan, Engineer, Carol"
	res, err := hierarchy.ParseWithReport(text)
	require.NoError(t, err)

	bob := res.Root.Children[0]
	require.Equal(t, "Dan", bob.Children[0].Name)
	require.Equal(t, []string{"Carol"}, bob.Children[0].SecondaryManagers)
	require.Empty(t, res.Root.Children[1].Children)
	require.Equal(t, 1, res.Report.SecondaryLinks)
}

func TestParse_DuplicateLaterResolvesManager(t *testing.T) {
	root, err := hierarchy.Parse("Alice, CEO\nBob, CTO\nBob, CTO, Alice")
	require.NoError(t, err)
	require.False(t, root.IsSynthetic())
	require.Equal(t, "Bob", root.Children[0].Name)
}

func TestParseDuplicatePolicy(t *testing.T) {
	p, err := hierarchy.ParseDuplicatePolicy(" Last ")
	require.NoError(t, err)
	require.Equal(t, hierarchy.LastWins, p)

	p, err = hierarchy.ParseDuplicatePolicy("")
	require.NoError(t, err)
	require.Equal(t, hierarchy.FirstWins, p)

	_, err = hierarchy.ParseDuplicatePolicy("newest")
	require.Error(t, err)
}
