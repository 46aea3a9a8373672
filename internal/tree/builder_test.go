package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/tree"
)

func dept(id int64, name string, parent ...int64) domain.DepartmentRecord {
	rec := domain.DepartmentRecord{ID: id, Name: name}
	if len(parent) > 0 {
		rec.Parent = domain.Ref{ID: parent[0], Set: true}
	}
	return rec
}

func ids(nodes []*domain.TreeNode) []int64 {
	out := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func collect(root *domain.TreeNode) map[int64]*domain.TreeNode {
	out := map[int64]*domain.TreeNode{}
	tree.Walk(root, func(n *domain.TreeNode) bool {
		out[n.ID] = n
		return true
	})
	return out
}

func TestBuild_ThreeLevelChain(t *testing.T) {
	root := tree.Build([]domain.DepartmentRecord{
		dept(1, "Co"),
		dept(2, "Dept A", 1),
		dept(3, "Team A1", 2),
	})

	require.NotNil(t, root)
	require.Equal(t, int64(1), root.ID)
	require.Equal(t, 1, root.Level)
	require.Len(t, root.Children, 1)

	a := root.Children[0]
	require.Equal(t, int64(2), a.ID)
	require.Equal(t, 2, a.Level)
	require.Len(t, a.Children, 1)

	a1 := a.Children[0]
	require.Equal(t, int64(3), a1.ID)
	require.Equal(t, "Team A1", a1.Name)
	require.Equal(t, 3, a1.Level)
	require.Empty(t, a1.Children)
}

func TestBuild_NoRootReturnsNil(t *testing.T) {
	root, report := tree.BuildWithReport([]domain.DepartmentRecord{dept(10, "Orphan", 20)})
	require.Nil(t, root)
	require.Equal(t, 0, report.RootCandidates)
	require.Equal(t, []int64{10}, report.UnresolvedParents)
	require.Equal(t, []int64{10}, report.Unreachable)
}

func TestBuild_EmptyInput(t *testing.T) {
	require.Nil(t, tree.Build(nil))
}

func TestBuild_ChildrenKeepInputOrder(t *testing.T) {
	root := tree.Build([]domain.DepartmentRecord{
		dept(5, "C", 1),
		dept(3, "A", 1),
		dept(1, "Root"),
		dept(4, "B", 1),
		dept(7, "A-2", 3),
		dept(6, "A-1", 3),
	})

	require.NotNil(t, root)
	require.Equal(t, []int64{5, 3, 4}, ids(root.Children))
	require.Equal(t, []int64{7, 6}, ids(root.Children[1].Children))
}

func TestBuild_LevelIsParentPlusOne(t *testing.T) {
	records := []domain.DepartmentRecord{dept(1, "Root")}
	for id := int64(2); id <= 40; id++ {
		records = append(records, dept(id, "n", id/2))
	}

	root := tree.Build(records)
	require.NotNil(t, root)

	nodes := collect(root)
	require.Len(t, nodes, 40)
	for _, n := range nodes {
		for _, c := range n.Children {
			require.Equal(t, n.Level+1, c.Level)
		}
	}
}

func TestBuild_UnresolvedParentIsDropped(t *testing.T) {
	root, report := tree.BuildWithReport([]domain.DepartmentRecord{
		dept(1, "Root"),
		dept(2, "Ok", 1),
		dept(3, "Lost", 99),
		dept(4, "Under lost", 3),
	})

	require.NotNil(t, root)
	nodes := collect(root)
	require.Contains(t, nodes, int64(2))
	require.NotContains(t, nodes, int64(3))
	require.NotContains(t, nodes, int64(4))
	require.Equal(t, []int64{3}, report.UnresolvedParents)
	require.Equal(t, []int64{3, 4}, report.Unreachable)
	require.Equal(t, 2, report.Reachable)
}

func TestBuild_CycleIsOmittedAndTerminates(t *testing.T) {
	root, report := tree.BuildWithReport([]domain.DepartmentRecord{
		dept(1, "Root"),
		dept(2, "A", 3),
		dept(3, "B", 2),
		dept(4, "Self", 4),
		dept(5, "Fine", 1),
	})

	require.NotNil(t, root)
	require.Equal(t, []int64{5}, ids(root.Children))
	require.Len(t, collect(root), 2)
	require.Equal(t, []int64{2, 3, 4}, report.Unreachable)
	require.Empty(t, report.UnresolvedParents)
}

func TestBuild_LastRootCandidateWins(t *testing.T) {
	root, report := tree.BuildWithReport([]domain.DepartmentRecord{
		dept(1, "First"),
		dept(2, "Under first", 1),
		dept(3, "Second"),
		dept(4, "Under second", 3),
	})

	require.NotNil(t, root)
	require.Equal(t, int64(3), root.ID)
	require.Equal(t, []int64{4}, ids(root.Children))
	require.Equal(t, 2, report.RootCandidates)
	require.Equal(t, []int64{1, 2}, report.Unreachable)
}

func TestBuild_DuplicateIDKeepsFirstRecord(t *testing.T) {
	root, report := tree.BuildWithReport([]domain.DepartmentRecord{
		dept(1, "Root"),
		dept(2, "Original", 1),
		dept(2, "Duplicate", 1),
	})

	require.NotNil(t, root)
	require.Len(t, root.Children, 1)
	require.Equal(t, "Original", root.Children[0].Name)
	require.Equal(t, []int64{2}, report.Duplicates)
}

func TestBuild_CopiesAttributesWithoutAliasing(t *testing.T) {
	records := []domain.DepartmentRecord{{
		ID:                1,
		Name:              "Root",
		Code:              "RT",
		PrimaryDepartment: true,
		HeadDepartment:    true,
		ApproveManagers:   domain.ManagerIDs{7, 8},
	}}

	root := tree.Build(records)
	require.NotNil(t, root)
	require.Equal(t, "RT", root.Code)
	require.True(t, root.PrimaryDepartment)
	require.True(t, root.HeadDepartment)
	require.Equal(t, []int64{7, 8}, root.ApproveManagers)

	root.ApproveManagers[0] = 100
	require.Equal(t, int64(7), records[0].ApproveManagers[0])
}

func TestBuild_DeepChainDoesNotRecurse(t *testing.T) {
	const depth = 100000
	records := make([]domain.DepartmentRecord, 0, depth)
	records = append(records, dept(1, "Root"))
	for id := int64(2); id <= depth; id++ {
		records = append(records, dept(id, "n", id-1))
	}

	root := tree.Build(records)
	require.NotNil(t, root)

	deepest := 0
	tree.Walk(root, func(n *domain.TreeNode) bool {
		if n.Level > deepest {
			deepest = n.Level
		}
		return true
	})
	require.Equal(t, depth, deepest)
}

func TestWalk_StopsEarly(t *testing.T) {
	root := tree.Build([]domain.DepartmentRecord{
		dept(1, "Root"),
		dept(2, "A", 1),
		dept(3, "B", 1),
	})

	var seen []int64
	tree.Walk(root, func(n *domain.TreeNode) bool {
		seen = append(seen, n.ID)
		return n.ID != 2
	})
	require.Equal(t, []int64{1, 2}, seen)
}
