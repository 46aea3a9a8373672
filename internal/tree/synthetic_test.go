package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/tree"
)

func TestWithCompanyRoot_AdoptsTopLevelRecords(t *testing.T) {
	company := domain.NewRef(1, "Seatek")
	records := []domain.DepartmentRecord{
		{ID: 10, Name: "Sales", Company: company},
		{ID: 11, Name: "Finance", Company: company},
		{ID: 12, Name: "Sales East", Company: company, Parent: domain.NewRef(10, "Sales")},
	}

	prepared, err := tree.WithCompanyRoot(records)
	require.NoError(t, err)
	require.Len(t, prepared, 4)

	root := tree.Build(prepared)
	require.NotNil(t, root)
	require.Equal(t, domain.SyntheticRootID, root.ID)
	require.Equal(t, "Seatek", root.Name)
	require.True(t, root.Synthetic)
	require.Equal(t, 1, root.Level)

	require.Equal(t, []int64{10, 11}, ids(root.Children))
	for _, child := range root.Children {
		require.Equal(t, 2, child.Level)
		require.False(t, child.Synthetic)
	}
	require.Equal(t, 3, root.Children[0].Children[0].Level)
}

func TestWithCompanyRoot_DoesNotMutateInput(t *testing.T) {
	records := []domain.DepartmentRecord{{ID: 10, Name: "Sales", ApproveManagers: domain.ManagerIDs{1}}}

	prepared, err := tree.WithCompanyRoot(records)
	require.NoError(t, err)

	require.True(t, records[0].Parent.IsZero())
	prepared[0].ApproveManagers[0] = 9
	require.Equal(t, int64(1), records[0].ApproveManagers[0])
}

func TestWithCompanyRoot_Empty(t *testing.T) {
	prepared, err := tree.WithCompanyRoot(nil)
	require.NoError(t, err)
	require.Empty(t, prepared)
	require.Nil(t, tree.Build(prepared))
}

func TestWithCompanyRoot_RejectsSentinelCollision(t *testing.T) {
	_, err := tree.WithCompanyRoot([]domain.DepartmentRecord{{ID: domain.SyntheticRootID, Name: "Clash"}})
	require.ErrorIs(t, err, domain.ErrSentinelCollision)
}
