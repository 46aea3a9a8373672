package repository

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/org-chart-api/internal/config"
	"github.com/org-chart-api/internal/domain"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Connect(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "orgchart.db"),
	}, 1)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(sqlDB, "sqlite"))
	return db
}

func int64Ptr(v int64) *int64 {
	return &v
}

func formatManagerIDs(ids domain.ManagerIDs) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func TestDepartmentRepository_ListOrdersBySequence(t *testing.T) {
	db := setupDB(t)

	rows := []departmentRow{
		{ID: 3, Name: "Team", ParentID: int64Ptr(2), ParentName: "IT", CompanyID: int64Ptr(1), CompanyName: "Seatek", Sequence: 2},
		{ID: 1, Name: "Board", SortName: "BRD", PrimaryDepartment: true, CompanyID: int64Ptr(1), CompanyName: "Seatek",
			ApproveManager: formatManagerIDs(domain.ManagerIDs{10, 11})},
		{ID: 2, Name: "IT", ParentID: int64Ptr(1), ParentName: "Board", CompanyID: int64Ptr(1), CompanyName: "Seatek", Sequence: 1},
		{ID: 9, Name: "Other", CompanyID: int64Ptr(2), CompanyName: "Other Co"},
	}
	require.NoError(t, db.Create(&rows).Error)

	repo := NewDepartmentRepository(db)
	records, err := repo.List(context.Background(), int64Ptr(1))
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, []int64{1, 2, 3}, []int64{records[0].ID, records[1].ID, records[2].ID})

	board := records[0]
	require.True(t, board.Parent.IsZero())
	require.Equal(t, "BRD", board.Code)
	require.True(t, board.PrimaryDepartment)
	require.Equal(t, domain.ManagerIDs{10, 11}, board.ApproveManagers)
	require.Equal(t, domain.NewRef(1, "Seatek"), board.Company)

	require.Equal(t, domain.NewRef(1, "Board"), records[1].Parent)

	all, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 4)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(4), count)
}

func TestEmployeeRepository_List(t *testing.T) {
	db := setupDB(t)

	rows := []employeeRow{
		{ID: 11, Name: "Pham Van D", CompanyID: int64Ptr(1)},
		{ID: 10, Name: "Tran Thi B", CompanyID: int64Ptr(1)},
		{ID: 12, Name: "Outsider", CompanyID: int64Ptr(2)},
	}
	require.NoError(t, db.Create(&rows).Error)

	employees, err := NewEmployeeRepository(db).List(context.Background(), int64Ptr(1))
	require.NoError(t, err)
	require.Len(t, employees, 2)
	require.Equal(t, int64(10), employees[0].ID)
	require.Equal(t, "Tran Thi B", employees[0].DisplayName())
}

func TestParseManagerIDs_SkipsGarbage(t *testing.T) {
	require.Equal(t, domain.ManagerIDs{1, 3}, parseManagerIDs("1, x,,3"))
	require.Nil(t, parseManagerIDs(""))
}
