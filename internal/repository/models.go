package repository

import (
	"strconv"
	"strings"

	"github.com/org-chart-api/internal/domain"
)

// departmentRow - строка таблицы departments
type departmentRow struct {
	ID                int64  `gorm:"primaryKey;autoIncrement:false"`
	Name              string `gorm:"type:varchar(200);not null"`
	SortName          string `gorm:"type:varchar(64)"`
	PrimaryDepartment bool
	HeadDepartment    bool
	// ApproveManager хранит id руководителей через запятую
	ApproveManager string `gorm:"type:text"`
	ParentID       *int64 `gorm:"index"`
	ParentName     string `gorm:"type:varchar(200)"`
	CompanyID      *int64 `gorm:"index"`
	CompanyName    string `gorm:"type:varchar(200)"`
	Sequence       int
}

// TableName задаёт имя таблицы для GORM
func (departmentRow) TableName() string {
	return "departments"
}

// employeeRow - строка таблицы employees
type employeeRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	Name      string `gorm:"type:varchar(200);not null"`
	CompanyID *int64 `gorm:"index"`
}

// TableName задаёт имя таблицы для GORM
func (employeeRow) TableName() string {
	return "employees"
}

func (r departmentRow) toDomain() domain.DepartmentRecord {
	rec := domain.DepartmentRecord{
		ID:                r.ID,
		Name:              r.Name,
		Code:              r.SortName,
		PrimaryDepartment: r.PrimaryDepartment,
		HeadDepartment:    r.HeadDepartment,
		ApproveManagers:   parseManagerIDs(r.ApproveManager),
	}
	if r.ParentID != nil {
		rec.Parent = domain.NewRef(*r.ParentID, r.ParentName)
	}
	if r.CompanyID != nil {
		rec.Company = domain.NewRef(*r.CompanyID, r.CompanyName)
	}
	return rec
}

func (r employeeRow) toDomain() domain.Employee {
	return domain.Employee{ID: r.ID, Name: domain.NewRef(r.ID, r.Name)}
}

func parseManagerIDs(raw string) domain.ManagerIDs {
	var ids domain.ManagerIDs
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
