package source

import (
	"context"
	"fmt"

	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/repository"
)

// DBSource читает выборку из реплики базы кадров; токен не используется
type DBSource struct {
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	companyID   *int64
}

// NewDBSource создаёт источник поверх репозиториев
func NewDBSource(departments repository.DepartmentRepository, employees repository.EmployeeRepository, companyID *int64) *DBSource {
	return &DBSource{departments: departments, employees: employees, companyID: companyID}
}

func (s *DBSource) Fetch(ctx context.Context, _ string) (*domain.Snapshot, error) {
	departments, err := s.departments.List(ctx, s.companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	employees, err := s.employees.List(ctx, s.companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return &domain.Snapshot{Departments: departments, Employees: employees}, nil
}
