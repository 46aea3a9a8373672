package repository

import (
	"context"

	"github.com/org-chart-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс чтения сотрудников
type EmployeeRepository interface {
	List(ctx context.Context, companyID *int64) ([]domain.Employee, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) List(ctx context.Context, companyID *int64) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).Order("id ASC")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}

	var rows []employeeRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	employees := make([]domain.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, row.toDomain())
	}
	return employees, nil
}
