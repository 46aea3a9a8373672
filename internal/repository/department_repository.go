package repository

import (
	"context"

	"github.com/org-chart-api/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс чтения подразделений
type DepartmentRepository interface {
	List(ctx context.Context, companyID *int64) ([]domain.DepartmentRecord, error)
	Count(ctx context.Context) (int64, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

// List возвращает плоский список подразделений в порядке sequence, id.
// Порядок важен: он задаёт порядок дочерних узлов в дереве.
func (r *departmentRepository) List(ctx context.Context, companyID *int64) ([]domain.DepartmentRecord, error) {
	query := r.db.WithContext(ctx).Order("sequence ASC").Order("id ASC")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}

	var rows []departmentRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]domain.DepartmentRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toDomain())
	}
	return result, nil
}

func (r *departmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&departmentRow{}).Count(&count).Error
	return count, err
}
