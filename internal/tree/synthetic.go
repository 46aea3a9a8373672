package tree

import (
	"fmt"
	"slices"

	"github.com/org-chart-api/internal/domain"
)

// WithCompanyRoot добавляет синтетический корень-компанию и переподвешивает к нему
// все записи без родителя. Исходный срез не изменяется.
func WithCompanyRoot(records []domain.DepartmentRecord) ([]domain.DepartmentRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	for _, rec := range records {
		if rec.ID == domain.SyntheticRootID {
			return nil, fmt.Errorf("%w: %d", domain.ErrSentinelCollision, rec.ID)
		}
	}

	company := records[0].Company.Label
	out := make([]domain.DepartmentRecord, 0, len(records)+1)
	for _, rec := range records {
		rec.ApproveManagers = slices.Clone(rec.ApproveManagers)
		if rec.Parent.IsZero() {
			rec.Parent = domain.NewRef(domain.SyntheticRootID, company)
		}
		out = append(out, rec)
	}

	out = append(out, domain.DepartmentRecord{
		ID:        domain.SyntheticRootID,
		Name:      company,
		Company:   records[0].Company,
		Synthetic: true,
	})

	return out, nil
}
