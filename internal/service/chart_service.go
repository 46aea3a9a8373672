package service

import (
	"context"
	"log/slog"

	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/metrics"
	"github.com/org-chart-api/internal/source"
	"github.com/org-chart-api/internal/tree"
)

// Chart - построенная оргструктура и данные для её отображения
type Chart struct {
	Company string
	// Root равен nil, если отображать нечего
	Root      *domain.TreeNode
	Directory *domain.Directory
	Report    tree.Report
}

// ChartService определяет интерфейс построения оргструктуры
type ChartService interface {
	Chart(ctx context.Context, token string) (*Chart, error)
}

type chartService struct {
	source  source.Source
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewChartService создаёт новый экземпляр сервиса
func NewChartService(src source.Source, m *metrics.Metrics, logger *slog.Logger) ChartService {
	return &chartService{
		source:  src,
		metrics: m,
		logger:  logger,
	}
}

func (s *chartService) Chart(ctx context.Context, token string) (*Chart, error) {
	snap, err := s.source.Fetch(ctx, token)
	if err != nil {
		return nil, err
	}

	chart := &Chart{Directory: domain.NewDirectory(snap.Employees)}
	if len(snap.Departments) == 0 {
		s.metrics.ObserveBuild(tree.Report{}, false)
		return chart, nil
	}
	chart.Company = snap.Departments[0].Company.Label

	// Все подразделения принадлежат компании, которой нет среди записей,
	// поэтому корнем становится синтетический узел компании
	records, err := tree.WithCompanyRoot(snap.Departments)
	if err != nil {
		return nil, err
	}

	root, report := tree.BuildWithReport(records)
	chart.Root = root
	chart.Report = report
	s.metrics.ObserveBuild(report, root != nil)

	if len(report.Unreachable) > 0 || len(report.Duplicates) > 0 {
		s.logger.Warn("department records left out of chart",
			slog.String("company", chart.Company),
			slog.Int("records", report.Records),
			slog.Int("reachable", report.Reachable),
			slog.Any("unresolved_parents", report.UnresolvedParents),
			slog.Any("unreachable", report.Unreachable),
			slog.Any("duplicates", report.Duplicates),
		)
	}

	return chart, nil
}
