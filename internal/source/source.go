// Package source получает плоский список подразделений и сотрудников.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/org-chart-api/internal/config"
	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Source возвращает одну выборку данных для построения дерева
type Source interface {
	Fetch(ctx context.Context, token string) (*domain.Snapshot, error)
}

// Deps - внешние зависимости, нужные отдельным видам источников
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *slog.Logger
}

// New собирает источник по конфигурации: базовый источник, затем кеш и проверка токена
func New(cfg *config.Config, deps Deps) (Source, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var src Source
	switch cfg.Source.Kind {
	case config.SourceHTTP:
		client := &http.Client{Timeout: cfg.Upstream.Timeout}
		src = NewHTTPSource(client, cfg.Upstream.URL)
	case config.SourceDB:
		if deps.DB == nil {
			return nil, fmt.Errorf("db source requires a database connection")
		}
		var companyID *int64
		if cfg.Database.CompanyID > 0 {
			companyID = &cfg.Database.CompanyID
		}
		src = NewDBSource(
			repository.NewDepartmentRepository(deps.DB),
			repository.NewEmployeeRepository(deps.DB),
			companyID,
		)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSourceKind, cfg.Source.Kind)
	}

	if deps.Redis != nil && cfg.Redis.TTL > 0 {
		src = NewCachedSource(src, NewRedisStore(deps.Redis), cfg.Redis.TTL, logger)
	}

	if cfg.Source.Kind == config.SourceHTTP && cfg.Source.TokenPrecheck {
		src = NewCheckedSource(src, NewTokenChecker())
	}

	return src, nil
}
