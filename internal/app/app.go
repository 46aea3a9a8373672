// Package app собирает зависимости приложения по конфигурации.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/org-chart-api/internal/config"
	"github.com/org-chart-api/internal/metrics"
	"github.com/org-chart-api/internal/repository"
	"github.com/org-chart-api/internal/service"
	"github.com/org-chart-api/internal/source"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// connectAttempts - сколько раз опрашивать postgres при старте
const connectAttempts = 30

// App - собранные зависимости и функция их освобождения
type App struct {
	Config  *config.Config
	Metrics *metrics.Metrics
	Service service.ChartService

	closers []func() error
	logger  *slog.Logger
}

// New подключает БД и Redis, если они нужны, и собирает сервис оргструктуры
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:  cfg,
		Metrics: metrics.New(),
		logger:  logger,
	}

	deps := source.Deps{Logger: logger}

	if cfg.Source.Kind == config.SourceDB {
		db, err := OpenDatabase(cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		a.closers = append(a.closers, sqlDB.Close)
		deps.DB = db
	}

	if cfg.Redis.CacheEnabled() {
		client := source.NewRedisClient(ctx, cfg.Redis, logger)
		a.closers = append(a.closers, client.Close)
		deps.Redis = client
	}

	src, err := source.New(cfg, deps)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Service = service.NewChartService(src, a.Metrics, logger)
	return a, nil
}

// OpenDatabase подключается к БД и при необходимости применяет миграции
func OpenDatabase(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	db, err := repository.Connect(cfg, connectAttempts)
	if err != nil {
		return nil, err
	}

	if !cfg.RunMigrations {
		return db, nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := repository.Migrate(sqlDB, cfg.Driver); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("migrations applied", slog.String("driver", cfg.Driver))

	return db, nil
}

// Close освобождает соединения в обратном порядке
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && !errors.Is(err, redis.ErrClosed) {
			a.logger.Warn("failed to close resource", slog.Any("error", err))
		}
	}
	a.closers = nil
}
