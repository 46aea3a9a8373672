package main

import (
	"log/slog"

	"github.com/org-chart-api/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "orgchart",
		Short:         "Org chart tools: render the department tree, apply migrations",
		SilenceUsage:  true,
	}
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

// setup загружает конфигурацию; логи пишутся в stderr, чтобы не смешиваться с выводом
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	return cfg, logger, nil
}
