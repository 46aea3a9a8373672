package main

import (
	"fmt"

	"github.com/org-chart-api/internal/app"
	"github.com/org-chart-api/internal/repository"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded migrations to the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			cfg.Database.RunMigrations = true
			db, err := app.OpenDatabase(cfg.Database, logger)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			count, err := repository.NewDepartmentRepository(db).Count(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s, %d departments\n", cfg.Database.Driver, count)
			return err
		},
	}
}
