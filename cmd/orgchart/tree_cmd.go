package main

import (
	"fmt"
	"time"

	"github.com/org-chart-api/internal/app"
	"github.com/org-chart-api/internal/config"
	"github.com/org-chart-api/internal/domain"
	"github.com/org-chart-api/internal/dto"
	"github.com/org-chart-api/internal/tree"
	"github.com/spf13/cobra"
)

type treeOutput struct {
	Command    string            `json:"command"`
	DurationMS int64             `json:"duration_ms"`
	Result     dto.ChartResponse `json:"result"`
}

func newTreeCmd() *cobra.Command {
	var (
		token  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Fetch departments and print the org chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != dto.FormatText && format != dto.FormatJSON {
				return fmt.Errorf("invalid --format %q: want %s or %s", format, dto.FormatText, dto.FormatJSON)
			}

			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			if token == "" && cfg.Source.Kind == config.SourceHTTP {
				return domain.ErrTokenRequired
			}

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			start := time.Now()
			chart, err := application.Service.Chart(cmd.Context(), token)
			if err != nil {
				return err
			}

			if format == dto.FormatText {
				return tree.WriteOutline(cmd.OutOrStdout(), chart.Root, chart.Directory)
			}

			return writeJSON(cmd.OutOrStdout(), treeOutput{
				Command:    "tree",
				DurationMS: time.Since(start).Milliseconds(),
				Result: dto.NewChartResponse(
					chart.Company, chart.Root, chart.Directory, chart.Report, tree.UnknownManagerName,
				),
			})
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token passed to the upstream service")
	cmd.Flags().StringVar(&format, "format", dto.FormatText, "Output format: text or json")
	return cmd
}
