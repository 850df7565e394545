package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/modules/org/infrastructure/persistence"
	"github.com/iota-uz/orgchart/modules/org/services"
)

func newChartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Save and read stored org charts",
	}
	cmd.AddCommand(newChartSaveCmd(a))
	cmd.AddCommand(newChartGetCmd(a))
	cmd.AddCommand(newChartListCmd(a))
	return cmd
}

func newPostgresChartService(pool *pgxpool.Pool, opts ...hierarchy.Option) *services.ChartService {
	return services.NewChartService(
		persistence.NewOrganizationRepository(),
		persistence.NewDepartmentRepository(),
		persistence.NewChartRepository(),
		persistence.NewEmployeeRepository(),
		persistence.NewTxRunner(pool),
		opts...,
	)
}

func newChartSaveCmd(a *app) *cobra.Command {
	var (
		input string
		dto   services.SaveChartDTO
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Parse org structure lines and store the chart and employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			dto.OrgStructure = text
			hopts, err := a.hierarchyOptions()
			if err != nil {
				return err
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				saved, err := newPostgresChartService(pool, hopts...).Save(ctx, dto)
				if err != nil {
					return classify(err)
				}
				return writeJSONLine(cmd.OutOrStdout(), saved)
			})
		},
	}
	cmd.Flags().StringVar(&input, "input", "-", "Input file, - for stdin")
	cmd.Flags().StringVar(&dto.CompanyName, "company", "", "Company name (required)")
	cmd.Flags().StringVar(&dto.DepartmentName, "department", "", "Department name")
	cmd.Flags().StringVar(&dto.ReportingLine, "reporting-line", "", "Reporting line type shown with the chart")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func newChartGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a stored chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return withCode(exitUsage, fmt.Errorf("invalid chart id %q", args[0]))
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				c, err := newPostgresChartService(pool).Get(ctx, id)
				if err != nil {
					return classify(err)
				}
				return writeJSONLine(cmd.OutOrStdout(), c)
			})
		},
	}
}

func newChartListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored charts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				charts, err := newPostgresChartService(pool).List(ctx)
				if err != nil {
					return classify(err)
				}
				for _, c := range charts {
					if err := writeJSONLine(cmd.OutOrStdout(), c); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
