package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/org/infrastructure/persistence"
	"github.com/iota-uz/orgchart/modules/org/services"
)

func newExportCmd(a *app) *cobra.Command {
	var organizationID int64
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the stored employees of an organization as org structure lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if organizationID <= 0 {
				return withCode(exitUsage, fmt.Errorf("--org-id must be positive, got %d", organizationID))
			}
			return a.withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				svc := services.NewEmployeeGraphService(persistence.NewEmployeeRepository(), persistence.NewTxRunner(pool))
				text, err := svc.Export(ctx, organizationID)
				if err != nil {
					return classify(err)
				}
				if text == "" {
					return nil
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			})
		},
	}
	cmd.Flags().Int64Var(&organizationID, "org-id", 0, "Organization whose employees are exported (required)")
	return cmd
}
