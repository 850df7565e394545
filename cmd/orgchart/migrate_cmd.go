package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/org/infrastructure/persistence"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the org chart database schema",
	}
	for _, d := range []struct {
		dir   persistence.MigrateDirection
		short string
	}{
		{persistence.MigrateUp, "Apply all pending migrations"},
		{persistence.MigrateDown, "Roll back the latest migration"},
		{persistence.MigrateStatus, "Print migration status"},
	} {
		dir := d.dir
		cmd.AddCommand(&cobra.Command{
			Use:   string(dir),
			Short: d.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withDB(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
					if err := persistence.Migrate(ctx, pool, dir, a.cfg.Logger()); err != nil {
						return withCode(exitDBWrite, err)
					}
					return nil
				})
			},
		})
	}
	return cmd
}
