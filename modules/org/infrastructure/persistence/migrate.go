package persistence

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

type MigrateDirection string

const (
	MigrateUp     MigrateDirection = "up"
	MigrateDown   MigrateDirection = "down"
	MigrateStatus MigrateDirection = "status"
)

var migrateRunners = map[MigrateDirection]func(ctx context.Context, db *sql.DB, dir string) error{
	MigrateUp: func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.UpContext(ctx, db, dir)
	},
	MigrateDown: func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.DownContext(ctx, db, dir)
	},
	MigrateStatus: func(ctx context.Context, db *sql.DB, dir string) error {
		return goose.StatusContext(ctx, db, dir)
	},
}

// Migrate applies the embedded schema migrations through goose.
func Migrate(ctx context.Context, pool *pgxpool.Pool, direction MigrateDirection, logger goose.Logger) error {
	run, ok := migrateRunners[direction]
	if !ok {
		return fmt.Errorf("unknown migrate direction %q", direction)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	if logger != nil {
		goose.SetLogger(logger)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return gerrors.Wrap(err, "set goose dialect")
	}
	if err := run(ctx, db, migrationsDir); err != nil {
		return gerrors.Wrapf(err, "migrate %s", direction)
	}
	return nil
}
