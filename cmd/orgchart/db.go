package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/orgchart/pkg/composables"
	"github.com/iota-uz/orgchart/pkg/configuration"
)

func connectDB(ctx context.Context, opts configuration.DatabaseOptions) (*pgxpool.Pool, error) {
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, opts.Opts)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	return pool, nil
}

// withDB connects, binds the pool to ctx and runs fn.
func (a *app) withDB(ctx context.Context, fn func(ctx context.Context, pool *pgxpool.Pool) error) error {
	pool, err := connectDB(ctx, a.cfg.Database)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()
	return fn(composables.WithPool(ctx, pool), pool)
}
