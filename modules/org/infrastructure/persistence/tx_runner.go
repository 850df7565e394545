package persistence

import (
	"context"

	"github.com/iota-uz/orgchart/pkg/composables"
)

// TxRunner opens pgx transactions on Pool. A transaction already present in
// the context is reused.
type TxRunner struct {
	Pool composables.Beginner
}

func NewTxRunner(pool composables.Beginner) *TxRunner {
	return &TxRunner{Pool: pool}
}

func (r *TxRunner) InTx(ctx context.Context, fn func(context.Context) error) error {
	if _, err := composables.UsePool(ctx); err != nil {
		ctx = composables.WithPool(ctx, r.Pool)
	}
	return composables.InTx(ctx, fn)
}
