package composables_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgchart/pkg/composables"
)

// fakeTx implements only what InTx touches; other pgx.Tx methods panic.
type fakeTx struct {
	pgx.Tx
	commits   int
	rollbacks int
	commitErr error
}

func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

type fakePool struct {
	tx     *fakeTx
	begins int
}

func (p *fakePool) Begin(context.Context) (pgx.Tx, error) {
	p.begins++
	return p.tx, nil
}

func (p *fakePool) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (p *fakePool) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (p *fakePool) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func TestUseTx(t *testing.T) {
	_, err := composables.UseTx(context.Background())
	require.ErrorIs(t, err, composables.ErrNoPool)

	pool := &fakePool{tx: &fakeTx{}}
	got, err := composables.UseTx(composables.WithPool(context.Background(), pool))
	require.NoError(t, err)
	require.Same(t, pool, got)

	tx := &fakeTx{}
	got, err = composables.UseTx(composables.WithTx(context.Background(), tx))
	require.NoError(t, err)
	require.Same(t, tx, got)
}

func TestInTx(t *testing.T) {
	t.Run("commits", func(t *testing.T) {
		pool := &fakePool{tx: &fakeTx{}}
		ctx := composables.WithPool(context.Background(), pool)

		var inner any
		require.NoError(t, composables.InTx(ctx, func(txCtx context.Context) error {
			inner, _ = composables.UseTx(txCtx)
			return nil
		}))
		require.Same(t, pool.tx, inner)
		require.Equal(t, 1, pool.tx.commits)
		require.Zero(t, pool.tx.rollbacks)
	})

	t.Run("rolls back", func(t *testing.T) {
		pool := &fakePool{tx: &fakeTx{}}
		boom := errors.New("boom")
		err := composables.InTx(composables.WithPool(context.Background(), pool), func(context.Context) error { return boom })
		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, pool.tx.rollbacks)
		require.Zero(t, pool.tx.commits)
	})

	t.Run("reuses outer transaction", func(t *testing.T) {
		pool := &fakePool{tx: &fakeTx{}}
		ctx := composables.WithPool(context.Background(), pool)
		require.NoError(t, composables.InTx(ctx, func(txCtx context.Context) error {
			return composables.InTx(txCtx, func(context.Context) error { return nil })
		}))
		require.Equal(t, 1, pool.begins)
		require.Equal(t, 1, pool.tx.commits)
	})

	t.Run("no pool", func(t *testing.T) {
		err := composables.InTx(context.Background(), func(context.Context) error { return nil })
		require.ErrorIs(t, err, composables.ErrNoPool)
	})

	t.Run("result", func(t *testing.T) {
		pool := &fakePool{tx: &fakeTx{}}
		n, err := composables.InTxResult(composables.WithPool(context.Background(), pool), func(context.Context) (int, error) {
			return 7, nil
		})
		require.NoError(t, err)
		require.Equal(t, 7, n)
	})
}

func TestUseLogger(t *testing.T) {
	require.NotNil(t, composables.UseLogger(context.Background()))

	logger := logrus.New()
	entry := logrus.NewEntry(logger).WithField("run", "x")
	require.Same(t, entry, composables.UseLogger(composables.WithLogger(context.Background(), entry)))
}
