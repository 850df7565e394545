package persistence_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func assign(dest, v any) error {
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.New("scan destination must be a non-nil pointer")
	}
	target := dv.Elem()
	if v == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	val := reflect.ValueOf(v)
	if val.Type().AssignableTo(target.Type()) {
		target.Set(val)
		return nil
	}
	if target.Kind() == reflect.Ptr && val.Type().AssignableTo(target.Type().Elem()) {
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(val)
		target.Set(p)
		return nil
	}
	return fmt.Errorf("cannot scan %T into %s", v, target.Type())
}

func scanRecord(rec []any, dest []any) error {
	if len(dest) != len(rec) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(rec))
	}
	for i := range dest {
		if err := assign(dest[i], rec[i]); err != nil {
			return err
		}
	}
	return nil
}

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanRecord(r.values, dest)
}

type recordRows struct {
	records [][]any
	idx     int
	err     error
}

func (r *recordRows) Close()                        {}
func (r *recordRows) Err() error                    { return r.err }
func (r *recordRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *recordRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}
func (r *recordRows) Next() bool {
	if r.idx >= len(r.records) {
		return false
	}
	r.idx++
	return true
}
func (r *recordRows) Scan(dest ...any) error { return scanRecord(r.records[r.idx-1], dest) }
func (r *recordRows) Values() ([]any, error) { return nil, nil }
func (r *recordRows) RawValues() [][]byte    { return nil }
func (r *recordRows) Conn() *pgx.Conn        { return nil }

type call struct {
	sql  string
	args []any
}

// stubTx replays scripted results in call order and records every statement.
type stubTx struct {
	rows     []pgx.Rows
	rowQueue []stubRow
	tags     []pgconn.CommandTag
	execErr  error
	queryErr error

	commitErr  error
	committed  bool
	rolledBack bool

	calls []call
}

func (s *stubTx) record(sql string, args []any) {
	s.calls = append(s.calls, call{sql: strings.Join(strings.Fields(sql), " "), args: args})
}

func (s *stubTx) Begin(context.Context) (pgx.Tx, error) { return s, nil }
func (s *stubTx) Commit(context.Context) error {
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed = true
	return nil
}
func (s *stubTx) Rollback(context.Context) error {
	if !s.committed {
		s.rolledBack = true
	}
	return nil
}
func (s *stubTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not implemented")
}
func (s *stubTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (s *stubTx) LargeObjects() pgx.LargeObjects                          { return pgx.LargeObjects{} }
func (s *stubTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	s.record(sql, args)
	if s.execErr != nil {
		return pgconn.CommandTag{}, s.execErr
	}
	if len(s.tags) == 0 {
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	tag := s.tags[0]
	s.tags = s.tags[1:]
	return tag, nil
}
func (s *stubTx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	s.record(sql, args)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	if len(s.rows) == 0 {
		return &recordRows{}, nil
	}
	rows := s.rows[0]
	s.rows = s.rows[1:]
	return rows, nil
}
func (s *stubTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	s.record(sql, args)
	if len(s.rowQueue) == 0 {
		return stubRow{err: pgx.ErrNoRows}
	}
	row := s.rowQueue[0]
	s.rowQueue = s.rowQueue[1:]
	return row
}
func (s *stubTx) Conn() *pgx.Conn { return nil }

// stubPool hands out tx on Begin and serves pool-level queries from it too.
type stubPool struct {
	tx       *stubTx
	beginErr error
	begins   int
}

func (p *stubPool) Begin(context.Context) (pgx.Tx, error) {
	p.begins++
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.tx, nil
}
func (p *stubPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.tx.Exec(ctx, sql, args...)
}
func (p *stubPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.tx.Query(ctx, sql, args...)
}
func (p *stubPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.tx.QueryRow(ctx, sql, args...)
}
