package services

import "context"

// TxRunner runs fn inside one storage transaction. A runner must reuse a
// transaction already open in ctx so nested calls commit together.
type TxRunner interface {
	InTx(ctx context.Context, fn func(context.Context) error) error
}
