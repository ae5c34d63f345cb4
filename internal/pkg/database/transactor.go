package database

import "context"

type txKey struct{}

// TxKey is the context key under which repositories look for an open transaction.
var TxKey = txKey{}

// Transactor runs fn inside one transaction. Repositories called with the
// context passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}
