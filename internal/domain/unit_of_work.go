package domain

import "context"

// UnitOfWork runs fn inside one transaction. Stores without transactions
// run fn directly and provide atomicity per operation instead.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
