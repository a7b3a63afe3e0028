package memory

import (
	"context"

	"signupservice/internal/domain"
)

// TxManager is the UnitOfWork for the in-memory store. Every repository
// call is already atomic on its own record, so fn runs as is.
type TxManager struct{}

func NewTxManager() domain.UnitOfWork {
	return TxManager{}
}

func (TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
