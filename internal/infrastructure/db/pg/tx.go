package pg

import (
	"context"
	"database/sql"

	trmsql "github.com/avito-tech/go-transaction-manager/drivers/sql/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	trmcontext "github.com/avito-tech/go-transaction-manager/trm/v2/context"
	trmmanager "github.com/avito-tech/go-transaction-manager/trm/v2/manager"

	"signupservice/internal/domain"
)

// TxManager keeps the open transaction in ctx, where store picks it up.
type TxManager struct {
	tm trm.Manager
}

func NewTxManager(db *sql.DB) domain.UnitOfWork {
	return &TxManager{
		tm: trmmanager.Must(
			trmsql.NewDefaultFactory(db),
			trmmanager.WithCtxManager(trmcontext.DefaultManager),
		),
	}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.tm.Do(ctx, fn)
}

// store runs statements on the transaction bound to ctx, or on the pool
// outside WithinTx.
type store struct {
	db *sql.DB
}

func (s store) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return trmsql.DefaultCtxGetter.DefaultTrOrDB(ctx, s.db).ExecContext(ctx, q, args...)
}

func (s store) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return trmsql.DefaultCtxGetter.DefaultTrOrDB(ctx, s.db).QueryRowContext(ctx, q, args...)
}

func (s store) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return trmsql.DefaultCtxGetter.DefaultTrOrDB(ctx, s.db).QueryContext(ctx, q, args...)
}
