package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type SimpleRow struct {
	scan func(dest ...any) error
}

func NewSimpleRow(scanner func(dest ...any) error) SimpleRow {
	return SimpleRow{scan: scanner}
}

func (r SimpleRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

// TestTxBase stubs the parts of pgx.Tx the repositories never touch.
type TestTxBase struct{}

func (TestTxBase) Begin(context.Context) (pgx.Tx, error) {
	return nil, fmt.Errorf("nested begin not supported in test tx")
}

func (TestTxBase) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, fmt.Errorf("copy not supported in test tx")
}

func (TestTxBase) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }

func (TestTxBase) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (TestTxBase) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, fmt.Errorf("prepare not supported in test tx")
}

func (TestTxBase) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("query not supported in test tx")
}

func (TestTxBase) Conn() *pgx.Conn { return nil }
