package db

import (
	"context"
	"database/sql"
)

// DBTX is what the client and intervention repositories and the restore
// helpers run their SQL through. A *sql.DB, a *sql.Tx or a pinned *sql.Conn
// all qualify, so the same repository code works inside WithinTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
	_ DBTX = (*sql.Conn)(nil)
)
