package storage

import (
	"context"
	"database/sql"
)

// sqlBackend adapts a database/sql handle to the Backend interface and
// maps every native failure through Wrap.
type sqlBackend struct {
	db   *sql.DB
	kind Kind
}

func newSQLBackend(ctx context.Context, kind Kind, driver, dsn string) (*sqlBackend, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, Wrap(kind, "open", err)
	}

	b := &sqlBackend{db: db, kind: kind}

	if err := b.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return b, nil
}

func (b *sqlBackend) Kind() Kind { return b.kind }

func (b *sqlBackend) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	res, err := b.db.ExecContext(ctx, query, args...)
	return res, Wrap(b.kind, "exec", err)
}

func (b *sqlBackend) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := b.db.PrepareContext(ctx, query)
	return stmt, Wrap(b.kind, "prepare", err)
}

func (b *sqlBackend) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	rows, err := b.db.QueryContext(ctx, query, args...)
	return rows, Wrap(b.kind, "query", err)
}

func (b *sqlBackend) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return b.db.QueryRowContext(ctx, query, args...)
}

func (b *sqlBackend) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, Wrap(b.kind, "begin", err)
	}

	return &sqlTx{tx: tx, kind: b.kind}, nil
}

func (b *sqlBackend) Ping(ctx context.Context) error {
	return Wrap(b.kind, "ping", b.db.PingContext(ctx))
}

func (b *sqlBackend) Close() error {
	return Wrap(b.kind, "close", b.db.Close())
}

type sqlTx struct {
	tx   *sql.Tx
	kind Kind
}

func (t *sqlTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	return res, Wrap(t.kind, "exec", err)
}

func (t *sqlTx) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	stmt, err := t.tx.PrepareContext(ctx, query)
	return stmt, Wrap(t.kind, "prepare", err)
}

func (t *sqlTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	return rows, Wrap(t.kind, "query", err)
}

func (t *sqlTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

func (t *sqlTx) Commit() error {
	return Wrap(t.kind, "commit", t.tx.Commit())
}

func (t *sqlTx) Rollback() error {
	return Wrap(t.kind, "rollback", t.tx.Rollback())
}
