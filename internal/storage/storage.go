// Package storage abstracts the relational backends the ledger runs on.
// One backend is selected at startup by configuration; the repositories
// pick dialect-specific SQL through Kind.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the supported backend dialects.
type Kind string

// Supported backend kinds.
const (
	KindPostgres Kind = "postgres"
	KindMySQL    Kind = "mysql"
	KindSQLite   Kind = "sqlite"
)

// ParseKind validates a configured backend name.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindPostgres:
		return KindPostgres, nil
	case KindMySQL:
		return KindMySQL, nil
	case KindSQLite:
		return KindSQLite, nil
	}

	return "", fmt.Errorf("unsupported storage backend %q", s)
}

// SQLInterface provides the generic exec/query surface shared by a live
// connection and an open transaction. Parameters and result cells are
// restricted to nil, int64, float64 and string.
type SQLInterface interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Backend is one open connection to a concrete storage engine.
type Backend interface {
	SQLInterface

	Kind() Kind
	BeginTx(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
	Close() error
}

// Tx is an open backend transaction.
type Tx interface {
	SQLInterface

	Commit() error
	Rollback() error
}

// Error is the single failure kind every adapter maps its native errors into.
type Error struct {
	Backend Kind
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap maps a native backend error into an Error. Nil and sql.ErrNoRows
// pass through so absent-row handling stays with the caller.
func Wrap(kind Kind, op string, err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return &Error{Backend: kind, Op: op, Err: err}
}

// Rebind rewrites `?` placeholders into the dialect's convention.
// Queries are trusted package constants, so no quote handling is needed.
func Rebind(kind Kind, query string) string {
	if kind != KindPostgres {
		return query
	}

	var sb strings.Builder

	n := 0

	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			sb.WriteByte(query[i])
			continue
		}

		n++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
	}

	return sb.String()
}

// NewWithDB wraps an already-open database/sql handle. Used by tests
// and by callers that manage the connection themselves.
func NewWithDB(db *sql.DB, kind Kind) Backend {
	return &sqlBackend{db: db, kind: kind}
}

// Open connects to the backend selected by kind and verifies the
// connection with a ping.
func Open(ctx context.Context, kind Kind, dsn string) (Backend, error) {
	switch kind {
	case KindPostgres:
		return OpenPostgres(ctx, dsn)
	case KindMySQL:
		return OpenMySQL(ctx, dsn)
	case KindSQLite:
		return OpenSQLite(ctx, dsn)
	}

	return nil, fmt.Errorf("unsupported storage backend %q", kind)
}
