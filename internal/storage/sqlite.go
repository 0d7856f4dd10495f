package storage

import (
	"context"

	// Registers the pure-Go sqlite driver.
	_ "modernc.org/sqlite"
)

// SQLite is the embedded file-based backend backed by modernc.org/sqlite.
type SQLite struct {
	*sqlBackend
}

// OpenSQLite opens (creating if necessary) a SQLite database file.
func OpenSQLite(ctx context.Context, dsn string) (*SQLite, error) {
	b, err := newSQLBackend(ctx, KindSQLite, "sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection sidesteps SQLITE_BUSY on concurrent writers.
	b.db.SetMaxOpenConns(1)

	return &SQLite{sqlBackend: b}, nil
}
