package storage

import (
	"context"

	// Registers the postgres driver.
	_ "github.com/lib/pq"
)

// Postgres is the client/server backend backed by lib/pq.
type Postgres struct {
	*sqlBackend
}

// OpenPostgres connects to a PostgreSQL server.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	b, err := newSQLBackend(ctx, KindPostgres, "postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &Postgres{sqlBackend: b}, nil
}
