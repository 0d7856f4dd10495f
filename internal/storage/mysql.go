package storage

import (
	"context"

	// Registers the mysql driver.
	_ "github.com/go-sql-driver/mysql"
)

// MySQL is the client/server backend backed by go-sql-driver/mysql.
type MySQL struct {
	*sqlBackend
}

// OpenMySQL connects to a MySQL server.
func OpenMySQL(ctx context.Context, dsn string) (*MySQL, error) {
	b, err := newSQLBackend(ctx, KindMySQL, "mysql", dsn)
	if err != nil {
		return nil, err
	}

	return &MySQL{sqlBackend: b}, nil
}
