package storage

import "context"

// Schema DDL per dialect. Timestamps are stored as unix milliseconds so
// the column types stay identical across backends.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS player_balances (
		uuid TEXT NOT NULL,
		currency_type TEXT NOT NULL,
		amount BIGINT NOT NULL,
		last_updated BIGINT NOT NULL,
		PRIMARY KEY (uuid, currency_type)
	)`,
	`CREATE TABLE IF NOT EXISTS economy_log (
		id BIGSERIAL PRIMARY KEY,
		timestamp BIGINT NOT NULL,
		uuid TEXT NOT NULL,
		currency_type TEXT NOT NULL,
		change_amount BIGINT NOT NULL,
		previous_amount BIGINT NOT NULL,
		reason1 TEXT NOT NULL DEFAULT '',
		reason2 TEXT NOT NULL DEFAULT '',
		reason3 TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_economy_log_uuid ON economy_log (uuid)`,
	`CREATE INDEX IF NOT EXISTS idx_economy_log_currency ON economy_log (currency_type)`,
	`CREATE INDEX IF NOT EXISTS idx_economy_log_timestamp ON economy_log (timestamp)`,
}

// MySQL has no CREATE INDEX IF NOT EXISTS, so the indexes are declared inline.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS player_balances (
		uuid VARCHAR(36) NOT NULL,
		currency_type VARCHAR(64) NOT NULL,
		amount BIGINT NOT NULL,
		last_updated BIGINT NOT NULL,
		PRIMARY KEY (uuid, currency_type)
	)`,
	`CREATE TABLE IF NOT EXISTS economy_log (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		timestamp BIGINT NOT NULL,
		uuid VARCHAR(36) NOT NULL,
		currency_type VARCHAR(64) NOT NULL,
		change_amount BIGINT NOT NULL,
		previous_amount BIGINT NOT NULL,
		reason1 TEXT NOT NULL,
		reason2 TEXT NOT NULL,
		reason3 TEXT NOT NULL,
		INDEX idx_economy_log_uuid (uuid),
		INDEX idx_economy_log_currency (currency_type),
		INDEX idx_economy_log_timestamp (timestamp)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS player_balances (
		uuid TEXT NOT NULL,
		currency_type TEXT NOT NULL,
		amount INTEGER NOT NULL,
		last_updated INTEGER NOT NULL,
		PRIMARY KEY (uuid, currency_type)
	)`,
	`CREATE TABLE IF NOT EXISTS economy_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		uuid TEXT NOT NULL,
		currency_type TEXT NOT NULL,
		change_amount INTEGER NOT NULL,
		previous_amount INTEGER NOT NULL,
		reason1 TEXT NOT NULL DEFAULT '',
		reason2 TEXT NOT NULL DEFAULT '',
		reason3 TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_economy_log_uuid ON economy_log (uuid)`,
	`CREATE INDEX IF NOT EXISTS idx_economy_log_currency ON economy_log (currency_type)`,
	`CREATE INDEX IF NOT EXISTS idx_economy_log_timestamp ON economy_log (timestamp)`,
}

// EnsureSchema creates the ledger tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, b Backend) error {
	var stmts []string

	switch b.Kind() {
	case KindMySQL:
		stmts = mysqlSchema
	case KindSQLite:
		stmts = sqliteSchema
	default:
		stmts = postgresSchema
	}

	for _, stmt := range stmts {
		if _, err := b.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
