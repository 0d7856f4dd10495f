// Package balancerepo manages repository layer of player balances.
package balancerepo

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/storage"
)

// Repo facilitates balance repository layer logic.
type Repo struct {
	db   storage.SQLInterface
	kind storage.Kind
}

// New returns a balance Repo over an open backend.
func New(b storage.Backend) *Repo {
	return &Repo{db: b, kind: b.Kind()}
}

// NewTx returns a balance Repo over an open backend transaction.
func NewTx(tx storage.Tx, kind storage.Kind) *Repo {
	return &Repo{db: tx, kind: kind}
}

const getQuery = `
SELECT amount, last_updated
FROM player_balances
WHERE uuid = ? AND currency_type = ?
`

// Get returns the balance row for the given player and currency.
func (r *Repo) Get(ctx context.Context, uuid, currencyType string) (domain.Balance, error) {
	l := zerolog.Ctx(ctx)

	b := domain.Balance{UUID: uuid, CurrencyType: currencyType}

	var lastUpdated int64

	row := r.db.QueryRowContext(ctx, storage.Rebind(r.kind, getQuery), uuid, currencyType)

	err := row.Scan(&b.Amount, &lastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return b, storage.Wrap(r.kind, "scan", err)
	}

	b.LastUpdated = time.UnixMilli(lastUpdated).UTC()

	return b, nil
}

// Upsert idioms differ per dialect; all three write the row in one statement.
const (
	upsertPostgres = `
INSERT INTO player_balances (uuid, currency_type, amount, last_updated)
VALUES (?, ?, ?, ?)
ON CONFLICT (uuid, currency_type)
DO UPDATE SET amount = EXCLUDED.amount, last_updated = EXCLUDED.last_updated
`
	upsertMySQL = `
INSERT INTO player_balances (uuid, currency_type, amount, last_updated)
VALUES (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE amount = VALUES(amount), last_updated = VALUES(last_updated)
`
	upsertSQLite = `
INSERT OR REPLACE INTO player_balances (uuid, currency_type, amount, last_updated)
VALUES (?, ?, ?, ?)
`
)

// Upsert inserts or overwrites the balance row.
func (r *Repo) Upsert(ctx context.Context, uuid, currencyType string, amount int64) error {
	l := zerolog.Ctx(ctx)

	var query string

	switch r.kind {
	case storage.KindMySQL:
		query = upsertMySQL
	case storage.KindSQLite:
		query = upsertSQLite
	default:
		query = storage.Rebind(r.kind, upsertPostgres)
	}

	_, err := r.db.ExecContext(ctx, query, uuid, currencyType, amount, time.Now().UnixMilli())
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	return nil
}

const (
	insertAbsentPostgres = `
INSERT INTO player_balances (uuid, currency_type, amount, last_updated)
VALUES (?, ?, ?, ?)
ON CONFLICT (uuid, currency_type) DO NOTHING
`
	insertAbsentMySQL = `
INSERT IGNORE INTO player_balances (uuid, currency_type, amount, last_updated)
VALUES (?, ?, ?, ?)
`
	insertAbsentSQLite = `
INSERT OR IGNORE INTO player_balances (uuid, currency_type, amount, last_updated)
VALUES (?, ?, ?, ?)
`
)

// CreateIfAbsent inserts the balance row with the given initial amount
// unless one already exists.
func (r *Repo) CreateIfAbsent(ctx context.Context, uuid, currencyType string, initial int64) error {
	l := zerolog.Ctx(ctx)

	var query string

	switch r.kind {
	case storage.KindMySQL:
		query = insertAbsentMySQL
	case storage.KindSQLite:
		query = insertAbsentSQLite
	default:
		query = storage.Rebind(r.kind, insertAbsentPostgres)
	}

	_, err := r.db.ExecContext(ctx, query, uuid, currencyType, initial, time.Now().UnixMilli())
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	return nil
}

const addQuery = `
UPDATE player_balances
SET amount = amount + ?, last_updated = ?
WHERE uuid = ? AND currency_type = ? AND amount <= ?
`

// Add atomically increases the balance by delta (> 0). The WHERE clause
// re-checks the additive overflow bound at the same instant as the write.
// It returns false when no row matched: the account vanished or the
// increase would exceed the int64 range.
func (r *Repo) Add(ctx context.Context, uuid, currencyType string, delta int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, storage.Rebind(r.kind, addQuery),
		delta, time.Now().UnixMilli(), uuid, currencyType, math.MaxInt64-delta)
	if err != nil {
		l.Error().Err(err).Send()
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return false, storage.Wrap(r.kind, "rows affected", err)
	}

	return n > 0, nil
}

const subtractQuery = `
UPDATE player_balances
SET amount = amount - ?, last_updated = ?
WHERE uuid = ? AND currency_type = ? AND amount >= ? AND amount >= ?
`

// Subtract atomically decreases the balance by delta (> 0). The WHERE
// clause re-validates sufficiency (amount >= delta) and the configured
// floor (amount - delta >= minimum, passed as minimum + delta) at the
// same instant as the write. It returns false when no row matched:
// insufficient funds, below the floor, or the account is missing.
func (r *Repo) Subtract(ctx context.Context, uuid, currencyType string, delta, minimum int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	// minimum + delta may not fit int64; then no amount can satisfy the floor.
	if minimum > math.MaxInt64-delta {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, storage.Rebind(r.kind, subtractQuery),
		delta, time.Now().UnixMilli(), uuid, currencyType, delta, minimum+delta)
	if err != nil {
		l.Error().Err(err).Send()
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return false, storage.Wrap(r.kind, "rows affected", err)
	}

	return n > 0, nil
}

const topQuery = `
SELECT uuid, amount
FROM player_balances
WHERE currency_type = ?
ORDER BY amount DESC
LIMIT ? OFFSET ?
`

// Top returns the balance-descending ranking for one currency.
func (r *Repo) Top(ctx context.Context, currencyType string, limit, offset int32) ([]domain.RankedBalance, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, storage.Rebind(r.kind, topQuery), currencyType, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, err
	}
	defer rows.Close()

	items := []domain.RankedBalance{}

	for rows.Next() {
		var rb domain.RankedBalance
		if err := rows.Scan(&rb.UUID, &rb.Amount); err != nil {
			l.Error().Err(err).Send()
			return nil, storage.Wrap(r.kind, "scan", err)
		}

		items = append(items, rb)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, storage.Wrap(r.kind, "rows", err)
	}

	return items, nil
}
