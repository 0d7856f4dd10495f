// Package logrepo manages the append-only economy transaction log.
package logrepo

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/storage"
)

// Repo facilitates transaction log repository layer logic.
type Repo struct {
	db   storage.SQLInterface
	kind storage.Kind
}

// New returns a log Repo over an open backend.
func New(b storage.Backend) *Repo {
	return &Repo{db: b, kind: b.Kind()}
}

// NewTx returns a log Repo over an open backend transaction.
func NewTx(tx storage.Tx, kind storage.Kind) *Repo {
	return &Repo{db: tx, kind: kind}
}

const appendQuery = `
INSERT INTO economy_log
    (timestamp, uuid, currency_type, change_amount, previous_amount, reason1, reason2, reason3)
VALUES
    (?, ?, ?, ?, ?, ?, ?, ?)
`

// Append writes one log entry. Entries are never updated or deleted.
func (r *Repo) Append(ctx context.Context, e domain.LogEntry) error {
	l := zerolog.Ctx(ctx)

	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	stmt, err := r.db.PrepareContext(ctx, storage.Rebind(r.kind, appendQuery))
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		ts.UnixMilli(),
		e.UUID,
		e.CurrencyType,
		e.ChangeAmount,
		e.PreviousAmount,
		e.Reason.Tag,
		e.Reason.Actor,
		e.Reason.Context,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return storage.Wrap(r.kind, "exec", err)
	}

	return nil
}

const queryBase = `
SELECT id, timestamp, uuid, currency_type, change_amount, previous_amount, reason1, reason2, reason3
FROM economy_log
`

// Query returns log entries matching the filter, time-ordered and
// paginated. Zero-valued filter fields are left out of the predicate.
func (r *Repo) Query(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error) {
	l := zerolog.Ctx(ctx)

	var (
		conds []string
		args  []interface{}
	)

	if f.UUID != "" {
		conds = append(conds, "uuid = ?")
		args = append(args, f.UUID)
	}

	if f.CurrencyType != "" {
		conds = append(conds, "currency_type = ?")
		args = append(args, f.CurrencyType)
	}

	if f.StartTime != nil {
		conds = append(conds, "timestamp >= ?")
		args = append(args, f.StartTime.UnixMilli())
	}

	if f.EndTime != nil {
		conds = append(conds, "timestamp <= ?")
		args = append(args, f.EndTime.UnixMilli())
	}

	for _, sub := range []struct {
		column string
		value  string
	}{
		{"reason1", f.ReasonTag},
		{"reason2", f.ReasonActor},
		{"reason3", f.ReasonContext},
	} {
		if sub.value != "" {
			conds = append(conds, sub.column+" LIKE ?")
			args = append(args, "%"+sub.value+"%")
		}
	}

	query := queryBase
	if len(conds) > 0 {
		query += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}

	if f.Ascending {
		query += "ORDER BY timestamp ASC, id ASC\n"
	} else {
		query += "ORDER BY timestamp DESC, id DESC\n"
	}

	if f.Limit > 0 {
		query += "LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, storage.Rebind(r.kind, query), args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, err
	}
	defer rows.Close()

	items := []domain.LogEntry{}

	for rows.Next() {
		var (
			e  domain.LogEntry
			ts int64
		)

		err := rows.Scan(
			&e.ID,
			&ts,
			&e.UUID,
			&e.CurrencyType,
			&e.ChangeAmount,
			&e.PreviousAmount,
			&e.Reason.Tag,
			&e.Reason.Actor,
			&e.Reason.Context,
		)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, storage.Wrap(r.kind, "scan", err)
		}

		e.Timestamp = time.UnixMilli(ts).UTC()

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, storage.Wrap(r.kind, "rows", err)
	}

	return items, nil
}
