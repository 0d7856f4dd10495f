// Package transferrepo executes the two-leg transfer transaction.
package transferrepo

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/playforge/economy/internal/balancerepo"
	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/logrepo"
	"github.com/playforge/economy/internal/storage"
	"github.com/playforge/economy/pkg/errorspkg"
)

// Repo facilitates transfer repository layer logic.
type Repo struct {
	backend storage.Backend
}

// New returns a transfer Repo with a backend to start transactions on.
func New(b storage.Backend) *Repo {
	return &Repo{backend: b}
}

// Transfer debits the sender, credits the receiver and appends both log
// entries within a single backend transaction. Any failure rolls the
// whole transfer back; no partial transfer is ever visible.
func (r *Repo) Transfer(ctx context.Context, arg domain.TransferTxParams) error {
	l := zerolog.Ctx(ctx)

	tx, err := r.backend.BeginTx(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	committed := false

	defer func() {
		if committed {
			return
		}

		// Rollback is best-effort; a failure is reported, not retried.
		if err := tx.Rollback(); err != nil {
			l.Error().Err(err).Msg("transfer rollback failed")
		}
	}()

	kind := r.backend.Kind()
	balances := balancerepo.NewTx(tx, kind)
	logs := logrepo.NewTx(tx, kind)

	sender, err := balances.Get(ctx, arg.SenderUUID, arg.CurrencyType)
	if err != nil {
		return err
	}

	if sender.Amount < arg.Amount {
		return domain.ErrInsufficientBalance
	}

	if sender.Amount-arg.Amount < arg.SenderMinimum {
		return domain.ErrBelowMinimumBalance
	}

	ok, err := balances.Subtract(ctx, arg.SenderUUID, arg.CurrencyType, arg.Amount, arg.SenderMinimum)
	if err != nil {
		return err
	}

	if !ok {
		return domain.ErrInsufficientBalance
	}

	err = logs.Append(ctx, domain.LogEntry{
		UUID:           arg.SenderUUID,
		CurrencyType:   arg.CurrencyType,
		ChangeAmount:   -arg.Amount,
		PreviousAmount: sender.Amount,
		Reason:         arg.SenderReason,
	})
	if err != nil {
		return err
	}

	if arg.Received <= 0 {
		err = tx.Commit()
		committed = err == nil

		return err
	}

	if err := balances.CreateIfAbsent(ctx, arg.ReceiverUUID, arg.CurrencyType, arg.ReceiverInitial); err != nil {
		return err
	}

	receiver, err := balances.Get(ctx, arg.ReceiverUUID, arg.CurrencyType)
	if err != nil {
		return err
	}

	if arg.Received > math.MaxInt64-receiver.Amount {
		return domain.ErrInvalidAmount
	}

	ok, err = balances.Add(ctx, arg.ReceiverUUID, arg.CurrencyType, arg.Received)
	if err != nil {
		return err
	}

	if !ok {
		l.Error().Str("uuid", arg.ReceiverUUID).Msg("receiver row not updatable inside transfer")
		return errorspkg.ErrInternal
	}

	err = logs.Append(ctx, domain.LogEntry{
		UUID:           arg.ReceiverUUID,
		CurrencyType:   arg.CurrencyType,
		ChangeAmount:   arg.Received,
		PreviousAmount: receiver.Amount,
		Reason:         arg.ReceiverReason,
	})
	if err != nil {
		return err
	}

	err = tx.Commit()
	committed = err == nil

	return err
}
