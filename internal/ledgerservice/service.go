// Package ledgerservice manages business logic layer of the currency ledger.
package ledgerservice

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/playforge/economy/internal/balancerepo"
	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/hooks"
	"github.com/playforge/economy/internal/logrepo"
	"github.com/playforge/economy/internal/obs"
	"github.com/playforge/economy/internal/storage"
	"github.com/playforge/economy/internal/transferrepo"
	"github.com/playforge/economy/pkg/moneypkg"
)

// BalanceRepo provides data access layer interface needed by the ledger service.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type BalanceRepo interface {
	Get(ctx context.Context, uuid, currencyType string) (domain.Balance, error)
	Upsert(ctx context.Context, uuid, currencyType string, amount int64) error
	CreateIfAbsent(ctx context.Context, uuid, currencyType string, initial int64) error
	Add(ctx context.Context, uuid, currencyType string, delta int64) (bool, error)
	Subtract(ctx context.Context, uuid, currencyType string, delta, minimum int64) (bool, error)
	Top(ctx context.Context, currencyType string, limit, offset int32) ([]domain.RankedBalance, error)
}

// LogRepo provides the append-only transaction log interface.
type LogRepo interface {
	Append(ctx context.Context, e domain.LogEntry) error
	Query(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error)
}

// TransferRepo executes the transactional two-leg transfer.
type TransferRepo interface {
	Transfer(ctx context.Context, arg domain.TransferTxParams) error
}

// Service is the ledger engine. It owns no storage state beyond the
// repositories and the read-only currency policy table, so one instance
// can be shared across callers.
type Service struct {
	balances   BalanceRepo
	logs       LogRepo
	transfers  TransferRepo
	currencies domain.Currencies
	hooks      *hooks.Ring
	metrics    *obs.Metrics
}

// New wires a ledger Service over an open storage backend.
func New(b storage.Backend, currencies domain.Currencies, ring *hooks.Ring, metrics *obs.Metrics) *Service {
	return &Service{
		balances:   balancerepo.New(b),
		logs:       logrepo.New(b),
		transfers:  transferrepo.New(b),
		currencies: currencies,
		hooks:      ring,
		metrics:    metrics,
	}
}

// NewWithRepos wires a ledger Service over explicit repositories.
func NewWithRepos(balances BalanceRepo, logs LogRepo, transfers TransferRepo, currencies domain.Currencies, ring *hooks.Ring) *Service {
	return &Service{
		balances:   balances,
		logs:       logs,
		transfers:  transfers,
		currencies: currencies,
		hooks:      ring,
	}
}

func (s *Service) observe(op string, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.Observe(op, start, err)
	}
}

// minorUnits converts a configured decimal amount at use time.
func minorUnits(amount float64) (int64, error) {
	v, err := moneypkg.ToMinorUnits(amount)
	if err != nil {
		return 0, domain.ErrInvalidAmount
	}

	return v, nil
}

// Balance returns the stored balance without creating a row.
// A missing row yields domain.ErrAccountNotFound.
func (s *Service) Balance(ctx context.Context, uuid, currencyType string) (int64, error) {
	if _, err := s.currencies.Get(currencyType); err != nil {
		return 0, err
	}

	b, err := s.balances.Get(ctx, uuid, currencyType)
	if err != nil {
		return 0, err
	}

	return b.Amount, nil
}

// BalanceOrInit returns the stored balance, creating the row with the
// currency's configured initial balance when it does not exist yet.
func (s *Service) BalanceOrInit(ctx context.Context, uuid, currencyType string) (int64, error) {
	cur, err := s.currencies.Get(currencyType)
	if err != nil {
		return 0, err
	}

	initial, err := minorUnits(cur.InitialBalance)
	if err != nil {
		return 0, err
	}

	if err := s.balances.CreateIfAbsent(ctx, uuid, currencyType, initial); err != nil {
		return 0, err
	}

	b, err := s.balances.Get(ctx, uuid, currencyType)
	if err != nil {
		return 0, err
	}

	return b.Amount, nil
}

// SetBalance overwrites the balance. The currency floor is enforced, the
// before-hook may rewrite or cancel, and an entry is logged when the
// stored amount actually changes.
func (s *Service) SetBalance(ctx context.Context, uuid, currencyType string, amount int64, reason domain.Reason) (err error) {
	start := time.Now()
	defer func() { s.observe("set", start, err) }()

	l := zerolog.Ctx(ctx)

	cur, err := s.currencies.Get(currencyType)
	if err != nil {
		return err
	}

	minimum, err := minorUnits(cur.MinimumBalance)
	if err != nil {
		return err
	}

	if amount < minimum {
		return domain.ErrBelowMinimumBalance
	}

	m := &hooks.Mutation{
		Op:           hooks.OpSet,
		UUID:         uuid,
		CurrencyType: currencyType,
		Amount:       amount,
		Reason:       reason,
	}

	if !s.hooks.RunBefore(ctx, m) {
		return domain.ErrOperationCancelled
	}

	// Listeners may have rewritten the amount.
	if m.Amount < minimum {
		return domain.ErrBelowMinimumBalance
	}

	previous, err := s.BalanceOrInit(ctx, uuid, currencyType)
	if err != nil {
		return err
	}

	if err := s.balances.Upsert(ctx, uuid, currencyType, m.Amount); err != nil {
		return err
	}

	if change := m.Amount - previous; change != 0 {
		entry := domain.LogEntry{
			UUID:           uuid,
			CurrencyType:   currencyType,
			ChangeAmount:   change,
			PreviousAmount: previous,
			Reason:         m.Reason,
		}

		// The balance is already committed; a log failure must not undo it.
		if err := s.logs.Append(ctx, entry); err != nil {
			l.Error().Err(err).Msg("log append failed after set")
		}
	}

	s.hooks.RunAfter(ctx, *m)

	return nil
}

// AddBalance credits delta minor units. A zero delta is a no-op success;
// a negative delta is rejected. The row is created with the configured
// initial balance when missing, and the increase happens in a single
// conditional UPDATE so concurrent writers cannot race it past int64.
func (s *Service) AddBalance(ctx context.Context, uuid, currencyType string, delta int64, reason domain.Reason) (err error) {
	start := time.Now()
	defer func() { s.observe("add", start, err) }()

	l := zerolog.Ctx(ctx)

	if _, err := s.currencies.Get(currencyType); err != nil {
		return err
	}

	if delta == 0 {
		return nil
	}

	if delta < 0 {
		return domain.ErrInvalidAmount
	}

	m := &hooks.Mutation{
		Op:           hooks.OpAdd,
		UUID:         uuid,
		CurrencyType: currencyType,
		Amount:       delta,
		Reason:       reason,
	}

	if !s.hooks.RunBefore(ctx, m) {
		return domain.ErrOperationCancelled
	}

	if m.Amount <= 0 {
		return domain.ErrInvalidAmount
	}

	previous, err := s.BalanceOrInit(ctx, uuid, currencyType)
	if err != nil {
		return err
	}

	if m.Amount > math.MaxInt64-previous {
		return domain.ErrInvalidAmount
	}

	ok, err := s.balances.Add(ctx, uuid, currencyType, m.Amount)
	if err != nil {
		return err
	}

	if !ok {
		// Zero rows: the account vanished or a concurrent credit moved
		// the balance past the overflow bound.
		if _, err := s.balances.Get(ctx, uuid, currencyType); err != nil {
			return err
		}

		return domain.ErrInvalidAmount
	}

	entry := domain.LogEntry{
		UUID:           uuid,
		CurrencyType:   currencyType,
		ChangeAmount:   m.Amount,
		PreviousAmount: previous,
		Reason:         m.Reason,
	}

	if err := s.logs.Append(ctx, entry); err != nil {
		l.Error().Err(err).Msg("log append failed after add")
	}

	s.hooks.RunAfter(ctx, *m)

	return nil
}

// SubtractBalance debits delta minor units. The account is never
// auto-created; sufficiency and the currency floor are re-validated by
// the conditional UPDATE at the instant of the write.
func (s *Service) SubtractBalance(ctx context.Context, uuid, currencyType string, delta int64, reason domain.Reason) (err error) {
	start := time.Now()
	defer func() { s.observe("subtract", start, err) }()

	l := zerolog.Ctx(ctx)

	cur, err := s.currencies.Get(currencyType)
	if err != nil {
		return err
	}

	if delta == 0 {
		return nil
	}

	if delta < 0 {
		return domain.ErrInvalidAmount
	}

	minimum, err := minorUnits(cur.MinimumBalance)
	if err != nil {
		return err
	}

	m := &hooks.Mutation{
		Op:           hooks.OpSubtract,
		UUID:         uuid,
		CurrencyType: currencyType,
		Amount:       delta,
		Reason:       reason,
	}

	if !s.hooks.RunBefore(ctx, m) {
		return domain.ErrOperationCancelled
	}

	if m.Amount <= 0 {
		return domain.ErrInvalidAmount
	}

	b, err := s.balances.Get(ctx, uuid, currencyType)
	if err != nil {
		return err
	}

	if b.Amount < m.Amount {
		return domain.ErrInsufficientBalance
	}

	if b.Amount-m.Amount < minimum {
		return domain.ErrBelowMinimumBalance
	}

	ok, err := s.balances.Subtract(ctx, uuid, currencyType, m.Amount, minimum)
	if err != nil {
		return err
	}

	if !ok {
		// The conditional update lost a race; re-query for the precise cause.
		return s.subtractFailure(ctx, uuid, currencyType, m.Amount)
	}

	entry := domain.LogEntry{
		UUID:           uuid,
		CurrencyType:   currencyType,
		ChangeAmount:   -m.Amount,
		PreviousAmount: b.Amount,
		Reason:         m.Reason,
	}

	if err := s.logs.Append(ctx, entry); err != nil {
		l.Error().Err(err).Msg("log append failed after subtract")
	}

	s.hooks.RunAfter(ctx, *m)

	return nil
}

func (s *Service) subtractFailure(ctx context.Context, uuid, currencyType string, delta int64) error {
	b, err := s.balances.Get(ctx, uuid, currencyType)
	if err != nil {
		return err
	}

	if b.Amount < delta {
		return domain.ErrInsufficientBalance
	}

	return domain.ErrBelowMinimumBalance
}

// Transfer moves amount minor units between two players, deducting the
// configured tax from the credited side. Both legs and their log entries
// commit in one backend transaction.
func (s *Service) Transfer(ctx context.Context, senderUUID, receiverUUID, currencyType string, amount int64, reason domain.Reason) (res domain.TransferResult, err error) {
	start := time.Now()
	defer func() { s.observe("transfer", start, err) }()

	if senderUUID == receiverUUID {
		return res, domain.ErrSelfTransfer
	}

	if amount <= 0 {
		return res, domain.ErrInvalidAmount
	}

	cur, err := s.currencies.Get(currencyType)
	if err != nil {
		return res, err
	}

	if !cur.TransferAllowed {
		return res, domain.ErrTransferNotAllowed
	}

	minimum, err := minorUnits(cur.MinimumBalance)
	if err != nil {
		return res, err
	}

	initial, err := minorUnits(cur.InitialBalance)
	if err != nil {
		return res, err
	}

	tax := moneypkg.Tax(amount, cur.TransferTaxRate)

	m := &hooks.Mutation{
		Op:           hooks.OpTransfer,
		UUID:         senderUUID,
		CurrencyType: currencyType,
		Amount:       amount,
		ReceiverUUID: receiverUUID,
		Tax:          tax,
		Received:     amount - tax,
		Reason:       reason,
	}

	if !s.hooks.RunBefore(ctx, m) {
		return res, domain.ErrOperationCancelled
	}

	if m.Amount <= 0 {
		return res, domain.ErrInvalidAmount
	}

	arg := domain.TransferTxParams{
		SenderUUID:      senderUUID,
		ReceiverUUID:    receiverUUID,
		CurrencyType:    currencyType,
		Amount:          m.Amount,
		Tax:             m.Tax,
		Received:        m.Received,
		SenderMinimum:   minimum,
		ReceiverInitial: initial,
		SenderReason: domain.Reason{
			Tag:     m.Reason.Tag,
			Actor:   m.Reason.Actor,
			Context: fmt.Sprintf("to %s tax %s", receiverUUID, moneypkg.Format(m.Tax)),
		},
		ReceiverReason: domain.Reason{
			Tag:     m.Reason.Tag,
			Actor:   m.Reason.Actor,
			Context: fmt.Sprintf("from %s amount %s tax %s", senderUUID, moneypkg.Format(m.Amount), moneypkg.Format(m.Tax)),
		},
	}

	if err := s.transfers.Transfer(ctx, arg); err != nil {
		return res, err
	}

	s.hooks.RunAfter(ctx, *m)

	res = domain.TransferResult{
		SenderUUID:   senderUUID,
		ReceiverUUID: receiverUUID,
		CurrencyType: currencyType,
		Amount:       m.Amount,
		Tax:          m.Tax,
		Received:     m.Received,
	}

	return res, nil
}

// Logs returns transaction log entries matching the filter.
func (s *Service) Logs(ctx context.Context, f domain.LogFilter) ([]domain.LogEntry, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}

	return s.logs.Query(ctx, f)
}

// TopBalances returns the balance-descending ranking for one currency.
func (s *Service) TopBalances(ctx context.Context, currencyType string, limit, offset int32) ([]domain.RankedBalance, error) {
	if _, err := s.currencies.Get(currencyType); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 10
	}

	return s.balances.Top(ctx, currencyType, limit, offset)
}
