package integrationtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/hooks"
	"github.com/playforge/economy/internal/ledgerservice"
)

const (
	senderUUID   = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
	receiverUUID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func TestLedgerLifecycle(t *testing.T) {
	ctx := context.Background()

	backend := SetupBackend(t)
	svc := ledgerservice.New(backend, Currencies(), hooks.NewRing(), nil)

	reason := domain.Reason{Tag: "test", Actor: "suite"}

	// Reading before the account exists must not create it.
	_, err := svc.Balance(ctx, senderUUID, "money")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	// First touch initializes with the configured 100.00.
	amount, err := svc.BalanceOrInit(ctx, senderUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(10000), amount)

	// A second init is a no-op.
	amount, err = svc.BalanceOrInit(ctx, senderUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(10000), amount)

	require.NoError(t, svc.AddBalance(ctx, senderUUID, "money", 5000, reason))

	amount, err = svc.Balance(ctx, senderUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(15000), amount)

	// Overdraw fails and leaves the balance untouched.
	err = svc.SubtractBalance(ctx, senderUUID, "money", 20000, reason)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	amount, err = svc.Balance(ctx, senderUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(15000), amount)

	require.NoError(t, svc.SubtractBalance(ctx, senderUUID, "money", 2500, reason))

	// Transfer 100.00 with the 5% tax; the receiver account does not
	// exist yet and is initialized inside the transaction.
	result, err := svc.Transfer(ctx, senderUUID, receiverUUID, "money", 10000, reason)
	require.NoError(t, err)
	require.Equal(t, int64(500), result.Tax)
	require.Equal(t, int64(9500), result.Received)

	amount, err = svc.Balance(ctx, senderUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(2500), amount)

	amount, err = svc.Balance(ctx, receiverUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(19500), amount)
}

func TestLedgerLogChain(t *testing.T) {
	ctx := context.Background()

	backend := SetupBackend(t)
	svc := ledgerservice.New(backend, Currencies(), hooks.NewRing(), nil)

	reason := domain.Reason{Tag: "quest", Actor: "server"}

	_, err := svc.BalanceOrInit(ctx, senderUUID, "money")
	require.NoError(t, err)

	require.NoError(t, svc.AddBalance(ctx, senderUUID, "money", 5000, reason))
	require.NoError(t, svc.SubtractBalance(ctx, senderUUID, "money", 2500, reason))

	_, err = svc.Transfer(ctx, senderUUID, receiverUUID, "money", 10000, domain.Reason{Tag: "trade", Actor: senderUUID})
	require.NoError(t, err)

	entries, err := svc.Logs(ctx, domain.LogFilter{UUID: senderUUID, Ascending: true})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Every entry reconstructs the balance it produced.
	running := int64(10000)
	for _, e := range entries {
		require.Equal(t, running, e.PreviousAmount)
		running = e.PreviousAmount + e.ChangeAmount
	}
	require.Equal(t, int64(2500), running)

	require.Equal(t, int64(5000), entries[0].ChangeAmount)
	require.Equal(t, int64(-2500), entries[1].ChangeAmount)
	require.Equal(t, int64(-10000), entries[2].ChangeAmount)
	require.Equal(t, "trade", entries[2].Reason.Tag)

	// The credit leg logged the full provenance on the receiver side.
	entries, err = svc.Logs(ctx, domain.LogFilter{UUID: receiverUUID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(9500), entries[0].ChangeAmount)
	require.Contains(t, entries[0].Reason.Context, senderUUID)

	// Tag filtering narrows to the quest entries.
	entries, err = svc.Logs(ctx, domain.LogFilter{UUID: senderUUID, ReasonTag: "quest"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestLedgerNegativeFloor(t *testing.T) {
	ctx := context.Background()

	backend := SetupBackend(t)
	svc := ledgerservice.New(backend, Currencies(), hooks.NewRing(), nil)

	reason := domain.Reason{Tag: "penalty", Actor: "server"}

	_, err := svc.BalanceOrInit(ctx, senderUUID, "gems")
	require.NoError(t, err)

	// gems start at zero and may go down to the -50.00 floor.
	require.NoError(t, svc.AddBalance(ctx, senderUUID, "gems", 1000, reason))
	require.NoError(t, svc.SubtractBalance(ctx, senderUUID, "gems", 4000, reason))

	amount, err := svc.Balance(ctx, senderUUID, "gems")
	require.NoError(t, err)
	require.Equal(t, int64(-3000), amount)

	err = svc.SubtractBalance(ctx, senderUUID, "gems", 3000, reason)
	require.ErrorIs(t, err, domain.ErrBelowMinimumBalance)

	// gems are not transferable.
	_, err = svc.Transfer(ctx, senderUUID, receiverUUID, "gems", 100, reason)
	require.ErrorIs(t, err, domain.ErrTransferNotAllowed)
}

func TestLedgerHooks(t *testing.T) {
	ctx := context.Background()

	backend := SetupBackend(t)

	ring := hooks.NewRing()
	ring.Before(func(_ context.Context, m *hooks.Mutation) {
		if m.Op == hooks.OpSubtract && m.Amount > 5000 {
			m.Cancel()
		}
	})

	var seen []hooks.Op
	ring.After(func(_ context.Context, m hooks.Mutation) {
		seen = append(seen, m.Op)
	})

	svc := ledgerservice.New(backend, Currencies(), ring, nil)

	reason := domain.Reason{Tag: "shop", Actor: "server"}

	_, err := svc.BalanceOrInit(ctx, senderUUID, "money")
	require.NoError(t, err)

	require.NoError(t, svc.SubtractBalance(ctx, senderUUID, "money", 1000, reason))

	err = svc.SubtractBalance(ctx, senderUUID, "money", 9000, reason)
	require.ErrorIs(t, err, domain.ErrOperationCancelled)

	amount, err := svc.Balance(ctx, senderUUID, "money")
	require.NoError(t, err)
	require.Equal(t, int64(9000), amount)

	// The cancelled mutation never reached the after listeners.
	require.Equal(t, []hooks.Op{hooks.OpSubtract}, seen)
}

func TestLedgerTopBalances(t *testing.T) {
	ctx := context.Background()

	backend := SetupBackend(t)
	svc := ledgerservice.New(backend, Currencies(), hooks.NewRing(), nil)

	reason := domain.Reason{Tag: "seed", Actor: "suite"}

	players := map[string]int64{
		"f47ac10b-58cc-4372-a567-0e02b2c3d479": 30000,
		"7c9e6679-7425-40de-944b-e07fc1f90ae7": 50000,
		"550e8400-e29b-41d4-a716-446655440000": 10000,
	}

	for uuid, amount := range players {
		require.NoError(t, svc.SetBalance(ctx, uuid, "money", amount, reason))
	}

	top, err := svc.TopBalances(ctx, "money", 2, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, int64(50000), top[0].Amount)
	require.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", top[0].UUID)
	require.Equal(t, int64(30000), top[1].Amount)

	top, err = svc.TopBalances(ctx, "money", 2, 2)
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.Equal(t, int64(10000), top[0].Amount)
}
