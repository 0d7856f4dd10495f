package transferrepo_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/playforge/economy/internal/domain"
	"github.com/playforge/economy/internal/storage"
	"github.com/playforge/economy/internal/transferrepo"
	"github.com/playforge/economy/pkg/randompkg"
)

func newMockRepo(t *testing.T) (*transferrepo.Repo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return transferrepo.New(storage.NewWithDB(db, storage.KindPostgres)), mock
}

func transferArg(sender, receiver string) domain.TransferTxParams {
	return domain.TransferTxParams{
		SenderUUID:      sender,
		ReceiverUUID:    receiver,
		CurrencyType:    "money",
		Amount:          10000,
		Tax:             500,
		Received:        9500,
		SenderMinimum:   0,
		ReceiverInitial: 10000,
		SenderReason:    domain.Reason{Tag: "pay", Actor: sender, Context: "to " + receiver + " tax 5.00"},
		ReceiverReason:  domain.Reason{Tag: "pay", Actor: sender, Context: "from " + sender + " amount 100.00 tax 5.00"},
	}
}

func TestTransfer(t *testing.T) {
	sender := randompkg.UUID()
	receiver := randompkg.UUID()
	ctx := context.Background()

	balanceRows := func(amount int64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"amount", "last_updated"}).AddRow(amount, int64(0))
	}

	t.Run("BothLegsAndLogsCommitTogether", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()

		// Debit leg.
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(sender, "money").
			WillReturnRows(balanceRows(15000))
		mock.ExpectExec("UPDATE player_balances").
			WithArgs(int64(10000), sqlmock.AnyArg(), sender, "money", int64(10000), int64(10000)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO economy_log").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), sender, "money", int64(-10000), int64(15000),
				"pay", sender, "to "+receiver+" tax 5.00").
			WillReturnResult(sqlmock.NewResult(1, 1))

		// Credit leg.
		mock.ExpectExec("DO NOTHING").
			WithArgs(receiver, "money", int64(10000), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(receiver, "money").
			WillReturnRows(balanceRows(10000))
		mock.ExpectExec("UPDATE player_balances").
			WithArgs(int64(9500), sqlmock.AnyArg(), receiver, "money", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO economy_log").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), receiver, "money", int64(9500), int64(10000),
				"pay", sender, "from "+sender+" amount 100.00 tax 5.00").
			WillReturnResult(sqlmock.NewResult(2, 1))

		mock.ExpectCommit()

		err := repo.Transfer(ctx, transferArg(sender, receiver))
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientBalanceRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(sender, "money").
			WillReturnRows(balanceRows(5000))
		mock.ExpectRollback()

		err := repo.Transfer(ctx, transferArg(sender, receiver))
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SenderAccountMissingRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(sender, "money").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.Transfer(ctx, transferArg(sender, receiver))
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreditFailureRollsBackDebit", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		boom := errors.New("disk full")

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(sender, "money").
			WillReturnRows(balanceRows(15000))
		mock.ExpectExec("UPDATE player_balances").
			WithArgs(int64(10000), sqlmock.AnyArg(), sender, "money", int64(10000), int64(10000)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO economy_log").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), sender, "money", int64(-10000), int64(15000),
				"pay", sender, "to "+receiver+" tax 5.00").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec("DO NOTHING").
			WithArgs(receiver, "money", int64(10000), sqlmock.AnyArg()).
			WillReturnError(boom)
		mock.ExpectRollback()

		err := repo.Transfer(ctx, transferArg(sender, receiver))
		require.Error(t, err)

		var se *storage.Error
		require.ErrorAs(t, err, &se)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LogWriteFailureRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(sender, "money").
			WillReturnRows(balanceRows(15000))
		mock.ExpectExec("UPDATE player_balances").
			WithArgs(int64(10000), sqlmock.AnyArg(), sender, "money", int64(10000), int64(10000)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO economy_log").
			ExpectExec().
			WillReturnError(errors.New("log table gone"))
		mock.ExpectRollback()

		err := repo.Transfer(ctx, transferArg(sender, receiver))
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ZeroReceivedSkipsCreditLeg", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		arg := transferArg(sender, receiver)
		arg.Tax = arg.Amount
		arg.Received = 0

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT amount, last_updated FROM player_balances").
			WithArgs(sender, "money").
			WillReturnRows(balanceRows(15000))
		mock.ExpectExec("UPDATE player_balances").
			WithArgs(int64(10000), sqlmock.AnyArg(), sender, "money", int64(10000), int64(10000)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectPrepare("INSERT INTO economy_log").
			ExpectExec().
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Transfer(ctx, arg)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
