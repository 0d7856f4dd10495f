// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that no balance row exists for the player and currency.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBelowMinimumBalance indicates that the operation would leave the balance under the configured floor.
	ErrBelowMinimumBalance = errors.New("balance below configured minimum")
	// ErrInvalidAmount indicates an amount that is NaN, infinite, wrongly signed or out of range.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOperationCancelled indicates that a before-hook vetoed the mutation.
	ErrOperationCancelled = errors.New("operation cancelled")
	// ErrSelfTransfer indicates a transfer where sender and receiver are the same player.
	ErrSelfTransfer = errors.New("cannot transfer to self")
	// ErrTransferNotAllowed indicates that the currency is not flagged as transferable.
	ErrTransferNotAllowed = errors.New("currency transfer not allowed")
)

// Balance holds the stored amount for one player and currency.
// Amount is in minor units (hundredths).
type Balance struct {
	UUID         string    `json:"uuid"`
	CurrencyType string    `json:"currency_type"`
	Amount       int64     `json:"amount"`
	LastUpdated  time.Time `json:"last_updated"`
}

// RankedBalance is one row of a balance-descending ranking.
type RankedBalance struct {
	UUID   string `json:"uuid"`
	Amount int64  `json:"amount"`
}

// TransferResult holds the as-committed outcome of a transfer.
type TransferResult struct {
	SenderUUID   string `json:"sender_uuid"`
	ReceiverUUID string `json:"receiver_uuid"`
	CurrencyType string `json:"currency_type"`
	Amount       int64  `json:"amount"`
	Tax          int64  `json:"tax"`
	Received     int64  `json:"received"`
}
