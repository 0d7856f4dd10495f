package domain

import "errors"

// ErrCurrencyNotConfigured indicates a currency type absent from the policy table.
var ErrCurrencyNotConfigured = errors.New("currency not configured")

// Currency holds the configured policy for one currency type.
// Monetary fields are decimal amounts converted to minor units at use time.
type Currency struct {
	Type            string  `mapstructure:"type" json:"type"`
	InitialBalance  float64 `mapstructure:"initial_balance" json:"initial_balance"`
	MinimumBalance  float64 `mapstructure:"minimum_balance" json:"minimum_balance"`
	TransferAllowed bool    `mapstructure:"transfer_allowed" json:"transfer_allowed"`
	TransferTaxRate float64 `mapstructure:"transfer_tax_rate" json:"transfer_tax_rate"`
}

// Currencies is the policy table keyed by currency type.
// It is loaded once at startup and read-only afterwards.
type Currencies map[string]Currency

// Get returns the policy for the given currency type.
func (c Currencies) Get(currencyType string) (Currency, error) {
	cur, ok := c[currencyType]
	if !ok {
		return Currency{}, ErrCurrencyNotConfigured
	}

	return cur, nil
}
