// Package configpkg provides parsing functionality for the app configuration.
package configpkg

import (
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper from a config file or environment variables.
type Config struct {
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	StorageSource  string `mapstructure:"STORAGE_SOURCE"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	Environment    string `mapstructure:"GO_ENV"`
}

// Currency mirrors one entry of the currency policy file.
type Currency struct {
	Type            string  `mapstructure:"type"`
	InitialBalance  float64 `mapstructure:"initial_balance"`
	MinimumBalance  float64 `mapstructure:"minimum_balance"`
	TransferAllowed bool    `mapstructure:"transfer_allowed"`
	TransferTaxRate float64 `mapstructure:"transfer_tax_rate"`
}

// Load reads configuration from file or environment variables.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}

// LoadCurrencies reads the currency policy table.
func LoadCurrencies(path string) ([]Currency, error) {
	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("currencies")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var out struct {
		Currencies []Currency `mapstructure:"currencies"`
	}

	if err := v.Unmarshal(&out); err != nil {
		return nil, err
	}

	return out.Currencies, nil
}
