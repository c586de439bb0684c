package models

import "github.com/shopspring/decimal"

// Credentials holds the API access for a single venue
type Credentials struct {
	ApiKey    string `yaml:"api_key"`
	ApiSecret string `yaml:"api_secret"`
	Password  string `yaml:"password,omitempty"`
}

// Settings maps a lowercase venue id to its credentials
type Settings map[string]Credentials

// ChainInfo describes a network a token can be withdrawn on
type ChainInfo struct {
	ChainId        string
	WithdrawEnable bool
	WithdrawFee    decimal.Decimal
	WithdrawMin    decimal.Decimal
}

// ChainOption is a withdrawable chain together with the venue key it was listed under
type ChainOption struct {
	Key string
	ChainInfo
}
