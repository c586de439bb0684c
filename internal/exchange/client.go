package exchange

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType selects the venue sub-account balances and withdrawals are routed through
type AccountType string

const (
	AccountSpot    AccountType = "spot"
	AccountFunding AccountType = "funding"
)

// Client is the wire-level capability for one venue session, bound to its credentials.
// Authentication failures must wrap ErrAuthentication.
type Client interface {
	FetchBalance(ctx context.Context, account AccountType) (*Balance, error)
	// FetchCurrency returns nil, nil when the venue does not list code.
	FetchCurrency(ctx context.Context, code string) (*Currency, error)
	Withdraw(ctx context.Context, params WithdrawParams) (*WithdrawalReceipt, error)
}

// Number decodes venue amounts sent either as JSON numbers or as strings.
// Empty strings and null decode to zero.
type Number struct {
	decimal.Decimal
}

func NewNumber(s string) Number {
	return Number{Decimal: decimal.RequireFromString(s)}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		n.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	n.Decimal = d
	return nil
}

// Balance holds per-currency amounts for one account
type Balance struct {
	Free  map[string]Number `json:"free"`
	Total map[string]Number `json:"total"`
}

// Currency is the venue metadata for a single token
type Currency struct {
	Code     string             `json:"code"`
	Networks map[string]Network `json:"networks"`
	Info     CurrencyInfo       `json:"info"`
}

// Network is one entry of the unified networks map
type Network struct {
	Id       string        `json:"id"`
	Withdraw *bool         `json:"withdraw"`
	Fee      Number        `json:"fee"`
	Limits   NetworkLimits `json:"limits"`
	Info     NetworkInfo   `json:"info"`
}

type NetworkLimits struct {
	Withdraw struct {
		Min Number `json:"min"`
	} `json:"withdraw"`
}

// NetworkInfo is the subset of the venue's raw per-network payload the strategies read
type NetworkInfo struct {
	// Binance, Coinex
	WithdrawEnable *bool  `json:"withdrawEnable"`
	WithdrawFee    Number `json:"withdrawFee"`
	// Bitget sends the flag as a string
	Withdrawable string `json:"withdrawable"`
	// OKX
	CanWithdraw *bool `json:"canWd"`
	// Kucoin
	IsWithdrawEnabled *bool `json:"isWithdrawEnabled"`
}

// CurrencyInfo is the subset of the venue's raw per-currency payload the strategies read
type CurrencyInfo struct {
	Chains      []CoinexChain `json:"chains"`
	NetworkList []MexcNetwork `json:"networkList"`
}

type CoinexChain struct {
	Chain             string `json:"chain"`
	WithdrawEnabled   bool   `json:"withdraw_enabled"`
	WithdrawalFee     Number `json:"withdrawal_fee"`
	MinWithdrawAmount Number `json:"min_withdraw_amount"`
}

type MexcNetwork struct {
	Network        string `json:"network"`
	NetWork        string `json:"netWork"`
	WithdrawEnable bool   `json:"withdrawEnable"`
	WithdrawFee    Number `json:"withdrawFee"`
	WithdrawMin    Number `json:"withdrawMin"`
}

// WithdrawParams is a single transfer request sent to the venue
type WithdrawParams struct {
	Code    string            `json:"code"`
	Amount  decimal.Decimal   `json:"amount"`
	Address string            `json:"address"`
	Params  map[string]string `json:"params"`
}

// WithdrawalReceipt is the venue acknowledgement of a withdrawal
type WithdrawalReceipt struct {
	Id   string `json:"id"`
	Info struct {
		WdId string `json:"wdId"`
	} `json:"info"`
}
