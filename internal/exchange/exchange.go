package exchange

import (
	"context"
	"fmt"
	"strings"

	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Placeholder values written by the setup tool; treated as missing
const (
	PlaceholderApiKey      = "YOUR_API_KEY_HERE"
	PlaceholderApiSecret   = "YOUR_API_SECRET_HERE"
	PlaceholderApiPassword = "YOUR_API_PASSWORD_HERE"
)

// Order is a single withdrawal to submit
type Order struct {
	Token   string
	Amount  decimal.Decimal
	Address string
	Chain   models.ChainOption
}

// Exchange is the withdrawal capability of one venue
type Exchange struct {
	profile Profile
	client  Client
}

// New validates creds against the profile and wraps client
func New(profile Profile, creds models.Credentials, client Client) (*Exchange, error) {
	if err := ValidateCredentials(profile, creds); err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: no client for %s", ErrConfig, profile.DisplayName)
	}
	return &Exchange{profile: profile, client: client}, nil
}

// ValidateCredentials rejects missing or placeholder keys and a missing API password where the venue needs one
func ValidateCredentials(profile Profile, creds models.Credentials) error {
	name := strings.ToUpper(profile.Id)
	if isUnset(creds.ApiKey, PlaceholderApiKey) {
		zap.L().Error("API key is not configured", zap.String("venue", name))
		return fmt.Errorf("%w: API key for %s is not configured", ErrConfig, name)
	}
	if isUnset(creds.ApiSecret, PlaceholderApiSecret) {
		zap.L().Error("API secret is not configured", zap.String("venue", name))
		return fmt.Errorf("%w: API secret for %s is not configured", ErrConfig, name)
	}
	if profile.RequiresApiPassword && isUnset(creds.Password, PlaceholderApiPassword) {
		zap.L().Error("API password is not configured", zap.String("venue", name))
		return fmt.Errorf("%w: API password for %s is not configured", ErrConfig, name)
	}
	return nil
}

func isUnset(value, placeholder string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == placeholder
}

func (e *Exchange) Name() string {
	return e.profile.Id
}

func (e *Exchange) Profile() Profile {
	return e.profile
}

func (e *Exchange) MaxDecimalPlaces() int {
	return e.profile.MaxDecimalPlaces
}

// Authenticate performs a balance fetch to prove connectivity and credentials
func (e *Exchange) Authenticate(ctx context.Context) error {
	zap.L().Info("Testing authorization", zap.String("venue", e.profile.DisplayName))
	if _, err := e.client.FetchBalance(ctx, e.profile.account()); err != nil {
		zap.L().Error("Authorization failed",
			zap.String("venue", e.profile.DisplayName),
			zap.Error(err))
		return fmt.Errorf("%s authorization: %w", e.profile.DisplayName, err)
	}
	zap.L().Info("Authorization successful", zap.String("venue", e.profile.DisplayName))
	return nil
}

// FetchBalance returns the available balance of token, zero when the venue does not hold it
func (e *Exchange) FetchBalance(ctx context.Context, token string) (decimal.Decimal, error) {
	balance, err := e.client.FetchBalance(ctx, e.profile.account())
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to fetch %s balance: %w", e.profile.DisplayName, err)
	}

	if amount, ok := balance.Free[token]; ok {
		return amount.Decimal, nil
	}
	if amount, ok := balance.Total[token]; ok {
		return amount.Decimal, nil
	}
	return decimal.Zero, nil
}

// ListWithdrawableNetworks returns the chains token can currently be withdrawn on
func (e *Exchange) ListWithdrawableNetworks(ctx context.Context, token string) (map[string]models.ChainInfo, error) {
	zap.L().Info("Fetching withdrawal networks",
		zap.String("venue", e.profile.DisplayName),
		zap.String("token", token))

	currency, err := e.client.FetchCurrency(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %s currency metadata: %w", token, err)
	}
	if currency == nil {
		zap.L().Warn("Token is not listed on venue",
			zap.String("venue", e.profile.DisplayName),
			zap.String("token", token))
		return map[string]models.ChainInfo{}, nil
	}

	chains := e.profile.Networks(currency)
	for key, chain := range chains {
		if !chain.WithdrawEnable {
			delete(chains, key)
		}
	}

	zap.L().Debug("Withdrawable networks resolved",
		zap.String("venue", e.profile.DisplayName),
		zap.String("token", token),
		zap.Int("count", len(chains)))
	return chains, nil
}

// SubmitWithdrawal sends the order and returns the venue withdrawal id
func (e *Exchange) SubmitWithdrawal(ctx context.Context, order Order) (string, error) {
	params := e.withdrawalParams(order.Chain)

	zap.L().Debug("Submitting withdrawal",
		zap.String("venue", e.profile.DisplayName),
		zap.String("address", order.Address),
		zap.String("amount", order.Amount.String()),
		zap.String("token", order.Token),
		zap.String("chain", order.Chain.ChainId))

	receipt, err := e.client.Withdraw(ctx, WithdrawParams{
		Code:    order.Token,
		Amount:  order.Amount,
		Address: order.Address,
		Params:  params,
	})
	if err != nil {
		return "", fmt.Errorf("unable to withdraw %s %s to %s: %w", order.Amount.String(), order.Token, order.Address, err)
	}

	id := e.profile.WithdrawalId(receipt)
	if id == "" {
		return "", fmt.Errorf("withdraw %s %s to %s: %w", order.Amount.String(), order.Token, order.Address, ErrMissingWithdrawalID)
	}
	return id, nil
}

func (e *Exchange) withdrawalParams(chain models.ChainOption) map[string]string {
	params := map[string]string{
		e.profile.NetworkParamName: chain.ChainId,
	}
	if e.profile.IncludeFeeInParams {
		params["fee"] = chain.WithdrawFee.String()
	}
	if e.profile.RequiresPassword {
		params["pwd"] = passwordPlaceholder
	}
	return params
}
