package withdrawal

import (
	"context"
	"time"

	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
)

// Capability is the venue surface a batch is driven through. *exchange.Exchange satisfies it.
type Capability interface {
	Name() string
	MaxDecimalPlaces() int
	Authenticate(ctx context.Context) error
	FetchBalance(ctx context.Context, token string) (decimal.Decimal, error)
	ListWithdrawableNetworks(ctx context.Context, token string) (map[string]models.ChainInfo, error)
	SubmitWithdrawal(ctx context.Context, order exchange.Order) (string, error)
}

// ChainSelector picks one chain out of the withdrawable options, sorted by key
type ChainSelector interface {
	SelectChain(ctx context.Context, options []models.ChainOption) (models.ChainOption, error)
}

// RangeResolver supplies replacement amount bounds when the selected chain's
// minimum withdrawal is above the configured minimum
type RangeResolver interface {
	ResolveRange(ctx context.Context, chainMinimum decimal.Decimal, current models.AmountRange) (models.AmountRange, error)
}

// AmountSource draws the per-wallet amount. *amount.Generator satisfies it.
type AmountSource interface {
	Generate(r models.AmountRange, requestedDecimals, venueMaxDecimals int) (decimal.Decimal, error)
}

// SleepFunc pauses for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
