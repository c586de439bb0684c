package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountRange is an inclusive [Min, Max] withdrawal amount bound
type AmountRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Average returns the midpoint of the range
func (r AmountRange) Average() decimal.Decimal {
	return r.Min.Add(r.Max).Div(decimal.NewFromInt(2))
}

func (r AmountRange) String() string {
	return fmt.Sprintf("%s-%s", r.Min.String(), r.Max.String())
}

// DelayRange is an inclusive range of whole seconds to pause between wallets
type DelayRange struct {
	MinSeconds int
	MaxSeconds int
}

// WithdrawalRequest is the per-run working state owned by the orchestrator.
// Address changes once per wallet; Amount may be replaced once when the
// selected chain's minimum is above the configured bound.
type WithdrawalRequest struct {
	Token         string
	Amount        AmountRange
	DecimalPlaces int
	Address       string
	Chain         *ChainOption
}

// WithdrawalResult maps destination addresses to success, preserving processing order
type WithdrawalResult struct {
	order    []string
	outcomes map[string]bool
}

func NewWithdrawalResult() *WithdrawalResult {
	return &WithdrawalResult{outcomes: make(map[string]bool)}
}

// Set records the outcome for address. A repeated address keeps its original position.
func (r *WithdrawalResult) Set(address string, success bool) {
	if _, ok := r.outcomes[address]; !ok {
		r.order = append(r.order, address)
	}
	r.outcomes[address] = success
}

func (r *WithdrawalResult) Get(address string) (success, ok bool) {
	success, ok = r.outcomes[address]
	return success, ok
}

func (r *WithdrawalResult) Has(address string) bool {
	_, ok := r.outcomes[address]
	return ok
}

func (r *WithdrawalResult) Len() int {
	return len(r.order)
}

// Addresses returns the recorded addresses in processing order
func (r *WithdrawalResult) Addresses() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Counts returns the number of successful and failed withdrawals
func (r *WithdrawalResult) Counts() (succeeded, failed int) {
	for _, ok := range r.outcomes {
		if ok {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
