package prompt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cex-withdraw-go/internal/amount"
	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
)

var (
	tokenPattern   = regexp.MustCompile(`^[A-Z]+$`)
	amountPattern  = regexp.MustCompile(`^\d+(\.\d+)?$`)
	integerPattern = regexp.MustCompile(`^\d+$`)
)

// ValidateToken accepts letters only, case-insensitively
func ValidateToken(input string) error {
	if !tokenPattern.MatchString(strings.ToUpper(strings.TrimSpace(input))) {
		return errors.New("token name must contain letters only, without spaces or digits")
	}
	return nil
}

// ParseAmount parses a non-negative dot-separated number, optionally bounded below
// and limited to the venue's decimal places. A nil lowerBound or zero maxDecimals disables the check.
func ParseAmount(input string, lowerBound *decimal.Decimal, maxDecimals int) (decimal.Decimal, error) {
	input = strings.TrimSpace(input)
	if !amountPattern.MatchString(input) {
		return decimal.Zero, errors.New("enter a valid number (use a dot as decimal separator)")
	}

	value, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("enter a valid number: %w", err)
	}
	if lowerBound != nil && value.LessThan(*lowerBound) {
		return decimal.Zero, fmt.Errorf("value cannot be less than %s", amount.Format(*lowerBound))
	}
	if maxDecimals > 0 && amount.DecimalPlaces(value) > maxDecimals {
		return decimal.Zero, fmt.Errorf("at most %d decimal places are allowed on this venue", maxDecimals)
	}
	return value, nil
}

// ParseDecimalPlaces accepts an integer in [minimum implied by r, venueMax]
func ParseDecimalPlaces(input string, r models.AmountRange, venueMax int) (int, error) {
	input = strings.TrimSpace(input)
	if !integerPattern.MatchString(input) {
		return 0, errors.New("enter a whole number")
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("enter a whole number: %w", err)
	}
	if value > venueMax {
		return 0, fmt.Errorf("the venue allows at most %d decimal places", venueMax)
	}
	if minimum := amount.MinDecimals(r); value < minimum {
		return 0, fmt.Errorf("at least %d decimal places are required for this amount range", minimum)
	}
	return value, nil
}

// ParseSeconds accepts a non-negative whole number of seconds not below lowerBound
func ParseSeconds(input string, lowerBound int) (int, error) {
	input = strings.TrimSpace(input)
	if !integerPattern.MatchString(input) {
		return 0, errors.New("enter a whole number of seconds")
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("enter a whole number of seconds: %w", err)
	}
	if value < lowerBound {
		return 0, fmt.Errorf("value cannot be less than %d", lowerBound)
	}
	return value, nil
}
