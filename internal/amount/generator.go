package amount

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidRange          = errors.New("invalid amount range")
	ErrPrecisionExceedsVenue = errors.New("amount precision exceeds venue limit")
)

// Source is the randomness used to draw amounts and decimal counts
type Source interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Global draws from the process-wide math/rand/v2 generator
var Global Source = globalSource{}

// Generator produces randomized withdrawal amounts that never look rounder
// than the bounds the operator typed.
type Generator struct {
	rnd Source
}

func NewGenerator(rnd Source) *Generator {
	if rnd == nil {
		rnd = Global
	}
	return &Generator{rnd: rnd}
}

// DecimalPlaces counts the digits after the decimal point as the value is written,
// ignoring trailing zeros (1.50 -> 1).
func DecimalPlaces(d decimal.Decimal) int {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// MinDecimals is the precision floor implied by an amount range
func MinDecimals(r models.AmountRange) int {
	return max(DecimalPlaces(r.Min), DecimalPlaces(r.Max))
}

// ValidateRange checks the bounds are usable for a venue with the given precision limit
func ValidateRange(r models.AmountRange, venueMaxDecimals int) error {
	if r.Min.IsNegative() {
		return fmt.Errorf("%w: minimum %s is negative", ErrInvalidRange, r.Min.String())
	}
	if r.Max.LessThan(r.Min) {
		return fmt.Errorf("%w: maximum %s is below minimum %s", ErrInvalidRange, r.Max.String(), r.Min.String())
	}
	if floor := MinDecimals(r); floor > venueMaxDecimals {
		return fmt.Errorf("%w: bounds use %d decimal places, venue allows %d", ErrPrecisionExceedsVenue, floor, venueMaxDecimals)
	}
	return nil
}

// Generate draws an amount in [r.Min, r.Max] rounded to a decimal count between
// the range's natural precision and min(requestedDecimals, venueMaxDecimals).
func (g *Generator) Generate(r models.AmountRange, requestedDecimals, venueMaxDecimals int) (decimal.Decimal, error) {
	if err := ValidateRange(r, venueMaxDecimals); err != nil {
		return decimal.Zero, err
	}

	minDecimals := MinDecimals(r)
	places := min(requestedDecimals, venueMaxDecimals)

	decimals := minDecimals
	if places >= minDecimals {
		decimals = minDecimals + g.rnd.IntN(places-minDecimals+1)
	} else {
		zap.L().Warn("Requested decimal places below amount precision, using minimum",
			zap.Int("requested", requestedDecimals),
			zap.Int("decimals", minDecimals))
	}

	span := r.Max.Sub(r.Min)
	drawn := r.Min.Add(span.Mul(decimal.NewFromFloat(g.rnd.Float64())))
	rounded := drawn.Round(int32(decimals))

	zap.L().Debug("Generated withdrawal amount",
		zap.String("amount", rounded.String()),
		zap.Int("decimals", decimals))

	return rounded, nil
}

// Format renders an amount for operators: at most five decimal places, trailing zeros dropped
func Format(d decimal.Decimal) string {
	return d.Round(5).String()
}
