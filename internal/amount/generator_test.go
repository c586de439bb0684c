package amount

import (
	"math/rand/v2"
	"testing"

	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) IntN(n int) int   { return min(s.n, n-1) }

func amountRange(t *testing.T, lo, hi string) models.AmountRange {
	t.Helper()
	return models.AmountRange{
		Min: decimal.RequireFromString(lo),
		Max: decimal.RequireFromString(hi),
	}
}

func TestDecimalPlaces(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 0},
		{"1.5", 1},
		{"1.50", 1},
		{"2.25", 2},
		{"0.000123", 6},
		{"100", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecimalPlaces(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestMinDecimals(t *testing.T) {
	assert.Equal(t, 2, MinDecimals(amountRange(t, "1.5", "2.25")))
	assert.Equal(t, 0, MinDecimals(amountRange(t, "1", "3")))
}

func TestGenerateStaysWithinBoundsAndPrecision(t *testing.T) {
	tests := []struct {
		lo, hi    string
		requested int
		venueMax  int
	}{
		{"0.01", "0.05", 6, 6},
		{"1.5", "2.25", 4, 4},
		{"1", "2", 0, 6},
		{"10", "10", 3, 6},
		{"0.1234", "0.5", 8, 4},
		{"3.3", "7.77", 1, 6},
	}

	gen := NewGenerator(rand.New(rand.NewPCG(1, 2)))
	for _, tt := range tests {
		r := amountRange(t, tt.lo, tt.hi)
		floor := MinDecimals(r)
		for i := 0; i < 500; i++ {
			got, err := gen.Generate(r, tt.requested, tt.venueMax)
			require.NoError(t, err)
			assert.True(t, got.GreaterThanOrEqual(r.Min), "%s below %s", got, r.Min)
			assert.True(t, got.LessThanOrEqual(r.Max), "%s above %s", got, r.Max)
			assert.LessOrEqual(t, DecimalPlaces(got), tt.venueMax)
			assert.LessOrEqual(t, DecimalPlaces(got), max(floor, min(tt.requested, tt.venueMax)))
			assert.True(t, got.Equal(got.Round(int32(max(floor, min(tt.requested, tt.venueMax))))))
		}
	}
}

func TestGenerateUsesRequestedPrecisionCeiling(t *testing.T) {
	gen := NewGenerator(fixedSource{f: 0.123456789, n: 100})
	got, err := gen.Generate(amountRange(t, "1", "2"), 3, 6)
	require.NoError(t, err)
	assert.Equal(t, "1.123", got.String())
}

func TestGenerateCapsAtVenueMaximum(t *testing.T) {
	gen := NewGenerator(fixedSource{f: 0.123456789, n: 100})
	got, err := gen.Generate(amountRange(t, "1", "2"), 8, 4)
	require.NoError(t, err)
	assert.Equal(t, "1.1235", got.String())
}

func TestGenerateFallsBackToMinimumDecimals(t *testing.T) {
	gen := NewGenerator(fixedSource{f: 0.123, n: 0})
	got, err := gen.Generate(amountRange(t, "1.25", "1.75"), 1, 6)
	require.NoError(t, err)
	assert.Equal(t, "1.31", got.String())
}

func TestGenerateRejectsInvalidRanges(t *testing.T) {
	gen := NewGenerator(nil)

	_, err := gen.Generate(amountRange(t, "2", "1"), 2, 6)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = gen.Generate(amountRange(t, "-1", "1"), 2, 6)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = gen.Generate(amountRange(t, "0.12345", "1"), 4, 4)
	assert.ErrorIs(t, err, ErrPrecisionExceedsVenue)
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"12.500000":  "12.5",
		"0.123456":   "0.12346",
		"100":        "100",
		"0.00000049": "0",
	}
	for in, want := range tests {
		assert.Equal(t, want, Format(decimal.RequireFromString(in)), in)
	}
}
