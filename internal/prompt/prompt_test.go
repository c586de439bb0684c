package prompt

import (
	"context"
	"fmt"
	"testing"

	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d = decimal.RequireFromString

func TestValidateToken(t *testing.T) {
	for _, ok := range []string{"USDT", "eth", " Sol "} {
		assert.NoError(t, ValidateToken(ok), ok)
	}
	for _, bad := range []string{"", "US DT", "1INCH", "USDT-ERC20"} {
		assert.Error(t, ValidateToken(bad), bad)
	}
}

func TestParseAmount(t *testing.T) {
	lower := d("1.5")
	tests := []struct {
		input   string
		lower   *decimal.Decimal
		maxDp   int
		want    string
		wantErr bool
	}{
		{"2", nil, 0, "2", false},
		{"0.000001", nil, 6, "0.000001", false},
		{"0.0000001", nil, 6, "", true},
		{"1,5", nil, 0, "", true},
		{"-1", nil, 0, "", true},
		{".5", nil, 0, "", true},
		{"1.4", &lower, 0, "", true},
		{"1.5", &lower, 0, "1.5", false},
		{"1.12345", nil, 4, "", true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input, tt.lower, tt.maxDp)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestParseDecimalPlaces(t *testing.T) {
	r := models.AmountRange{Min: d("1.5"), Max: d("2.25")}

	got, err := ParseDecimalPlaces("3", r, 6)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	_, err = ParseDecimalPlaces("1", r, 6)
	assert.ErrorContains(t, err, "at least 2")

	_, err = ParseDecimalPlaces("5", r, 4)
	assert.ErrorContains(t, err, "at most 4")

	_, err = ParseDecimalPlaces("2.5", r, 6)
	assert.Error(t, err)
}

func TestParseSeconds(t *testing.T) {
	got, err := ParseSeconds("30", 10)
	require.NoError(t, err)
	assert.Equal(t, 30, got)

	_, err = ParseSeconds("5", 10)
	assert.Error(t, err)
	_, err = ParseSeconds("1.5", 0)
	assert.Error(t, err)
}

// scripted answers prompts in order, running the registered validators first
type scripted struct {
	t       *testing.T
	answers []interface{}
	asked   []survey.Prompt
}

func (s *scripted) ask(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	s.asked = append(s.asked, p)
	require.NotEmpty(s.t, s.answers, "unexpected prompt %T", p)
	answer := s.answers[0]
	s.answers = s.answers[1:]

	if err, ok := answer.(error); ok {
		return err
	}

	var options survey.AskOptions
	for _, opt := range opts {
		require.NoError(s.t, opt(&options))
	}
	for _, v := range options.Validators {
		if err := v(answer); err != nil {
			return fmt.Errorf("validation: %w", err)
		}
	}

	switch r := response.(type) {
	case *string:
		*r = answer.(string)
	case *int:
		*r = answer.(int)
	case *bool:
		*r = answer.(bool)
	default:
		s.t.Fatalf("unsupported response type %T", response)
	}
	return nil
}

func newScripted(t *testing.T, answers ...interface{}) (*Operator, *scripted) {
	s := &scripted{t: t, answers: answers}
	return &Operator{ask: s.ask}, s
}

func TestOperatorCollectsInputs(t *testing.T) {
	ctx := context.Background()
	op, s := newScripted(t, 4, "usdt", "1.5", "2.25", "3", "10", "20", true)

	venue, err := op.SelectVenue(ctx, exchange.Venues())
	require.NoError(t, err)
	assert.Equal(t, "bybit", venue.Id)

	token, err := op.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USDT", token)

	r, err := op.AmountRange(ctx, nil, venue.MaxDecimalPlaces)
	require.NoError(t, err)
	assert.Equal(t, "1.5-2.25", r.String())

	places, err := op.DecimalPlaces(ctx, r, venue.MaxDecimalPlaces)
	require.NoError(t, err)
	assert.Equal(t, 3, places)

	delay, err := op.Delay(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DelayRange{MinSeconds: 10, MaxSeconds: 20}, delay)

	ok, err := op.Confirm(ctx, "Continue?")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, s.answers)
}

func TestOperatorRejectsMaximumBelowMinimum(t *testing.T) {
	op, _ := newScripted(t, "2", "1")
	_, err := op.AmountRange(context.Background(), nil, 6)
	assert.ErrorContains(t, err, "validation")
}

func TestOperatorSelectChain(t *testing.T) {
	options := []models.ChainOption{
		{Key: "BEP20", ChainInfo: models.ChainInfo{ChainId: "BSC", WithdrawEnable: true, WithdrawFee: d("0.3"), WithdrawMin: d("10")}},
		{Key: "TRC20", ChainInfo: models.ChainInfo{ChainId: "TRX", WithdrawEnable: true, WithdrawFee: d("1"), WithdrawMin: d("5")}},
	}
	op, s := newScripted(t, 1)

	chosen, err := op.SelectChain(context.Background(), options)
	require.NoError(t, err)
	assert.Equal(t, "TRC20", chosen.Key)

	sel, ok := s.asked[0].(*survey.Select)
	require.True(t, ok)
	assert.Equal(t, []string{"BEP20 (fee: 0.3, min: 10)", "TRC20 (fee: 1, min: 5)"}, sel.Options)
}

func TestOperatorResolveRange(t *testing.T) {
	op, _ := newScripted(t, "5.5", "7")
	op.UseVenue(exchange.Profile{MaxDecimalPlaces: 4})

	r, err := op.ResolveRange(context.Background(), d("5"), models.AmountRange{Min: d("1"), Max: d("2")})
	require.NoError(t, err)
	assert.Equal(t, "5.5-7", r.String())

	op, _ = newScripted(t, "4")
	_, err = op.ResolveRange(context.Background(), d("5"), models.AmountRange{})
	assert.ErrorContains(t, err, "less than 5")
}

func TestOperatorInterrupt(t *testing.T) {
	op, _ := newScripted(t, terminal.InterruptErr)
	_, err := op.Token(context.Background())
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestOperatorCancelledContext(t *testing.T) {
	op, s := newScripted(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := op.Token(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.asked)
}
