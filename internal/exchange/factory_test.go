package exchange

import (
	"errors"
	"testing"

	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory(opened *[]string) *Factory {
	return NewFactory(func(profile Profile, _ models.Credentials) (Client, error) {
		if opened != nil {
			*opened = append(*opened, profile.Id)
		}
		return &fakeClient{}, nil
	})
}

func testParams() RequestParams {
	return RequestParams{
		Token: " usdt ",
		Amount: models.AmountRange{
			Min: decimal.RequireFromString("1"),
			Max: decimal.RequireFromString("2"),
		},
		DecimalPlaces: 3,
	}
}

func TestFactoryCreate(t *testing.T) {
	var opened []string
	settings := models.Settings{"okx": validCreds}

	ex, req, err := testFactory(&opened).Create("OKX", settings, testParams())
	require.NoError(t, err)
	assert.Equal(t, "okx", ex.Name())
	assert.True(t, ex.Profile().UsesFundingWallet)
	assert.Equal(t, []string{"okx"}, opened)

	assert.Equal(t, "USDT", req.Token)
	assert.Equal(t, 3, req.DecimalPlaces)
	assert.True(t, req.Amount.Min.Equal(decimal.NewFromInt(1)))
	assert.Nil(t, req.Chain)
}

func TestFactoryUnsupportedVenue(t *testing.T) {
	var opened []string
	_, _, err := testFactory(&opened).Create("ftx", models.Settings{"ftx": validCreds}, testParams())
	assert.ErrorIs(t, err, ErrUnsupportedVenue)
	assert.Empty(t, opened)
}

func TestFactoryCredentialChecks(t *testing.T) {
	tests := []struct {
		name     string
		venue    string
		settings models.Settings
		message  string
	}{
		{
			name:     "missing settings",
			venue:    "binance",
			settings: models.Settings{"okx": validCreds},
			message:  "settings for BINANCE not found",
		},
		{
			name:     "placeholder key",
			venue:    "okx",
			settings: models.Settings{"okx": {ApiKey: PlaceholderApiKey, ApiSecret: "s", Password: "p"}},
			message:  "API key for OKX is not configured",
		},
		{
			name:     "empty secret",
			venue:    "gate",
			settings: models.Settings{"gate": {ApiKey: "k"}},
			message:  "API secret for GATE is not configured",
		},
		{
			name:     "missing api password",
			venue:    "kucoin",
			settings: models.Settings{"kucoin": {ApiKey: "k", ApiSecret: "s"}},
			message:  "API password for KUCOIN is not configured",
		},
		{
			name:     "placeholder api password",
			venue:    "bitget",
			settings: models.Settings{"bitget": {ApiKey: "k", ApiSecret: "s", Password: PlaceholderApiPassword}},
			message:  "API password for BITGET is not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opened []string
			_, _, err := testFactory(&opened).Create(tt.venue, tt.settings, testParams())
			require.ErrorIs(t, err, ErrConfig)
			assert.Contains(t, err.Error(), tt.message)
			assert.Empty(t, opened, "no client may be opened with invalid credentials")
		})
	}
}

func TestFactoryPasswordOptionalWhereNotRequired(t *testing.T) {
	settings := models.Settings{"binance": {ApiKey: "k", ApiSecret: "s"}}
	_, _, err := testFactory(nil).Create("binance", settings, testParams())
	assert.NoError(t, err)
}

func TestFactoryDecimalPlacesClamp(t *testing.T) {
	tests := []struct {
		venue     string
		requested int
		want      int
	}{
		{"bybit", 3, 3},
		{"bybit", 4, 4},
		{"bybit", 6, 4},
		{"bybit", -1, 4},
		{"binance", 0, 0},
		{"binance", 9, 6},
	}

	for _, tt := range tests {
		params := testParams()
		params.DecimalPlaces = tt.requested
		_, req, err := testFactory(nil).Create(tt.venue, models.Settings{tt.venue: validCreds}, params)
		require.NoError(t, err)
		assert.Equal(t, tt.want, req.DecimalPlaces, "%s requested %d", tt.venue, tt.requested)
	}
}

func TestFactoryClientError(t *testing.T) {
	boom := errors.New("dial failed")
	f := NewFactory(func(Profile, models.Credentials) (Client, error) { return nil, boom })
	_, _, err := f.Create("gate", models.Settings{"gate": validCreds}, testParams())
	assert.ErrorIs(t, err, boom)
}
