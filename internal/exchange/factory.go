package exchange

import (
	"fmt"
	"strings"

	"cex-withdraw-go/internal/models"

	"go.uber.org/zap"
)

// ClientConstructor opens a wire client for a venue session
type ClientConstructor func(profile Profile, creds models.Credentials) (Client, error)

// RequestParams are the operator inputs a withdrawal request starts from
type RequestParams struct {
	Token         string
	Amount        models.AmountRange
	DecimalPlaces int
	Address       string
}

// Factory maps venue ids to capabilities
type Factory struct {
	newClient ClientConstructor
}

func NewFactory(newClient ClientConstructor) *Factory {
	return &Factory{newClient: newClient}
}

// Create builds the capability for venueId and the initial withdrawal request it will serve.
// Requested decimal places outside [0, venue maximum] fall back to the venue maximum.
func (f *Factory) Create(venueId string, settings models.Settings, params RequestParams) (*Exchange, *models.WithdrawalRequest, error) {
	profile, ok := Lookup(venueId)
	if !ok {
		zap.L().Error("Unsupported venue", zap.String("venue", venueId))
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedVenue, venueId)
	}

	creds, ok := settings[profile.Id]
	if !ok {
		zap.L().Error("Venue settings not found in configuration", zap.String("venue", profile.Id))
		return nil, nil, fmt.Errorf("%w: settings for %s not found", ErrConfig, strings.ToUpper(profile.Id))
	}
	if err := ValidateCredentials(profile, creds); err != nil {
		return nil, nil, err
	}

	client, err := f.newClient(profile, creds)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create %s client: %w", profile.DisplayName, err)
	}

	ex, err := New(profile, creds, client)
	if err != nil {
		return nil, nil, err
	}

	decimals := params.DecimalPlaces
	if decimals < 0 || decimals > profile.MaxDecimalPlaces {
		decimals = profile.MaxDecimalPlaces
	}

	request := &models.WithdrawalRequest{
		Token:         strings.ToUpper(strings.TrimSpace(params.Token)),
		Amount:        params.Amount,
		DecimalPlaces: decimals,
		Address:       params.Address,
	}
	return ex, request, nil
}
