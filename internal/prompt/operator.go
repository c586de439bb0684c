package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cex-withdraw-go/internal/amount"
	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInterrupted is returned when the operator aborts a prompt with Ctrl+C
var ErrInterrupted = errors.New("interrupted by operator")

type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Operator collects withdrawal parameters interactively. It satisfies the
// orchestrator's chain selection and range resolution collaborators.
type Operator struct {
	ask  askFunc
	opts []survey.AskOpt
	// maxDecimals bounds amount precision once a venue is chosen
	maxDecimals int
}

func NewOperator(opts ...survey.AskOpt) *Operator {
	return &Operator{ask: survey.AskOne, opts: opts}
}

func (o *Operator) askOne(ctx context.Context, p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := o.ask(p, response, append(append([]survey.AskOpt{}, o.opts...), opts...)...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

func (o *Operator) input(ctx context.Context, message string, validate func(string) error) (string, error) {
	var answer string
	err := o.askOne(ctx, &survey.Input{Message: message}, &answer, survey.WithValidator(func(ans interface{}) error {
		s, ok := ans.(string)
		if !ok {
			return fmt.Errorf("unexpected answer type %T", ans)
		}
		return validate(s)
	}))
	return strings.TrimSpace(answer), err
}

// SelectVenue lets the operator choose among the registered venues
func (o *Operator) SelectVenue(ctx context.Context, venues []exchange.Profile) (exchange.Profile, error) {
	names := make([]string, len(venues))
	for i, v := range venues {
		names[i] = v.DisplayName
	}

	var index int
	if err := o.askOne(ctx, &survey.Select{Message: "Select exchange:", Options: names}, &index); err != nil {
		return exchange.Profile{}, err
	}
	o.UseVenue(venues[index])
	return venues[index], nil
}

// UseVenue applies the venue's precision limit to later amount prompts
func (o *Operator) UseVenue(p exchange.Profile) {
	o.maxDecimals = p.MaxDecimalPlaces
}

func (o *Operator) Token(ctx context.Context) (string, error) {
	answer, err := o.input(ctx, "Token name:", ValidateToken)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(answer), nil
}

// AmountRange asks for minimum then maximum, the maximum bounded by the minimum
func (o *Operator) AmountRange(ctx context.Context, lowerBound *decimal.Decimal, maxDecimals int) (models.AmountRange, error) {
	minText, err := o.input(ctx, "Minimum amount:", func(s string) error {
		_, err := ParseAmount(s, lowerBound, maxDecimals)
		return err
	})
	if err != nil {
		return models.AmountRange{}, err
	}
	minimum, err := ParseAmount(minText, lowerBound, maxDecimals)
	if err != nil {
		return models.AmountRange{}, err
	}

	maxText, err := o.input(ctx, "Maximum amount:", func(s string) error {
		_, err := ParseAmount(s, &minimum, maxDecimals)
		return err
	})
	if err != nil {
		return models.AmountRange{}, err
	}
	maximum, err := ParseAmount(maxText, &minimum, maxDecimals)
	if err != nil {
		return models.AmountRange{}, err
	}

	return models.AmountRange{Min: minimum, Max: maximum}, nil
}

func (o *Operator) DecimalPlaces(ctx context.Context, r models.AmountRange, venueMax int) (int, error) {
	answer, err := o.input(ctx, "Maximum decimal places:", func(s string) error {
		_, err := ParseDecimalPlaces(s, r, venueMax)
		return err
	})
	if err != nil {
		return 0, err
	}
	return ParseDecimalPlaces(answer, r, venueMax)
}

func (o *Operator) Delay(ctx context.Context) (models.DelayRange, error) {
	minText, err := o.input(ctx, "Minimum delay (sec.):", func(s string) error {
		_, err := ParseSeconds(s, 0)
		return err
	})
	if err != nil {
		return models.DelayRange{}, err
	}
	minimum, err := ParseSeconds(minText, 0)
	if err != nil {
		return models.DelayRange{}, err
	}

	maxText, err := o.input(ctx, "Maximum delay (sec.):", func(s string) error {
		_, err := ParseSeconds(s, minimum)
		return err
	})
	if err != nil {
		return models.DelayRange{}, err
	}
	maximum, err := ParseSeconds(maxText, minimum)
	if err != nil {
		return models.DelayRange{}, err
	}

	return models.DelayRange{MinSeconds: minimum, MaxSeconds: maximum}, nil
}

// ChainLabel renders a chain option with its fee and minimum
func ChainLabel(c models.ChainOption) string {
	return fmt.Sprintf("%s (fee: %s, min: %s)", c.Key, amount.Format(c.WithdrawFee), amount.Format(c.WithdrawMin))
}

func (o *Operator) SelectChain(ctx context.Context, options []models.ChainOption) (models.ChainOption, error) {
	if len(options) == 0 {
		return models.ChainOption{}, errors.New("no chains to choose from")
	}

	labels := make([]string, len(options))
	for i, c := range options {
		labels[i] = ChainLabel(c)
	}

	var index int
	if err := o.askOne(ctx, &survey.Select{Message: "Select withdrawal network:", Options: labels}, &index); err != nil {
		return models.ChainOption{}, err
	}
	return options[index], nil
}

// ResolveRange asks for a new range whose minimum is at least the chain minimum
func (o *Operator) ResolveRange(ctx context.Context, chainMinimum decimal.Decimal, current models.AmountRange) (models.AmountRange, error) {
	zap.L().Info("A new amount range is required",
		zap.String("minimum", amount.Format(chainMinimum)),
		zap.String("current", current.String()))
	return o.AmountRange(ctx, &chainMinimum, o.maxDecimals)
}

func (o *Operator) Confirm(ctx context.Context, message string) (bool, error) {
	var ok bool
	err := o.askOne(ctx, &survey.Confirm{Message: message, Default: false}, &ok)
	return ok, err
}
