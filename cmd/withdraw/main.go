/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cex-withdraw-go/internal/common"
	"cex-withdraw-go/internal/config"
	"cex-withdraw-go/internal/exchange"
	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/prompt"
	"cex-withdraw-go/internal/wallet"
	"cex-withdraw-go/internal/withdrawal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var errWalletCheck = errors.New("wallet list rejected")

func main() {
	app := &cli.App{
		Name:  "withdraw",
		Usage: "withdraw a token from an exchange to every wallet in the wallets file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Usage:     "venue credentials file (overrides CONFIG_FILE)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "wallets",
				Usage:     "destination wallets, one address per line (overrides WALLETS_FILE)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "venue",
				Usage: "venue id, e.g. binance; prompts when omitted",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.IsSet("config") {
		cfg.Paths.ConfigFile = c.String("config")
	}
	if c.IsSet("wallets") {
		cfg.Paths.WalletsFile = c.String("wallets")
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Error("Failed to initialize services", zap.Error(err))
		return err
	}
	defer services.Close()

	wallets, err := wallet.LoadFile(cfg.Paths.WalletsFile)
	if err != nil {
		zap.L().Error("Failed to load wallets", zap.String("file", cfg.Paths.WalletsFile), zap.Error(err))
		return err
	}

	operator := prompt.NewOperator()

	if err := checkWallets(ctx, operator, cfg.Withdrawal.WalletIssuePolicy, wallets); err != nil {
		return interrupted(err)
	}

	venue, request, err := collectRequest(ctx, c, operator, services)
	if err != nil {
		return interrupted(err)
	}

	orchestrator := withdrawal.NewOrchestrator(operator, operator, withdrawal.Options{
		Delay:                 request.delay,
		SkipDelayAfterFailure: cfg.Withdrawal.SkipDelayAfterFailure,
		Journal:               services.Journal,
	})

	zap.L().Info("Starting batch withdrawal",
		zap.String("venue", venue.Name()),
		zap.String("token", request.req.Token),
		zap.String("amount", request.req.Amount.String()),
		zap.Int("decimal_places", request.req.DecimalPlaces),
		zap.Int("wallets", len(wallets)))

	result, err := orchestrator.Run(ctx, venue, request.req, wallets)
	if result.Len() > 0 {
		common.PrintWithdrawalSummary(venue.Name(), request.req.Token, result)
	}
	if err != nil {
		return interrupted(err)
	}

	succeeded, failed := result.Counts()
	zap.L().Info("Batch withdrawal completed",
		zap.Int("succeeded", succeeded),
		zap.Int("failed", failed))
	return nil
}

type withdrawalInput struct {
	req   *models.WithdrawalRequest
	delay models.DelayRange
}

// collectRequest asks the operator for venue, token, amount range, precision and delay
// and builds the venue capability from them
func collectRequest(ctx context.Context, c *cli.Context, operator *prompt.Operator, services *common.Services) (*exchange.Exchange, *withdrawalInput, error) {
	profile, err := chooseVenue(ctx, c, operator)
	if err != nil {
		return nil, nil, err
	}

	token, err := operator.Token(ctx)
	if err != nil {
		return nil, nil, err
	}

	amounts, err := operator.AmountRange(ctx, nil, profile.MaxDecimalPlaces)
	if err != nil {
		return nil, nil, err
	}

	decimals, err := operator.DecimalPlaces(ctx, amounts, profile.MaxDecimalPlaces)
	if err != nil {
		return nil, nil, err
	}

	delay, err := operator.Delay(ctx)
	if err != nil {
		return nil, nil, err
	}

	venue, req, err := services.Factory.Create(profile.Id, services.Settings, exchange.RequestParams{
		Token:         token,
		Amount:        amounts,
		DecimalPlaces: decimals,
	})
	if err != nil {
		zap.L().Error("Failed to create venue", zap.String("venue", profile.Id), zap.Error(err))
		return nil, nil, err
	}

	return venue, &withdrawalInput{req: req, delay: delay}, nil
}

func chooseVenue(ctx context.Context, c *cli.Context, operator *prompt.Operator) (exchange.Profile, error) {
	if !c.IsSet("venue") {
		return operator.SelectVenue(ctx, exchange.Venues())
	}

	profile, ok := exchange.Lookup(c.String("venue"))
	if !ok {
		return exchange.Profile{}, fmt.Errorf("%w: %s", exchange.ErrUnsupportedVenue, c.String("venue"))
	}
	operator.UseVenue(profile)
	return profile, nil
}

// checkWallets classifies the wallet list and applies the configured policy
// when lengths are inconsistent or the type cannot be resolved
func checkWallets(ctx context.Context, operator *prompt.Operator, policy models.WalletIssuePolicy, wallets []string) error {
	report, err := wallet.Classify(wallets)
	if err != nil {
		return err
	}
	common.PrintWalletReport(report, len(wallets))

	if report.Valid() && report.Type != wallet.Unknown {
		return nil
	}

	zap.L().Warn("Wallet list has issues",
		zap.String("type", report.Type.String()),
		zap.Int("non_standard", len(report.NonStandard)),
		zap.String("policy", string(policy)))

	switch policy {
	case models.WalletIssueContinue:
		return nil
	case models.WalletIssueAbort:
		return errWalletCheck
	}

	ok, err := operator.Confirm(ctx, "Wallet list has issues. Continue anyway?")
	if err != nil {
		return err
	}
	if !ok {
		return errWalletCheck
	}
	return nil
}

func interrupted(err error) error {
	if errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, context.Canceled) {
		zap.L().Warn("Stopped by operator")
		return cli.Exit("Interrupted", 130)
	}
	return err
}
