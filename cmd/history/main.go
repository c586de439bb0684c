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

	"cex-withdraw-go/internal/amount"
	"cex-withdraw-go/internal/common"
	"cex-withdraw-go/internal/config"
	"cex-withdraw-go/internal/database"
	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func formatWithdrawalId(id string) string {
	if id == "" {
		return "none"
	}
	return id
}

func formatFinished(run models.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Local().Format("2006-01-02 15:04:05")
}

func printRun(run models.Run) {
	fmt.Printf("\n┌─ Run: %s\n", run.Id)
	fmt.Printf("│  Venue: %s   Token: %s   Chain: %s\n", run.Venue, run.Token, run.Chain)
	fmt.Printf("│  Amount: %s-%s   Wallets: %d\n", run.MinAmount, run.MaxAmount, run.WalletCount)
	fmt.Printf("│  Status: %s   Succeeded: %d   Failed: %d\n", run.Status, run.Succeeded, run.Failed)
	fmt.Printf("│  Started: %s   Finished: %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), formatFinished(run))
}

func printAttempts(attempts []models.Attempt) {
	common.PrintBoxSeparator(78)
	for i, attempt := range attempts {
		isLast := i == len(attempts)-1
		fmt.Printf("%s %-4d %s %s %s\n",
			common.BoxPrefix(isLast),
			attempt.Sequence,
			attempt.Address,
			amount.Format(attempt.Amount),
			common.StatusMark(attempt.Success))

		detail := "id: " + formatWithdrawalId(attempt.WithdrawalId)
		if attempt.Error != "" {
			detail = "error: " + attempt.Error
		}
		fmt.Printf("%s      %s\n", common.BoxDetailPrefix(isLast), detail)
	}
}

func showRun(ctx context.Context, dbService *database.Service, runId string) error {
	run, err := dbService.GetRun(ctx, runId)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return fmt.Errorf("no run with id %s", runId)
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	attempts, err := dbService.ListAttempts(ctx, run.Id)
	if err != nil {
		return fmt.Errorf("failed to list attempts: %w", err)
	}

	common.PrintHeader("WITHDRAWAL RUN", common.WideWidth)
	printRun(*run)
	if len(attempts) > 0 {
		printAttempts(attempts)
	}
	common.PrintFooter(fmt.Sprintf("SUMMARY: %d attempts recorded", len(attempts)), common.WideWidth)
	return nil
}

func listRuns(ctx context.Context, dbService *database.Service, limit int) error {
	runs, err := dbService.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	common.PrintHeader("WITHDRAWAL HISTORY", common.WideWidth)

	var succeeded, failed int
	for _, run := range runs {
		printRun(run)
		succeeded += run.Succeeded
		failed += run.Failed
	}

	summary := fmt.Sprintf("SUMMARY: %d runs (%d withdrawals succeeded, %d failed)", len(runs), succeeded, failed)
	common.PrintFooter(summary, common.WideWidth)
	return nil
}

func run(c *cli.Context) error {
	ctx := c.Context

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	logger.Info("Connecting to journal", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize database", zap.Error(err))
		return err
	}
	defer dbService.Close()

	if c.IsSet("run") {
		return showRun(ctx, dbService, c.String("run"))
	}
	return listRuns(ctx, dbService, c.Int("limit"))
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "history",
		Usage: "print withdrawal runs recorded in the journal",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "number of most recent runs to list",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "show one run with every attempt",
			},
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
