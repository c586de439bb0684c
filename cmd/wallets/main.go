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
	"fmt"
	"os"

	"cex-withdraw-go/internal/common"
	"cex-withdraw-go/internal/config"
	"cex-withdraw-go/internal/wallet"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func printEncodingIssues(issues []wallet.EncodingIssue) {
	fmt.Printf("\n┌─ Encoding problems (%d)\n", len(issues))
	for i, issue := range issues {
		fmt.Printf("%s line %-5d %s\n", common.BoxPrefix(i == len(issues)-1), issue.Line, issue.Address)
		fmt.Printf("%s            %s\n", common.BoxDetailPrefix(i == len(issues)-1), issue.Reason)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	path := cfg.Paths.WalletsFile
	if c.Args().Present() {
		path = c.Args().First()
	}

	wallets, err := wallet.LoadFile(path)
	if err != nil {
		zap.L().Error("Failed to load wallets", zap.String("file", path), zap.Error(err))
		return err
	}

	report, err := wallet.Classify(wallets)
	if err != nil {
		return err
	}
	common.PrintWalletReport(report, len(wallets))

	issues := wallet.VerifyEncodings(wallets, report.Type)
	if len(issues) > 0 {
		printEncodingIssues(issues)
	}

	ok := report.Valid() && report.Type != wallet.Unknown && len(issues) == 0
	zap.L().Info("Wallet check completed",
		zap.String("file", path),
		zap.Int("wallets", len(wallets)),
		zap.String("type", report.Type.String()),
		zap.Int("non_standard", len(report.NonStandard)),
		zap.Int("private_key_like", len(report.PrivateKeys)),
		zap.Int("encoding_issues", len(issues)))

	if !ok && c.Bool("strict") {
		return cli.Exit("wallet list has issues", 2)
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "wallets",
		Usage:     "classify and validate a wallets file without contacting any venue",
		ArgsUsage: "[wallets file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "exit non-zero when any issue is found",
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
