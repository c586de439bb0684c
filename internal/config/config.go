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

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cex-withdraw-go/internal/models"
)

func Load() (*models.Config, error) {
	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	gatewayTimeout, err := getEnvDuration("GATEWAY_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	rateLimit, err := getEnvFloat("GATEWAY_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}

	policy := models.WalletIssuePolicy(strings.ToLower(getEnvString("WALLET_ISSUE_POLICY", string(models.WalletIssuePrompt))))
	switch policy {
	case models.WalletIssuePrompt, models.WalletIssueContinue, models.WalletIssueAbort:
	default:
		return nil, fmt.Errorf("invalid WALLET_ISSUE_POLICY %q: expected prompt, continue or abort", policy)
	}

	return &models.Config{
		Paths: models.PathsConfig{
			ConfigFile:  getEnvString("CONFIG_FILE", "data/config.yaml"),
			WalletsFile: getEnvString("WALLETS_FILE", "data/wallets.txt"),
		},
		Log: models.LogConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			File:       getEnvString("LOG_FILE", "logfile.log"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		},
		Database: models.DatabaseConfig{
			Enabled:         getEnvBool("JOURNAL_ENABLED", true),
			Path:            getEnvString("DATABASE_PATH", "withdrawals.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 1),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
		},
		Gateway: models.GatewayConfig{
			BaseURL:   getEnvString("GATEWAY_URL", "http://127.0.0.1:3000"),
			Timeout:   gatewayTimeout,
			RateLimit: rateLimit,
		},
		Withdrawal: models.WithdrawalConfig{
			SkipDelayAfterFailure: getEnvBool("SKIP_DELAY_AFTER_FAILURE", true),
			WalletIssuePolicy:     policy,
		},
	}, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	if value := os.Getenv(key); value != "" {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number for %s: %q (%w)", key, value, err)
		}
		return f, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
