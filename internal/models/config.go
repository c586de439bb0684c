package models

import "time"

// Config represents the application configuration
type Config struct {
	Paths      PathsConfig
	Log        LogConfig
	Database   DatabaseConfig
	Gateway    GatewayConfig
	Withdrawal WithdrawalConfig
}

// PathsConfig holds the operator-supplied input files
type PathsConfig struct {
	ConfigFile  string
	WalletsFile string
}

// LogConfig holds console and file logging settings
type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// DatabaseConfig holds withdrawal journal connection settings
type DatabaseConfig struct {
	Enabled         bool
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// GatewayConfig holds settings for the venue bridge client
type GatewayConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
}

// WalletIssuePolicy decides what happens when wallet validation reports problems
type WalletIssuePolicy string

const (
	WalletIssuePrompt   WalletIssuePolicy = "prompt"
	WalletIssueContinue WalletIssuePolicy = "continue"
	WalletIssueAbort    WalletIssuePolicy = "abort"
)

// WithdrawalConfig holds batch behaviour switches
type WithdrawalConfig struct {
	SkipDelayAfterFailure bool
	WalletIssuePolicy     WalletIssuePolicy
}
