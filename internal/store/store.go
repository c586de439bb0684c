package store

import (
	"context"
	"errors"
	"time"

	"cex-withdraw-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all journal implementations.
var (
	ErrRunNotFound = errors.New("withdrawal run not found")
)

// StartRunParams describes a batch about to enter the withdrawal phase.
type StartRunParams struct {
	Venue       string
	Token       string
	Chain       string
	WalletCount int
	Amount      models.AmountRange
}

// AttemptParams captures one per-wallet submission, successful or not.
type AttemptParams struct {
	RunId        string
	Sequence     int
	Address      string
	Amount       decimal.Decimal
	Chain        string
	WithdrawalId string
	Err          error
}

// FinishRunParams closes a run with its final status and counts.
type FinishRunParams struct {
	RunId      string
	Status     string
	Succeeded  int
	Failed     int
	FinishedAt time.Time
}

// RunRecorder is the write side of the journal used during a batch.
type RunRecorder interface {
	StartRun(ctx context.Context, params StartRunParams) (*models.Run, error)
	RecordAttempt(ctx context.Context, params AttemptParams) (*models.Attempt, error)
	FinishRun(ctx context.Context, params FinishRunParams) error
}

// Journal defines the contract that every withdrawal history backend must satisfy.
type Journal interface {
	RunRecorder

	// --- History ---
	ListRuns(ctx context.Context, limit int) ([]models.Run, error)
	GetRun(ctx context.Context, runId string) (*models.Run, error)
	ListAttempts(ctx context.Context, runId string) ([]models.Attempt, error)

	// --- Lifecycle ---
	Close()
}
