package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJournal(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(context.Background(), models.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "withdrawals.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(service.Close)
	return service
}

func TestNewServiceValidatesConfig(t *testing.T) {
	tests := []models.DatabaseConfig{
		{Path: "", MaxOpenConns: 1, PingTimeout: time.Second},
		{Path: "x.db", MaxOpenConns: 0, PingTimeout: time.Second},
		{Path: "x.db", MaxOpenConns: 1, MaxIdleConns: -1, PingTimeout: time.Second},
		{Path: "x.db", MaxOpenConns: 1, PingTimeout: 0},
	}
	for _, cfg := range tests {
		_, err := NewService(context.Background(), cfg)
		assert.Error(t, err)
	}
}

func TestRunLifecycle(t *testing.T) {
	service := setupJournal(t)
	ctx := context.Background()

	run, err := service.StartRun(ctx, store.StartRunParams{
		Venue:       "okx",
		Token:       "USDT",
		Chain:       "USDT-ERC20",
		WalletCount: 2,
		Amount:      models.AmountRange{Min: decimal.RequireFromString("1.5"), Max: decimal.RequireFromString("2")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, run.Id)
	assert.Equal(t, models.RunStatusRunning, run.Status)

	_, err = service.RecordAttempt(ctx, store.AttemptParams{
		RunId:        run.Id,
		Sequence:     1,
		Address:      "0xa",
		Amount:       decimal.RequireFromString("1.734"),
		Chain:        "USDT-ERC20",
		WithdrawalId: "wd-1",
	})
	require.NoError(t, err)

	_, err = service.RecordAttempt(ctx, store.AttemptParams{
		RunId:    run.Id,
		Sequence: 2,
		Address:  "0xb",
		Amount:   decimal.RequireFromString("1.9"),
		Chain:    "USDT-ERC20",
		Err:      errors.New("address not whitelisted"),
	})
	require.NoError(t, err)

	require.NoError(t, service.FinishRun(ctx, store.FinishRunParams{
		RunId:     run.Id,
		Status:    models.RunStatusCompleted,
		Succeeded: 1,
		Failed:    1,
	}))

	got, err := service.GetRun(ctx, run.Id)
	require.NoError(t, err)
	assert.Equal(t, "okx", got.Venue)
	assert.Equal(t, "1.5", got.MinAmount)
	assert.Equal(t, "2", got.MaxAmount)
	assert.Equal(t, models.RunStatusCompleted, got.Status)
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 1, got.Failed)
	require.NotNil(t, got.FinishedAt)
	assert.False(t, got.StartedAt.IsZero())

	attempts, err := service.ListAttempts(ctx, run.Id)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, "0xa", attempts[0].Address)
	assert.True(t, attempts[0].Success)
	assert.Equal(t, "wd-1", attempts[0].WithdrawalId)
	assert.True(t, attempts[0].Amount.Equal(decimal.RequireFromString("1.734")))

	assert.Equal(t, "0xb", attempts[1].Address)
	assert.False(t, attempts[1].Success)
	assert.Equal(t, "address not whitelisted", attempts[1].Error)
}

func TestDuplicateAttemptSequenceRejected(t *testing.T) {
	service := setupJournal(t)
	ctx := context.Background()

	run, err := service.StartRun(ctx, store.StartRunParams{Venue: "gate", Token: "ETH", Chain: "ETH", WalletCount: 1})
	require.NoError(t, err)

	params := store.AttemptParams{RunId: run.Id, Sequence: 1, Address: "0xa", Amount: decimal.NewFromInt(1)}
	_, err = service.RecordAttempt(ctx, params)
	require.NoError(t, err)
	_, err = service.RecordAttempt(ctx, params)
	assert.Error(t, err)
}

func TestListRunsNewestFirst(t *testing.T) {
	service := setupJournal(t)
	ctx := context.Background()

	var ids []string
	for _, venue := range []string{"binance", "mexc", "bybit"} {
		run, err := service.StartRun(ctx, store.StartRunParams{Venue: venue, Token: "USDT", Chain: "TRC20", WalletCount: 1})
		require.NoError(t, err)
		ids = append(ids, run.Id)
		time.Sleep(2 * time.Millisecond)
	}

	runs, err := service.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].Id)
	assert.Equal(t, ids[1], runs[1].Id)
	assert.Nil(t, runs[0].FinishedAt)
}

func TestUnknownRun(t *testing.T) {
	service := setupJournal(t)
	ctx := context.Background()

	_, err := service.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrRunNotFound)

	err = service.FinishRun(ctx, store.FinishRunParams{RunId: "missing", Status: models.RunStatusAborted})
	assert.ErrorIs(t, err, store.ErrRunNotFound)

	attempts, err := service.ListAttempts(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}
