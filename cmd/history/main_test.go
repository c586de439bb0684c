package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cex-withdraw-go/internal/database"
	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// seedJournal records one finished run with a successful and a failed attempt
func seedJournal(t *testing.T, path string) *models.Run {
	t.Helper()
	ctx := context.Background()
	service, err := database.NewService(ctx, models.DatabaseConfig{
		Path:         path,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		PingTimeout:  time.Second,
	})
	require.NoError(t, err)
	defer service.Close()

	run, err := service.StartRun(ctx, store.StartRunParams{
		Venue:       "binance",
		Token:       "USDT",
		Chain:       "BSC",
		WalletCount: 2,
		Amount:      models.AmountRange{Min: decimal.RequireFromString("1"), Max: decimal.RequireFromString("2")},
	})
	require.NoError(t, err)

	_, err = service.RecordAttempt(ctx, store.AttemptParams{
		RunId: run.Id, Sequence: 1, Address: "0xaaa", Amount: decimal.RequireFromString("1.25"),
		Chain: "BSC", WithdrawalId: "wd-77",
	})
	require.NoError(t, err)
	_, err = service.RecordAttempt(ctx, store.AttemptParams{
		RunId: run.Id, Sequence: 2, Address: "0xbbb", Amount: decimal.RequireFromString("1.5"),
		Chain: "BSC", Err: errors.New("insufficient margin"),
	})
	require.NoError(t, err)

	require.NoError(t, service.FinishRun(ctx, store.FinishRunParams{
		RunId: run.Id, Status: models.RunStatusCompleted, Succeeded: 1, Failed: 1, FinishedAt: time.Now(),
	}))
	return run
}

// runHistory runs the command against the journal at path and returns what it printed
func runHistory(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_PATH", path)
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "logfile.log"))
	t.Setenv("LOG_LEVEL", "error")
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w

	output := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		output <- string(data)
	}()

	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	runErr := app.Run(append([]string{"history"}, args...))

	os.Stdout = stdout
	require.NoError(t, w.Close())
	return <-output, runErr
}

func TestHistoryListsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "withdrawals.db")
	run := seedJournal(t, path)

	out, err := runHistory(t, path, "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "WITHDRAWAL HISTORY")
	assert.Contains(t, out, run.Id)
	assert.Contains(t, out, "Venue: binance   Token: USDT   Chain: BSC")
	assert.Contains(t, out, "SUMMARY: 1 runs (1 withdrawals succeeded, 1 failed)")
}

func TestHistoryShowsRunAttempts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "withdrawals.db")
	run := seedJournal(t, path)

	out, err := runHistory(t, path, "--run", run.Id)
	require.NoError(t, err)
	assert.Contains(t, out, "0xaaa 1.25 ✓ success")
	assert.Contains(t, out, "id: wd-77")
	assert.Contains(t, out, "0xbbb 1.5 ✗ failed")
	assert.Contains(t, out, "error: insufficient margin")
	assert.Contains(t, out, "SUMMARY: 2 attempts recorded")
}

func TestHistoryUnknownRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "withdrawals.db")
	seedJournal(t, path)

	_, err := runHistory(t, path, "--run", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run with id missing")
}
