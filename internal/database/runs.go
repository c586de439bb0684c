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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) StartRun(ctx context.Context, params store.StartRunParams) (*models.Run, error) {
	run := &models.Run{
		Id:          uuid.New().String(),
		Venue:       params.Venue,
		Token:       params.Token,
		Chain:       params.Chain,
		WalletCount: params.WalletCount,
		MinAmount:   params.Amount.Min.String(),
		MaxAmount:   params.Amount.Max.String(),
		Status:      models.RunStatusRunning,
		StartedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, queryInsertRun,
		run.Id, run.Venue, run.Token, run.Chain, run.WalletCount,
		run.MinAmount, run.MaxAmount, run.Status, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("unable to insert withdrawal run: %w", err)
	}

	zap.L().Debug("Withdrawal run started",
		zap.String("run_id", run.Id),
		zap.String("venue", run.Venue),
		zap.String("token", run.Token))
	return run, nil
}

func (s *Service) FinishRun(ctx context.Context, params store.FinishRunParams) error {
	finishedAt := params.FinishedAt
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, queryFinishRun,
		params.Status, params.Succeeded, params.Failed, finishedAt, params.RunId)
	if err != nil {
		return fmt.Errorf("unable to finish withdrawal run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", store.ErrRunNotFound, params.RunId)
	}

	zap.L().Debug("Withdrawal run finished",
		zap.String("run_id", params.RunId),
		zap.String("status", params.Status))
	return nil
}

func (s *Service) GetRun(ctx context.Context, runId string) (*models.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, queryGetRun, runId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrRunNotFound, runId)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to get withdrawal run: %w", err)
	}
	return run, nil
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, queryListRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("unable to list withdrawal runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("unable to scan withdrawal run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.Run, error) {
	var run models.Run
	var finishedAt sql.NullTime
	err := row.Scan(&run.Id, &run.Venue, &run.Token, &run.Chain, &run.WalletCount,
		&run.MinAmount, &run.MaxAmount, &run.Status, &run.Succeeded, &run.Failed,
		&run.StartedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
