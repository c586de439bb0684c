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
	"fmt"
	"time"

	"cex-withdraw-go/internal/models"
	"cex-withdraw-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) RecordAttempt(ctx context.Context, params store.AttemptParams) (*models.Attempt, error) {
	attempt := &models.Attempt{
		Id:           uuid.New().String(),
		RunId:        params.RunId,
		Sequence:     params.Sequence,
		Address:      params.Address,
		Amount:       params.Amount,
		Chain:        params.Chain,
		WithdrawalId: params.WithdrawalId,
		Success:      params.Err == nil,
		CreatedAt:    time.Now().UTC(),
	}
	if params.Err != nil {
		attempt.Error = params.Err.Error()
	}

	_, err := s.db.ExecContext(ctx, queryInsertAttempt,
		attempt.Id, attempt.RunId, attempt.Sequence, attempt.Address, attempt.Amount.String(),
		attempt.Chain, attempt.WithdrawalId, attempt.Success, attempt.Error, attempt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("unable to insert withdrawal attempt: %w", err)
	}

	zap.L().Debug("Withdrawal attempt recorded",
		zap.String("run_id", attempt.RunId),
		zap.Int("sequence", attempt.Sequence),
		zap.Bool("success", attempt.Success))
	return attempt, nil
}

func (s *Service) ListAttempts(ctx context.Context, runId string) ([]models.Attempt, error) {
	rows, err := s.db.QueryContext(ctx, queryListAttempts, runId)
	if err != nil {
		return nil, fmt.Errorf("unable to list withdrawal attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.Id, &a.RunId, &a.Sequence, &a.Address, &a.Amount,
			&a.Chain, &a.WithdrawalId, &a.Success, &a.Error, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan withdrawal attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
