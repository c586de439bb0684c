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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Run represents one batch withdrawal session recorded in the journal
type Run struct {
	Id          string     `db:"id"`
	Venue       string     `db:"venue"`
	Token       string     `db:"token"`
	Chain       string     `db:"chain"`
	WalletCount int        `db:"wallet_count"`
	MinAmount   string     `db:"min_amount"`
	MaxAmount   string     `db:"max_amount"`
	Status      string     `db:"status"`
	Succeeded   int        `db:"succeeded"`
	Failed      int        `db:"failed"`
	StartedAt   time.Time  `db:"started_at"`
	FinishedAt  *time.Time `db:"finished_at"`
}

// Attempt represents a single per-wallet withdrawal submission (immutable history)
type Attempt struct {
	Id           string          `db:"id"`
	RunId        string          `db:"run_id"`
	Sequence     int             `db:"sequence"`
	Address      string          `db:"address"`
	Amount       decimal.Decimal `db:"amount"`
	Chain        string          `db:"chain"`
	WithdrawalId string          `db:"withdrawal_id"`
	Success      bool            `db:"success"`
	Error        string          `db:"error"`
	CreatedAt    time.Time       `db:"created_at"`
}

// Run status values
const (
	RunStatusRunning     = "running"
	RunStatusCompleted   = "completed"
	RunStatusAborted     = "aborted"
	RunStatusInterrupted = "interrupted"
)
