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

const (
	// Run queries
	queryInsertRun = `
		INSERT INTO withdrawal_runs (id, venue, token, chain, wallet_count, min_amount, max_amount, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryFinishRun = `
		UPDATE withdrawal_runs
		SET status = ?, succeeded = ?, failed = ?, finished_at = ?
		WHERE id = ?`

	queryGetRun = `
		SELECT id, venue, token, chain, wallet_count, min_amount, max_amount, status, succeeded, failed, started_at, finished_at
		FROM withdrawal_runs
		WHERE id = ?`

	queryListRuns = `
		SELECT id, venue, token, chain, wallet_count, min_amount, max_amount, status, succeeded, failed, started_at, finished_at
		FROM withdrawal_runs
		ORDER BY started_at DESC
		LIMIT ?`

	// Attempt queries
	queryInsertAttempt = `
		INSERT INTO withdrawal_attempts (id, run_id, sequence, address, amount, chain, withdrawal_id, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryListAttempts = `
		SELECT id, run_id, sequence, address, amount, chain, withdrawal_id, success, error, created_at
		FROM withdrawal_attempts
		WHERE run_id = ?
		ORDER BY sequence`
)
