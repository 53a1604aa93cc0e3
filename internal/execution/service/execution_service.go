/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package service implements the execution log audit trail.
package service

import (
	"context"
	"time"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/store"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/config"
)

// ExecutionServiceInterface defines the service interface.
type ExecutionServiceInterface interface {
	LogExecution(ctx context.Context, entry model.ExecutionLogEntry) error
	GetHistory(ctx context.Context, filter model.HistoryFilter) ([]model.ExecutionLogEntry, error)
}

// ExecutionService is the default implementation.
type ExecutionService struct{}

// GetExecutionService returns a new instance.
func GetExecutionService() ExecutionServiceInterface {
	return &ExecutionService{}
}

// LogExecution appends one entry to the execution log.
func (es *ExecutionService) LogExecution(ctx context.Context, entry model.ExecutionLogEntry) error {

	if entry.ExecutedAt.IsZero() {
		entry.ExecutedAt = time.Now().UTC()
	}
	return store.AddExecutionLogEntry(ctx, entry)
}

// GetHistory reads the execution log newest-first. A non-positive limit
// falls back to the configured default.
func (es *ExecutionService) GetHistory(ctx context.Context,
	filter model.HistoryFilter) ([]model.ExecutionLogEntry, error) {

	if filter.Limit <= 0 {
		filter.Limit = int64(config.GetEngineRuntime().Config.Engine.HistoryDefaultLimit)
		if filter.Limit <= 0 {
			filter.Limit = 100
		}
	}
	return store.GetExecutionHistory(ctx, filter)
}
