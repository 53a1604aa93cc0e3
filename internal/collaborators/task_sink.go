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

package collaborators

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/scripts"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// PostgresTaskSink opens staff tasks in the staff_tasks table.
type PostgresTaskSink struct{}

// NewPostgresTaskSink creates a new task sink.
func NewPostgresTaskSink() *PostgresTaskSink {
	return &PostgresTaskSink{}
}

// CreateTask opens a task for a staff member, referencing the subject that
// triggered it.
func (s *PostgresTaskSink) CreateTask(_ context.Context, assigneeRef, description, subjectID, createdBy string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for creating task for subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.Execute(scripts.InsertTask["postgres"],
		uuid.New().String(), assigneeRef, description, subjectID, createdBy)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert task for subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}
