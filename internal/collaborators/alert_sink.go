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

// Package collaborators holds the concrete side-effect targets driven by the
// action dispatcher: alert, task and notification tables, the booking gate,
// the subject field writer, the flag registry adapter and the outbound
// WhatsApp client.
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

// PostgresAlertSink records alerts in the subject_alerts table.
type PostgresAlertSink struct{}

// NewPostgresAlertSink creates a new alert sink.
func NewPostgresAlertSink() *PostgresAlertSink {
	return &PostgresAlertSink{}
}

// CreateAlert records an alert against a subject.
func (s *PostgresAlertSink) CreateAlert(_ context.Context, subjectID, severity, message, createdBy string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for creating alert on subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.Execute(scripts.InsertAlert["postgres"],
		uuid.New().String(), subjectID, severity, message, createdBy)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert alert for subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}
