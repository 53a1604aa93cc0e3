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

package store

import (
	"encoding/json"
	"fmt"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/scripts"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// GetSubjectByID fetches a subject snapshot. Returns nil when absent.
func GetSubjectByID(subjectID string) (*model.Subject, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SUBJECT.Code,
			Message:     errors2.GET_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetSubjectByID["postgres"], subjectID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SUBJECT.Code,
			Message:     errors2.GET_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	subject := model.Subject{Fields: map[string]interface{}{}}
	if v, ok := row["subject_id"].(string); ok {
		subject.SubjectID = v
	}
	if v, ok := row["entity_type"].(string); ok {
		subject.EntityType = v
	}
	if v, ok := row["booking_blocked"].(bool); ok {
		subject.BookingBlocked = v
	}
	if v, ok := row["fields"].(string); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &subject.Fields); err != nil {
			errorMsg := fmt.Sprintf("Failed to decode field document of subject: %s", subjectID)
			logger.Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UNMARSHAL_JSON.Code,
				Message:     errors2.UNMARSHAL_JSON.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return &subject, nil
}

// UpsertSubject creates or replaces a subject's field document.
func UpsertSubject(subject model.Subject) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for upserting subject: %s", subject.SubjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PATCH_SUBJECT.Code,
			Message:     errors2.PATCH_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	fields := subject.Fields
	if fields == nil {
		fields = map[string]interface{}{}
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to encode field document of subject: %s", subject.SubjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	_, err = dbClient.Execute(scripts.UpsertSubject["postgres"],
		subject.SubjectID, subject.EntityType, string(encoded))
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to upsert subject: %s", subject.SubjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PATCH_SUBJECT.Code,
			Message:     errors2.PATCH_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// PatchSubjectField sets a single field inside the subject's field document.
// Reports rows affected so callers can distinguish a missing subject.
func PatchSubjectField(subjectID, field string, value interface{}) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for patching subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PATCH_SUBJECT.Code,
			Message:     errors2.PATCH_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	encoded, err := json.Marshal(value)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to encode value for field %s of subject: %s", field, subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}

	rows, err := dbClient.Execute(scripts.PatchSubjectField["postgres"], subjectID, field, string(encoded))
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to patch field %s of subject: %s", field, subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PATCH_SUBJECT.Code,
			Message:     errors2.PATCH_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

// SetBookingBlocked toggles the subject's booking gate. Reports rows affected.
func SetBookingBlocked(subjectID string, blocked bool) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for toggling booking gate of subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PATCH_SUBJECT.Code,
			Message:     errors2.PATCH_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.Execute(scripts.SetSubjectBookingBlocked["postgres"], subjectID, blocked)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to toggle booking gate of subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PATCH_SUBJECT.Code,
			Message:     errors2.PATCH_SUBJECT.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}
