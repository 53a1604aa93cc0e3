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
	"fmt"
	"time"

	"github.com/lib/pq"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/scripts"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// AddFlag inserts a new flag definition.
func AddFlag(flag model.Flag) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for adding flag: %s", flag.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_FLAG.Code,
			Message:     errors2.ADD_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.Execute(scripts.InsertFlag["postgres"],
		flag.FlagID, flag.Name, flag.Color, flag.Icon, flag.Description,
		flag.AutoAssignField, flag.AutoAssignOperator, flag.AutoAssignValue,
		flag.ShowOnProfile, flag.ShowOnCalendar, flag.ShowOnBooking, flag.ShowOnReports,
		flag.IsActive)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert flag: %s", flag.Name)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_FLAG.Code,
			Message:     errors2.ADD_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetFlagByID fetches one flag definition. Returns nil when absent.
func GetFlagByID(flagID string) (*model.Flag, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching flag: %s", flagID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_FLAG.Code,
			Message:     errors2.GET_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetFlagByID["postgres"], flagID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching flag: %s", flagID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_FLAG.Code,
			Message:     errors2.GET_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	flag := flagFromRow(results[0])
	return &flag, nil
}

// GetFlags fetches all flag definitions, optionally active ones only.
func GetFlags(activeOnly bool) ([]model.Flag, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching flags"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_FLAG.Code,
			Message:     errors2.GET_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetAllFlags["postgres"]
	if activeOnly {
		query = scripts.GetActiveFlags["postgres"]
	}
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed to execute query for fetching flags"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_FLAG.Code,
			Message:     errors2.GET_FLAG.Message,
			Description: errorMsg,
		}, err)
	}

	flags := make([]model.Flag, 0, len(results))
	for _, row := range results {
		flags = append(flags, flagFromRow(row))
	}
	return flags, nil
}

// UpdateFlag replaces a flag definition.
func UpdateFlag(flag model.Flag) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating flag: %s", flag.FlagID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_FLAG.Code,
			Message:     errors2.UPDATE_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.Execute(scripts.UpdateFlag["postgres"],
		flag.FlagID, flag.Name, flag.Color, flag.Icon, flag.Description,
		flag.AutoAssignField, flag.AutoAssignOperator, flag.AutoAssignValue,
		flag.ShowOnProfile, flag.ShowOnCalendar, flag.ShowOnBooking, flag.ShowOnReports,
		flag.IsActive)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update flag: %s", flag.FlagID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_FLAG.Code,
			Message:     errors2.UPDATE_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

// AddFlagAssignment creates an assignment for a (subject, flag) pair.
//
// Expired rows for the pair are purged in the same transaction so that
// re-assignment after expiry succeeds. The unique constraint on
// (subject_id, flag_id) arbitrates concurrent attempts: exactly one wins,
// the others receive a ConflictError.
func AddFlagAssignment(assignment model.FlagAssignment) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for assigning flag %s to subject %s",
			assignment.FlagID, assignment.SubjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ASSIGN_FLAG.Code,
			Message:     errors2.ASSIGN_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := "Failed to begin transaction for flag assignment"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ASSIGN_FLAG.Code,
			Message:     errors2.ASSIGN_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(scripts.PurgeExpiredAssignments["postgres"], assignment.SubjectID, assignment.FlagID)
	if err != nil {
		errorMsg := "Failed to purge expired assignments"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ASSIGN_FLAG.Code,
			Message:     errors2.ASSIGN_FLAG.Message,
			Description: errorMsg,
		}, err)
	}

	var expiresAt interface{}
	if assignment.ExpiresAt != nil {
		expiresAt = assignment.ExpiresAt.UTC()
	}

	_, err = tx.Exec(scripts.InsertFlagAssignment["postgres"],
		assignment.AssignmentID, assignment.SubjectID, assignment.FlagID,
		assignment.AssignedBy, assignment.Notes, expiresAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return errors2.NewConflictError(errors2.FLAG_ALREADY_ASSIGNED,
				fmt.Sprintf("Flag %s is already assigned to subject %s",
					assignment.FlagID, assignment.SubjectID))
		}
		errorMsg := fmt.Sprintf("Failed to insert assignment of flag %s to subject %s",
			assignment.FlagID, assignment.SubjectID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ASSIGN_FLAG.Code,
			Message:     errors2.ASSIGN_FLAG.Message,
			Description: errorMsg,
		}, err)
	}

	return tx.Commit()
}

// RemoveFlagAssignment deletes the assignment for a (subject, flag) pair.
// Reports the number of rows affected; removing a missing assignment is a no-op.
func RemoveFlagAssignment(subjectID, flagID string) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for removing flag %s from subject %s", flagID, subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REMOVE_FLAG.Code,
			Message:     errors2.REMOVE_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.Execute(scripts.DeleteFlagAssignment["postgres"], subjectID, flagID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete assignment of flag %s from subject %s", flagID, subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.REMOVE_FLAG.Code,
			Message:     errors2.REMOVE_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

// GetSubjectFlags returns the flags assigned to a subject with assignment
// metadata, excluding inactive definitions and expired assignments.
func GetSubjectFlags(subjectID string) ([]model.SubjectFlag, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching flags of subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_FLAG.Code,
			Message:     errors2.GET_FLAG.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetSubjectFlags["postgres"], subjectID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching flags of subject: %s", subjectID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_FLAG.Code,
			Message:     errors2.GET_FLAG.Message,
			Description: errorMsg,
		}, err)
	}

	subjectFlags := make([]model.SubjectFlag, 0, len(results))
	for _, row := range results {
		sf := model.SubjectFlag{}
		if v, ok := row["flag_id"].(string); ok {
			sf.FlagID = v
		}
		if v, ok := row["name"].(string); ok {
			sf.Name = v
		}
		if v, ok := row["color"].(string); ok {
			sf.Color = v
		}
		if v, ok := row["icon"].(string); ok {
			sf.Icon = v
		}
		if v, ok := row["description"].(string); ok {
			sf.Description = v
		}
		if v, ok := row["assigned_by"].(string); ok {
			sf.AssignedBy = v
		}
		if v, ok := row["notes"].(string); ok {
			sf.Notes = v
		}
		if v, ok := row["expires_at"].(time.Time); ok {
			expires := v
			sf.ExpiresAt = &expires
		}
		if v, ok := row["assigned_at"].(time.Time); ok {
			sf.AssignedAt = v
		}
		subjectFlags = append(subjectFlags, sf)
	}
	return subjectFlags, nil
}

func flagFromRow(row map[string]interface{}) model.Flag {
	flag := model.Flag{}
	if v, ok := row["flag_id"].(string); ok {
		flag.FlagID = v
	}
	if v, ok := row["name"].(string); ok {
		flag.Name = v
	}
	if v, ok := row["color"].(string); ok {
		flag.Color = v
	}
	if v, ok := row["icon"].(string); ok {
		flag.Icon = v
	}
	if v, ok := row["description"].(string); ok {
		flag.Description = v
	}
	if v, ok := row["auto_assign_field"].(string); ok {
		flag.AutoAssignField = v
	}
	if v, ok := row["auto_assign_operator"].(string); ok {
		flag.AutoAssignOperator = v
	}
	if v, ok := row["auto_assign_value"].(string); ok {
		flag.AutoAssignValue = v
	}
	if v, ok := row["show_on_profile"].(bool); ok {
		flag.ShowOnProfile = v
	}
	if v, ok := row["show_on_calendar"].(bool); ok {
		flag.ShowOnCalendar = v
	}
	if v, ok := row["show_on_booking"].(bool); ok {
		flag.ShowOnBooking = v
	}
	if v, ok := row["show_on_reports"].(bool); ok {
		flag.ShowOnReports = v
	}
	if v, ok := row["is_active"].(bool); ok {
		flag.IsActive = v
	}
	return flag
}
