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
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/model"
	mongoclient "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/mongo"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

const executionLogCollection = "execution_log"

func collection() (*mongoclient.MongoDB, error) {

	instance := mongoclient.GetInstance()
	if instance == nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EXECUTION_LOG.Code,
			Message:     errors2.ADD_EXECUTION_LOG.Message,
			Description: "MongoDB connection is not initialized",
		}, nil)
	}
	return instance, nil
}

// AddExecutionLogEntry appends one record to the execution log. The log is
// append-only: nothing in the engine updates or deletes entries.
func AddExecutionLogEntry(ctx context.Context, entry model.ExecutionLogEntry) error {

	instance, err := collection()
	if err != nil {
		return err
	}

	_, err = instance.Database.Collection(executionLogCollection).InsertOne(ctx, entry)
	if err != nil {
		errorMsg := "Failed to append execution log entry"
		log.GetLogger().Debug(errorMsg, log.Error(err),
			log.Int64("ruleId", entry.RuleID), log.String("subjectId", entry.SubjectID))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_EXECUTION_LOG.Code,
			Message:     errors2.ADD_EXECUTION_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetExecutionHistory reads the execution log newest-first, optionally
// narrowed to one rule or one subject.
func GetExecutionHistory(ctx context.Context, filter model.HistoryFilter) ([]model.ExecutionLogEntry, error) {

	instance, err := collection()
	if err != nil {
		return nil, err
	}

	query := bson.M{}
	if filter.RuleID != nil {
		query["rule_id"] = *filter.RuleID
	}
	if filter.SubjectID != "" {
		query["subject_id"] = filter.SubjectID
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "executed_at", Value: -1}, {Key: "sequence", Value: -1}}).
		SetLimit(limit)

	cursor, err := instance.Database.Collection(executionLogCollection).Find(ctx, query, opts)
	if err != nil {
		errorMsg := "Failed to query execution history"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_EXECUTION_LOG.Code,
			Message:     errors2.GET_EXECUTION_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	defer cursor.Close(ctx)

	entries := make([]model.ExecutionLogEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		errorMsg := "Failed to decode execution history"
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_EXECUTION_LOG.Code,
			Message:     errors2.GET_EXECUTION_LOG.Message,
			Description: errorMsg,
		}, err)
	}
	return entries, nil
}
