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
	"time"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/scripts"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// AddRule inserts a new rule and returns its generated id.
func AddRule(rule model.Rule) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for adding rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RULE.Code,
			Message:     errors2.ADD_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	actionConfig := "{}"
	if len(rule.ActionConfig) > 0 {
		actionConfig = string(rule.ActionConfig)
	}

	results, err := dbClient.ExecuteQuery(scripts.InsertRule["postgres"],
		rule.Name, rule.Priority, rule.IsActive, rule.TriggerType, rule.TriggerEntity,
		rule.TriggerField, rule.TriggerCondition, rule.TriggerValue, rule.ActionType, actionConfig)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to insert rule: %s", rule.Name)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RULE.Code,
			Message:     errors2.ADD_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		errorMsg := fmt.Sprintf("Insert of rule %s returned no id", rule.Name)
		logger.Debug(errorMsg)
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_RULE.Code,
			Message:     errors2.ADD_RULE.Message,
			Description: errorMsg,
		}, nil)
	}

	ruleID, _ := results[0]["rule_id"].(int64)
	return ruleID, nil
}

// GetRuleByID fetches one rule. Returns nil when absent.
func GetRuleByID(ruleID int64) (*model.Rule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching rule: %d", ruleID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_RULE.Code,
			Message:     errors2.GET_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(scripts.GetRuleByID["postgres"], ruleID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching rule: %d", ruleID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_RULE.Code,
			Message:     errors2.GET_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rule := ruleFromRow(results[0])
	return &rule, nil
}

// GetRules fetches all rules ordered by priority descending, then id.
func GetRules(activeOnly bool) ([]model.Rule, error) {

	query := scripts.GetAllRules["postgres"]
	if activeOnly {
		query = scripts.GetActiveRules["postgres"]
	}
	return queryRules(query)
}

// GetActiveRulesByTrigger fetches the active rules subscribed to a trigger
// type, in evaluation order.
func GetActiveRulesByTrigger(triggerType string) ([]model.Rule, error) {

	return queryRules(scripts.GetActiveRulesByTrigger["postgres"], triggerType)
}

func queryRules(query string, args ...interface{}) ([]model.Rule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching rules"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_RULE.Code,
			Message:     errors2.GET_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed to execute query for fetching rules"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_RULE.Code,
			Message:     errors2.GET_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	rules := make([]model.Rule, 0, len(results))
	for _, row := range results {
		rules = append(rules, ruleFromRow(row))
	}
	return rules, nil
}

// UpdateRule replaces a rule definition. Reports rows affected.
func UpdateRule(rule model.Rule) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating rule: %d", rule.RuleID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RULE.Code,
			Message:     errors2.UPDATE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	actionConfig := "{}"
	if len(rule.ActionConfig) > 0 {
		actionConfig = string(rule.ActionConfig)
	}

	rows, err := dbClient.Execute(scripts.UpdateRule["postgres"],
		rule.RuleID, rule.Name, rule.Priority, rule.IsActive, rule.TriggerType, rule.TriggerEntity,
		rule.TriggerField, rule.TriggerCondition, rule.TriggerValue, rule.ActionType, actionConfig)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update rule: %d", rule.RuleID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RULE.Code,
			Message:     errors2.UPDATE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

// DeleteRule removes a rule. Reports rows affected.
func DeleteRule(ruleID int64) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for deleting rule: %d", ruleID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_RULE.Code,
			Message:     errors2.DELETE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.Execute(scripts.DeleteRule["postgres"], ruleID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete rule: %d", ruleID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_RULE.Code,
			Message:     errors2.DELETE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

// IncrementRuleExecution bumps a rule's execution counter and last-executed
// timestamp. Failures here must not fail the evaluation pass, so the caller
// treats the returned error as advisory.
func IncrementRuleExecution(ruleID int64) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for incrementing rule execution: %d", ruleID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RULE.Code,
			Message:     errors2.UPDATE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.Execute(scripts.IncrementRuleExecution["postgres"], ruleID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to increment execution counter of rule: %d", ruleID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_RULE.Code,
			Message:     errors2.UPDATE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

func ruleFromRow(row map[string]interface{}) model.Rule {
	rule := model.Rule{}
	if v, ok := row["rule_id"].(int64); ok {
		rule.RuleID = v
	}
	if v, ok := row["name"].(string); ok {
		rule.Name = v
	}
	if v, ok := row["priority"].(int64); ok {
		rule.Priority = int(v)
	}
	if v, ok := row["is_active"].(bool); ok {
		rule.IsActive = v
	}
	if v, ok := row["trigger_type"].(string); ok {
		rule.TriggerType = v
	}
	if v, ok := row["trigger_entity"].(string); ok {
		rule.TriggerEntity = v
	}
	if v, ok := row["trigger_field"].(string); ok {
		rule.TriggerField = v
	}
	if v, ok := row["trigger_condition"].(string); ok {
		rule.TriggerCondition = v
	}
	if v, ok := row["trigger_value"].(string); ok {
		rule.TriggerValue = v
	}
	if v, ok := row["action_type"].(string); ok {
		rule.ActionType = v
	}
	if v, ok := row["action_config"].(string); ok && v != "" {
		rule.ActionConfig = json.RawMessage(v)
	}
	if v, ok := row["execution_count"].(int64); ok {
		rule.ExecutionCount = v
	}
	if v, ok := row["last_executed_at"].(time.Time); ok {
		lastExecuted := v
		rule.LastExecutedAt = &lastExecuted
	}
	if v, ok := row["created_at"].(time.Time); ok {
		rule.CreatedAt = v
	}
	if v, ok := row["updated_at"].(time.Time); ok {
		rule.UpdatedAt = v
	}
	return rule
}
