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

// Package service implements rule authoring and lookup.
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/dispatcher"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/evaluator"
	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/store"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/cache"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/config"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

// RuleServiceInterface defines the service interface.
type RuleServiceInterface interface {
	ListRules(activeOnly bool) ([]model.Rule, error)
	GetRule(ruleID int64) (*model.Rule, error)
	CreateRule(rule model.Rule) (*model.Rule, error)
	UpdateRule(ruleID int64, patch model.RulePatch) error
	DeleteRule(ruleID int64) error
	GetActiveRulesByTrigger(triggerType string) ([]model.Rule, error)
	IncrementExecution(ruleID int64) error
	GetMetadata() model.Metadata
}

// RuleService is the default implementation.
type RuleService struct{}

// GetRuleService returns a new instance.
func GetRuleService() RuleServiceInterface {
	return &RuleService{}
}

var (
	ruleCache     *cache.Cache
	ruleCacheOnce sync.Once
)

// getRuleCache lazily builds the active-rule cache from runtime config.
func getRuleCache() *cache.Cache {
	ruleCacheOnce.Do(func() {
		ttl := config.GetEngineRuntime().Config.Engine.RuleCacheTTLSeconds
		if ttl <= 0 {
			ttl = 30
		}
		ruleCache = cache.NewCache(time.Duration(ttl) * time.Second)
	})
	return ruleCache
}

// ListRules retrieves rules in evaluation order.
func (rs *RuleService) ListRules(activeOnly bool) ([]model.Rule, error) {

	rules, err := store.GetRules(activeOnly)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return []model.Rule{}, nil
	}
	return rules, nil
}

// GetRule retrieves one rule.
func (rs *RuleService) GetRule(ruleID int64) (*model.Rule, error) {

	rule, err := store.GetRuleByID(ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors2.NewNotFoundError(errors2.RULE_NOT_FOUND,
			fmt.Sprintf("No rule found for id: %d", ruleID))
	}
	return rule, nil
}

// CreateRule validates and persists a new rule.
func (rs *RuleService) CreateRule(rule model.Rule) (*model.Rule, error) {

	if err := rs.validateRule(rule); err != nil {
		return nil, err
	}

	ruleID, err := store.AddRule(rule)
	if err != nil {
		return nil, err
	}
	getRuleCache().Flush()

	return store.GetRuleByID(ruleID)
}

// UpdateRule applies a partial patch to a rule. Only supplied fields change;
// the patched result is validated as a whole before it replaces the stored
// definition.
func (rs *RuleService) UpdateRule(ruleID int64, patch model.RulePatch) error {

	rule, err := store.GetRuleByID(ruleID)
	if err != nil {
		return err
	}
	if rule == nil {
		return errors2.NewNotFoundError(errors2.RULE_NOT_FOUND,
			fmt.Sprintf("No rule found for id: %d", ruleID))
	}

	patch.Apply(rule)
	if err := rs.validateRule(*rule); err != nil {
		return err
	}

	if _, err := store.UpdateRule(*rule); err != nil {
		return err
	}
	getRuleCache().Flush()
	return nil
}

// DeleteRule removes a rule.
func (rs *RuleService) DeleteRule(ruleID int64) error {

	rows, err := store.DeleteRule(ruleID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors2.NewNotFoundError(errors2.RULE_NOT_FOUND,
			fmt.Sprintf("No rule found for id: %d", ruleID))
	}
	getRuleCache().Flush()
	return nil
}

// GetActiveRulesByTrigger returns the active rules for a trigger type in
// evaluation order, served from a short-lived cache so evaluation passes do
// not hammer the rule table.
func (rs *RuleService) GetActiveRulesByTrigger(triggerType string) ([]model.Rule, error) {

	cacheKey := "rules:trigger:" + triggerType
	if cached, ok := getRuleCache().Get(cacheKey); ok {
		if rules, ok := cached.([]model.Rule); ok {
			return rules, nil
		}
	}

	rules, err := store.GetActiveRulesByTrigger(triggerType)
	if err != nil {
		return nil, err
	}
	getRuleCache().Set(cacheKey, rules)
	return rules, nil
}

// IncrementExecution bumps a rule's execution counter.
func (rs *RuleService) IncrementExecution(ruleID int64) error {
	return store.IncrementRuleExecution(ruleID)
}

// GetMetadata returns the authoring vocabulary.
func (rs *RuleService) GetMetadata() model.Metadata {
	return model.GetMetadata()
}

// validateRule rejects rules that reference unknown vocabulary or carry a
// malformed action config. Everything here is checked at save time so the
// evaluation path only ever sees well-formed rules.
func (rs *RuleService) validateRule(rule model.Rule) error {

	if rule.Name == "" {
		return errors2.NewValidationError(errors2.RULE_VALIDATION, "Rule name is required.")
	}
	if !model.IsKnownTriggerType(rule.TriggerType) {
		return errors2.NewValidationError(errors2.UNKNOWN_TRIGGER_TYPE,
			fmt.Sprintf("Unknown trigger type: %s", rule.TriggerType))
	}
	if !model.IsKnownActionType(rule.ActionType) {
		return errors2.NewValidationError(errors2.UNKNOWN_ACTION_TYPE,
			fmt.Sprintf("Unknown action type: %s", rule.ActionType))
	}

	if rule.TriggerCondition != "" {
		if !evaluator.IsKnownOperator(rule.TriggerCondition) {
			return errors2.NewValidationError(errors2.UNKNOWN_OPERATOR,
				fmt.Sprintf("Unknown condition operator: %s", rule.TriggerCondition))
		}
		if rule.TriggerField == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				"A rule with a condition operator requires a trigger_field.")
		}
		operator := evaluator.Operator(rule.TriggerCondition)
		if operator != evaluator.OpIsEmpty && operator != evaluator.OpIsNotEmpty && rule.TriggerValue == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				fmt.Sprintf("Operator %s requires a trigger_value.", rule.TriggerCondition))
		}
	}

	return dispatcher.ValidateConfig(rule.ActionType, rule.ActionConfig)
}
