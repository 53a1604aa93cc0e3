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

// Package model defines the rule data model and the closed trigger and
// action vocabularies.
package model

import (
	"encoding/json"
	"time"
)

// Rule is a persisted automation rule: when its trigger fires and its
// condition matches, its action is dispatched.
type Rule struct {
	RuleID           int64           `json:"rule_id"`
	Name             string          `json:"name"`
	Priority         int             `json:"priority"`
	IsActive         bool            `json:"is_active"`
	TriggerType      string          `json:"trigger_type"`
	TriggerEntity    string          `json:"trigger_entity,omitempty"`
	TriggerField     string          `json:"trigger_field,omitempty"`
	TriggerCondition string          `json:"trigger_condition,omitempty"`
	TriggerValue     string          `json:"trigger_value,omitempty"`
	ActionType       string          `json:"action_type"`
	ActionConfig     json.RawMessage `json:"action_config,omitempty"`
	ExecutionCount   int64           `json:"execution_count"`
	LastExecutedAt   *time.Time      `json:"last_executed_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Trigger types a rule may subscribe to.
const (
	TriggerFieldChanged     = "field_changed"
	TriggerLogCreated       = "log_created"
	TriggerThresholdReached = "threshold_reached"
	TriggerTimeBased        = "time_based"
	TriggerManual           = "manual"
)

// KnownTriggerTypes is the closed set of trigger types.
var KnownTriggerTypes = []string{
	TriggerFieldChanged,
	TriggerLogCreated,
	TriggerThresholdReached,
	TriggerTimeBased,
	TriggerManual,
}

// IsKnownTriggerType reports whether triggerType is supported.
func IsKnownTriggerType(triggerType string) bool {
	for _, known := range KnownTriggerTypes {
		if known == triggerType {
			return true
		}
	}
	return false
}

// Action types a rule may dispatch.
const (
	ActionCreateAlert      = "create_alert"
	ActionAddFlag          = "add_flag"
	ActionRemoveFlag       = "remove_flag"
	ActionSendNotification = "send_notification"
	ActionSendWhatsApp     = "send_whatsapp"
	ActionBlockBooking     = "block_booking"
	ActionUnblockBooking   = "unblock_booking"
	ActionAssignTask       = "assign_task"
	ActionUpdateField      = "update_field"
)

// KnownActionTypes is the closed set of action types.
var KnownActionTypes = []string{
	ActionCreateAlert,
	ActionAddFlag,
	ActionRemoveFlag,
	ActionSendNotification,
	ActionSendWhatsApp,
	ActionBlockBooking,
	ActionUnblockBooking,
	ActionAssignTask,
	ActionUpdateField,
}

// IsKnownActionType reports whether actionType is supported.
func IsKnownActionType(actionType string) bool {
	for _, known := range KnownActionTypes {
		if known == actionType {
			return true
		}
	}
	return false
}

// HasCondition reports whether the rule carries a field condition to
// evaluate. Rules without one match unconditionally when triggered.
func (r *Rule) HasCondition() bool {
	return r.TriggerField != "" && r.TriggerCondition != ""
}

// RulePatch is a partial rule update: nil fields keep their current value.
type RulePatch struct {
	Name             *string          `json:"name,omitempty"`
	Priority         *int             `json:"priority,omitempty"`
	IsActive         *bool            `json:"is_active,omitempty"`
	TriggerType      *string          `json:"trigger_type,omitempty"`
	TriggerEntity    *string          `json:"trigger_entity,omitempty"`
	TriggerField     *string          `json:"trigger_field,omitempty"`
	TriggerCondition *string          `json:"trigger_condition,omitempty"`
	TriggerValue     *string          `json:"trigger_value,omitempty"`
	ActionType       *string          `json:"action_type,omitempty"`
	ActionConfig     *json.RawMessage `json:"action_config,omitempty"`
}

// Apply overlays the patch on a rule.
func (p *RulePatch) Apply(rule *Rule) {
	if p.Name != nil {
		rule.Name = *p.Name
	}
	if p.Priority != nil {
		rule.Priority = *p.Priority
	}
	if p.IsActive != nil {
		rule.IsActive = *p.IsActive
	}
	if p.TriggerType != nil {
		rule.TriggerType = *p.TriggerType
	}
	if p.TriggerEntity != nil {
		rule.TriggerEntity = *p.TriggerEntity
	}
	if p.TriggerField != nil {
		rule.TriggerField = *p.TriggerField
	}
	if p.TriggerCondition != nil {
		rule.TriggerCondition = *p.TriggerCondition
	}
	if p.TriggerValue != nil {
		rule.TriggerValue = *p.TriggerValue
	}
	if p.ActionType != nil {
		rule.ActionType = *p.ActionType
	}
	if p.ActionConfig != nil {
		rule.ActionConfig = *p.ActionConfig
	}
}
