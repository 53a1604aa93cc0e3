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

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/service"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

func TestRules_CreateFetchPatchDelete(t *testing.T) {
	svc := service.GetRuleService()

	created, err := svc.CreateRule(model.Rule{
		Name:             "Low credits alert",
		Priority:         10,
		IsActive:         true,
		TriggerType:      model.TriggerFieldChanged,
		TriggerField:     "credits",
		TriggerCondition: "less_or_equal",
		TriggerValue:     "3",
		ActionType:       model.ActionCreateAlert,
		ActionConfig:     json.RawMessage(`{"severity":"warning","message":"Credits low: {field}"}`),
	})
	require.NoError(t, err)
	require.NotZero(t, created.RuleID)
	assert.Zero(t, created.ExecutionCount)
	assert.Nil(t, created.LastExecutedAt)

	// Patch only the priority; everything else must survive.
	newPriority := 99
	require.NoError(t, svc.UpdateRule(created.RuleID, model.RulePatch{Priority: &newPriority}))

	patched, err := svc.GetRule(created.RuleID)
	require.NoError(t, err)
	assert.Equal(t, 99, patched.Priority)
	assert.Equal(t, "Low credits alert", patched.Name)
	assert.Equal(t, "less_or_equal", patched.TriggerCondition)

	require.NoError(t, svc.DeleteRule(created.RuleID))
	_, err = svc.GetRule(created.RuleID)
	assert.True(t, errors2.IsNotFound(err))
}

func TestRules_PatchCannotBreakValidity(t *testing.T) {
	svc := service.GetRuleService()

	created, err := svc.CreateRule(model.Rule{
		Name:             "Field condition rule",
		IsActive:         true,
		TriggerType:      model.TriggerFieldChanged,
		TriggerField:     "status",
		TriggerCondition: "equals",
		TriggerValue:     "inactive",
		ActionType:       model.ActionBlockBooking,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.DeleteRule(created.RuleID) })

	// Clearing the field while a condition remains must be rejected.
	empty := ""
	err = svc.UpdateRule(created.RuleID, model.RulePatch{TriggerField: &empty})
	require.Error(t, err)

	unchanged, err := svc.GetRule(created.RuleID)
	require.NoError(t, err)
	assert.Equal(t, "status", unchanged.TriggerField)
}

func TestRules_ActiveByTriggerOrderedByPriority(t *testing.T) {
	svc := service.GetRuleService()

	mkRule := func(name string, priority int, active bool) int64 {
		created, err := svc.CreateRule(model.Rule{
			Name:        name,
			Priority:    priority,
			IsActive:    active,
			TriggerType: model.TriggerTimeBased,
			ActionType:  model.ActionSendNotification,
			ActionConfig: json.RawMessage(
				`{"recipient_ref":"ops","message":"scheduled check"}`),
		})
		require.NoError(t, err)
		t.Cleanup(func() { _ = svc.DeleteRule(created.RuleID) })
		return created.RuleID
	}

	low := mkRule("low priority", 1, true)
	high := mkRule("high priority", 50, true)
	mkRule("inactive", 100, false)

	rules, err := svc.GetActiveRulesByTrigger(model.TriggerTimeBased)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, high, rules[0].RuleID)
	assert.Equal(t, low, rules[1].RuleID)
}

func TestRules_IncrementExecutionAdvancesCounter(t *testing.T) {
	svc := service.GetRuleService()

	created, err := svc.CreateRule(model.Rule{
		Name:        "Counted rule",
		IsActive:    true,
		TriggerType: model.TriggerManual,
		ActionType:  model.ActionCreateAlert,
		ActionConfig: json.RawMessage(
			`{"severity":"info","message":"manual run"}`),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.DeleteRule(created.RuleID) })

	require.NoError(t, svc.IncrementExecution(created.RuleID))
	require.NoError(t, svc.IncrementExecution(created.RuleID))

	counted, err := svc.GetRule(created.RuleID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counted.ExecutionCount)
	assert.NotNil(t, counted.LastExecutedAt)
}
