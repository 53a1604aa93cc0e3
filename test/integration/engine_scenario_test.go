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
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine"
	executionmodel "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/model"
	executionservice "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/service"
	flagmodel "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	flagservice "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/service"
	rulemodel "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	ruleservice "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/service"
	settingsservice "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/service"
	subjectmodel "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	subjectstore "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/store"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
)

// Exercises the full low-credits path: a field_changed rule matches a
// subject whose credits dropped, an alert lands in the relational store
// and the evaluation is journaled in the execution log.
func TestEngine_LowCreditsScenario(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, settingsservice.GetSettingsService().SeedDefaults())

	subjectID := "subject-" + uuid.New().String()
	require.NoError(t, subjectstore.UpsertSubject(subjectmodel.Subject{
		SubjectID:  subjectID,
		EntityType: "client",
		Fields:     map[string]interface{}{"credits": 2, "name": "Ana"},
	}))

	ruleSvc := ruleservice.GetRuleService()
	created, err := ruleSvc.CreateRule(rulemodel.Rule{
		Name:             "Alert on low credits",
		Priority:         10,
		IsActive:         true,
		TriggerType:      rulemodel.TriggerFieldChanged,
		TriggerField:     "credits",
		TriggerCondition: "less_or_equal",
		TriggerValue:     "3",
		ActionType:       rulemodel.ActionCreateAlert,
		ActionConfig:     json.RawMessage(`{"severity":"warning","message":"Credits low: {credits}"}`),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ruleSvc.DeleteRule(created.RuleID) })

	summary, err := engine.NewDefaultEngine().EvaluateSubject(ctx, subjectID, rulemodel.TriggerFieldChanged)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Matches)
	assert.NotEmpty(t, summary.TraceID)

	// The alert row exists with the rendered message.
	var message, severity string
	err = testPG.DB.QueryRow(
		`SELECT message, severity FROM subject_alerts WHERE subject_id = $1`, subjectID).
		Scan(&message, &severity)
	require.NoError(t, err)
	assert.Equal(t, "Credits low: 2", message)
	assert.Equal(t, "warning", severity)

	// The evaluation was journaled.
	history, err := executionservice.GetExecutionService().GetHistory(ctx,
		executionmodel.HistoryFilter{SubjectID: subjectID})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, created.RuleID, history[0].RuleID)
	assert.True(t, history[0].Matched)
	assert.True(t, history[0].Success)
	assert.Equal(t, summary.TraceID, history[0].TraceID)
}

func TestEngine_NonMatchIsJournaledWithoutDispatch(t *testing.T) {
	ctx := context.Background()

	subjectID := "subject-" + uuid.New().String()
	require.NoError(t, subjectstore.UpsertSubject(subjectmodel.Subject{
		SubjectID:  subjectID,
		EntityType: "client",
		Fields:     map[string]interface{}{"credits": 10},
	}))

	ruleSvc := ruleservice.GetRuleService()
	created, err := ruleSvc.CreateRule(rulemodel.Rule{
		Name:             "Alert on low credits",
		IsActive:         true,
		TriggerType:      rulemodel.TriggerFieldChanged,
		TriggerField:     "credits",
		TriggerCondition: "less_or_equal",
		TriggerValue:     "3",
		ActionType:       rulemodel.ActionCreateAlert,
		ActionConfig:     json.RawMessage(`{"severity":"warning","message":"Credits low"}`),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ruleSvc.DeleteRule(created.RuleID) })

	summary, err := engine.NewDefaultEngine().EvaluateSubject(ctx, subjectID, rulemodel.TriggerFieldChanged)
	require.NoError(t, err)
	assert.Zero(t, summary.Matches)

	var alerts int
	require.NoError(t, testPG.DB.QueryRow(
		`SELECT COUNT(*) FROM subject_alerts WHERE subject_id = $1`, subjectID).Scan(&alerts))
	assert.Zero(t, alerts)

	history, err := executionservice.GetExecutionService().GetHistory(ctx,
		executionmodel.HistoryFilter{SubjectID: subjectID})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Matched)
}

func TestEngine_ThresholdRuleReadsSettingsStore(t *testing.T) {
	ctx := context.Background()
	settingsSvc := settingsservice.GetSettingsService()
	require.NoError(t, settingsSvc.SeedDefaults())
	require.NoError(t, settingsSvc.UpdateSetting(constants.SettingCreditsCritical, "1"))

	subjectID := "subject-" + uuid.New().String()
	require.NoError(t, subjectstore.UpsertSubject(subjectmodel.Subject{
		SubjectID:  subjectID,
		EntityType: "client",
		Fields:     map[string]interface{}{},
	}))

	ruleSvc := ruleservice.GetRuleService()
	created, err := ruleSvc.CreateRule(rulemodel.Rule{
		Name:             "Critical threshold block",
		IsActive:         true,
		TriggerType:      rulemodel.TriggerThresholdReached,
		TriggerField:     constants.SettingCreditsCritical,
		TriggerCondition: "less_or_equal",
		TriggerValue:     "1",
		ActionType:       rulemodel.ActionBlockBooking,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ruleSvc.DeleteRule(created.RuleID) })

	summary, err := engine.NewDefaultEngine().EvaluateSubject(ctx, subjectID, rulemodel.TriggerThresholdReached)
	require.NoError(t, err)
	require.Equal(t, 1, summary.Matches)

	var blocked bool
	require.NoError(t, testPG.DB.QueryRow(
		`SELECT booking_blocked FROM subjects WHERE subject_id = $1`, subjectID).Scan(&blocked))
	assert.True(t, blocked)
}

func TestEngine_AutoAssignsQualifyingFlags(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, settingsservice.GetSettingsService().SeedDefaults())

	flagSvc := flagservice.GetFlagService()
	flag, err := flagSvc.CreateFlag(flagmodel.Flag{
		Name:               "Auto debtor " + uuid.New().String()[:8],
		Color:              "red",
		AutoAssignField:    "balance",
		AutoAssignOperator: "less_than",
		AutoAssignValue:    "0",
		ShowOnProfile:      true,
	})
	require.NoError(t, err)

	subjectID := "subject-" + uuid.New().String()
	require.NoError(t, subjectstore.UpsertSubject(subjectmodel.Subject{
		SubjectID:  subjectID,
		EntityType: "client",
		Fields:     map[string]interface{}{"balance": -50},
	}))

	summary, err := engine.NewDefaultEngine().EvaluateSubject(ctx, subjectID, rulemodel.TriggerFieldChanged)
	require.NoError(t, err)
	assert.Contains(t, summary.FlagsAutoAssigned, flag.FlagID)

	subjectFlags, err := flagSvc.GetSubjectFlags(subjectID)
	require.NoError(t, err)
	require.Len(t, subjectFlags, 1)
	assert.Equal(t, flag.FlagID, subjectFlags[0].FlagID)

	// Another pass is a quiet no-op, not a duplicate or an error.
	summary, err = engine.NewDefaultEngine().EvaluateSubject(ctx, subjectID, rulemodel.TriggerFieldChanged)
	require.NoError(t, err)
	assert.Empty(t, summary.FlagsAutoAssigned)
}

func TestEngine_DryRunLeavesNoTrace(t *testing.T) {
	ctx := context.Background()

	subjectID := "subject-" + uuid.New().String()
	require.NoError(t, subjectstore.UpsertSubject(subjectmodel.Subject{
		SubjectID:  subjectID,
		EntityType: "client",
		Fields:     map[string]interface{}{"credits": 0},
	}))

	ruleSvc := ruleservice.GetRuleService()
	created, err := ruleSvc.CreateRule(rulemodel.Rule{
		Name:             "Dry run candidate",
		IsActive:         true,
		TriggerType:      rulemodel.TriggerFieldChanged,
		TriggerField:     "credits",
		TriggerCondition: "equals",
		TriggerValue:     "0",
		ActionType:       rulemodel.ActionCreateAlert,
		ActionConfig:     json.RawMessage(`{"severity":"critical","message":"Out of credits"}`),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ruleSvc.DeleteRule(created.RuleID) })

	result, err := engine.NewDefaultEngine().TestRule(ctx, created.RuleID, subjectID)
	require.NoError(t, err)
	assert.True(t, result.Matches)

	var alerts int
	require.NoError(t, testPG.DB.QueryRow(
		`SELECT COUNT(*) FROM subject_alerts WHERE subject_id = $1`, subjectID).Scan(&alerts))
	assert.Zero(t, alerts)

	history, err := executionservice.GetExecutionService().GetHistory(ctx,
		executionmodel.HistoryFilter{SubjectID: subjectID})
	require.NoError(t, err)
	assert.Empty(t, history)

	unchanged, err := ruleSvc.GetRule(created.RuleID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.ExecutionCount)
}
