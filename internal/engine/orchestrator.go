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

// Package engine runs evaluation passes: it snapshots a subject, walks the
// applicable rules in priority order, dispatches matching actions and writes
// the audit trail. One broken rule never stops the rest of the pass.
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/dispatcher"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/evaluator"
	executionModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/model"
	flagModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	ruleModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	settingsModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/model"
	subjectModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	syscontext "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/context"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// Collaborator interfaces of the engine. Production wiring satisfies them
// with the feature services and adapters; tests use in-memory fakes.
type (
	// RuleSource serves rules in evaluation order.
	RuleSource interface {
		ListRules(activeOnly bool) ([]ruleModel.Rule, error)
		GetActiveRulesByTrigger(triggerType string) ([]ruleModel.Rule, error)
		GetRule(ruleID int64) (*ruleModel.Rule, error)
		IncrementExecution(ruleID int64) error
	}

	// SubjectSource serves subject snapshots.
	SubjectSource interface {
		GetSubject(subjectID string) (*subjectModel.Subject, error)
	}

	// SettingsSource resolves threshold values for threshold_reached rules.
	SettingsSource interface {
		GetSetting(key string) (*settingsModel.Setting, error)
	}

	// FlagCatalog lists flag definitions for the auto-assign pass.
	FlagCatalog interface {
		ListFlags(activeOnly bool) ([]flagModel.Flag, error)
	}

	// FlagAssigner attaches flags matched by auto-assign conditions.
	FlagAssigner interface {
		Assign(ctx context.Context, subjectID, flagID, assignedBy, notes string) error
	}

	// ActionDispatcher executes one matched action.
	ActionDispatcher interface {
		Dispatch(ctx context.Context, actionType string, rawConfig json.RawMessage,
			subject *subjectModel.Subject, actorID string) (dispatcher.ActionResult, error)
	}

	// ExecutionLog appends audit entries.
	ExecutionLog interface {
		LogExecution(ctx context.Context, entry executionModel.ExecutionLogEntry) error
	}
)

// Engine is the execution orchestrator.
type Engine struct {
	Rules        RuleSource
	Subjects     SubjectSource
	Settings     SettingsSource
	Flags        FlagCatalog
	FlagAssigner FlagAssigner
	Dispatcher   ActionDispatcher
	Log          ExecutionLog
}

// ExecutionSummary reports the outcome of one evaluation pass.
type ExecutionSummary struct {
	TraceID           string                             `json:"trace_id"`
	SubjectID         string                             `json:"subject_id"`
	TriggerType       string                             `json:"trigger_type,omitempty"`
	RulesEvaluated    int                                `json:"rules_evaluated"`
	Matches           int                                `json:"matches"`
	Entries           []executionModel.ExecutionLogEntry `json:"entries"`
	FlagsAutoAssigned []string                           `json:"flags_auto_assigned,omitempty"`
}

// TestResult is the outcome of a dry-run rule evaluation.
type TestResult struct {
	Matches    bool        `json:"matches"`
	FieldValue interface{} `json:"field_value,omitempty"`
}

// EvaluateSubject runs one evaluation pass for a subject. triggerType
// narrows the rule table; when empty, all active rules run. Evaluation is
// after-the-fact: it reads the subject's current snapshot, not the state at
// the moment the triggering event happened.
func (e *Engine) EvaluateSubject(ctx context.Context, subjectID, triggerType string) (*ExecutionSummary, error) {

	logger := log.GetLogger()
	traceID := syscontext.GetOrGenerateTraceID(ctx)
	actorID := syscontext.GetActorID(ctx)
	if actorID == "" {
		actorID = "engine"
	}

	subject, err := e.Subjects.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, errors2.NewNotFoundError(errors2.SUBJECT_NOT_FOUND,
			fmt.Sprintf("No subject found for id: %s", subjectID))
	}

	var rules []ruleModel.Rule
	if triggerType == "" {
		rules, err = e.Rules.ListRules(true)
	} else {
		rules, err = e.Rules.GetActiveRulesByTrigger(triggerType)
	}
	if err != nil {
		return nil, err
	}

	summary := &ExecutionSummary{
		TraceID:     traceID,
		SubjectID:   subjectID,
		TriggerType: triggerType,
		Entries:     []executionModel.ExecutionLogEntry{},
	}

	sequence := 0
	for _, rule := range rules {
		if rule.TriggerEntity != "" && rule.TriggerEntity != subject.EntityType {
			continue
		}
		summary.RulesEvaluated++
		sequence++
		entry := e.evaluateRule(ctx, rule, subject, traceID, sequence, actorID)
		if entry.Matched {
			summary.Matches++
		}
		if err := e.Log.LogExecution(ctx, entry); err != nil {
			logger.Error("Failed to append execution log entry",
				log.Error(err), log.Int64("ruleId", rule.RuleID), log.String("traceId", traceID))
		}
		summary.Entries = append(summary.Entries, entry)
	}

	summary.FlagsAutoAssigned = e.autoAssignFlags(ctx, subject, actorID)

	logger.Debug("Evaluation pass finished",
		log.String("subjectId", subjectID), log.String("traceId", traceID),
		log.Int("rulesEvaluated", summary.RulesEvaluated), log.Int("matches", summary.Matches))
	return summary, nil
}

// evaluateRule evaluates and, on match, dispatches one rule. Faults are
// contained: a panicking or failing rule yields a success=false entry and
// the pass moves on.
func (e *Engine) evaluateRule(ctx context.Context, rule ruleModel.Rule,
	subject *subjectModel.Subject, traceID string, sequence int, actorID string) (entry executionModel.ExecutionLogEntry) {

	entry = executionModel.ExecutionLogEntry{
		TraceID:      traceID,
		Sequence:     sequence,
		RuleID:       rule.RuleID,
		RuleName:     rule.Name,
		SubjectID:    subject.SubjectID,
		TriggerType:  rule.TriggerType,
		TriggerField: rule.TriggerField,
		ActionType:   rule.ActionType,
		Success:      true,
	}

	defer func() {
		if r := recover(); r != nil {
			log.GetLogger().Error("Rule evaluation panicked",
				log.Int64("ruleId", rule.RuleID), log.Any("panic", r))
			entry.Success = false
			entry.ErrorMessage = fmt.Sprintf("rule evaluation panicked: %v", r)
		}
	}()

	fieldValue, present := e.resolveField(rule, subject)
	entry.FieldValue = fmt.Sprintf("%v", fieldValue)
	if !present {
		entry.FieldValue = ""
	}

	matched := true
	if rule.HasCondition() {
		// A field the subject does not carry is a non-match, not an error.
		matched = present && evaluator.Evaluate(fieldValue,
			evaluator.Operator(rule.TriggerCondition), rule.TriggerValue)
	}
	entry.Matched = matched
	if !matched {
		return entry
	}

	result, err := e.Dispatcher.Dispatch(ctx, rule.ActionType, rule.ActionConfig, subject, actorID)
	entry.ActionStatus = result.Status
	entry.ActionDetail = result.Detail
	if err != nil {
		entry.Success = false
		entry.ErrorMessage = err.Error()
		return entry
	}

	// Counter updates are fire-and-forget.
	if err := e.Rules.IncrementExecution(rule.RuleID); err != nil {
		log.GetLogger().Warn("Failed to bump rule execution counter",
			log.Error(err), log.Int64("ruleId", rule.RuleID))
	}
	return entry
}

// resolveField locates the value a rule's condition inspects. Rules with a
// threshold_reached trigger read their field from settings; everything else
// reads the subject snapshot.
func (e *Engine) resolveField(rule ruleModel.Rule, subject *subjectModel.Subject) (interface{}, bool) {

	if !rule.HasCondition() {
		return nil, false
	}
	if rule.TriggerType == ruleModel.TriggerThresholdReached {
		setting, err := e.Settings.GetSetting(rule.TriggerField)
		if err != nil || setting == nil {
			return nil, false
		}
		return setting.Value, true
	}
	return subject.Field(rule.TriggerField)
}

// autoAssignFlags runs the flag auto-assign pass after the rule table. It is
// gated by the auto_flag_enabled setting and shares the rule evaluator, so a
// flag condition behaves exactly like a rule condition.
func (e *Engine) autoAssignFlags(ctx context.Context, subject *subjectModel.Subject, actorID string) []string {

	logger := log.GetLogger()
	if setting, err := e.Settings.GetSetting(constants.SettingAutoFlagEnabled); err == nil && setting != nil {
		if enabled, ok := setting.BoolValue(); ok && !enabled {
			return nil
		}
	}

	flags, err := e.Flags.ListFlags(true)
	if err != nil {
		logger.Error("Failed to list flags for the auto-assign pass", log.Error(err))
		return nil
	}

	var assigned []string
	for _, flag := range flags {
		if !flag.HasAutoAssign() {
			continue
		}
		fieldValue, present := subject.Field(flag.AutoAssignField)
		if !present {
			continue
		}
		if !evaluator.Evaluate(fieldValue, evaluator.Operator(flag.AutoAssignOperator), flag.AutoAssignValue) {
			continue
		}
		err := e.FlagAssigner.Assign(ctx, subject.SubjectID, flag.FlagID, actorID, "auto-assigned")
		if err != nil {
			// An existing assignment already satisfies the condition.
			if errors2.IsConflict(err) {
				continue
			}
			logger.Error("Failed to auto-assign flag",
				log.Error(err), log.String("flagId", flag.FlagID), log.String("subjectId", subject.SubjectID))
			continue
		}
		assigned = append(assigned, flag.FlagID)
	}
	return assigned
}

// TestRule dry-runs one rule against a subject: it resolves the field and
// evaluates the condition but neither dispatches the action nor writes the
// execution log.
func (e *Engine) TestRule(ctx context.Context, ruleID int64, subjectID string) (*TestResult, error) {

	rule, err := e.Rules.GetRule(ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors2.NewNotFoundError(errors2.RULE_NOT_FOUND,
			fmt.Sprintf("No rule found for id: %d", ruleID))
	}

	subject, err := e.Subjects.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, errors2.NewNotFoundError(errors2.SUBJECT_NOT_FOUND,
			fmt.Sprintf("No subject found for id: %s", subjectID))
	}

	fieldValue, present := e.resolveField(*rule, subject)
	matches := true
	if rule.HasCondition() {
		matches = present && evaluator.Evaluate(fieldValue,
			evaluator.Operator(rule.TriggerCondition), rule.TriggerValue)
	}
	return &TestResult{Matches: matches, FieldValue: fieldValue}, nil
}
