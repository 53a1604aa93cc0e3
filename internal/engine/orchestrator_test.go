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

package engine

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/dispatcher"
	executionModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/model"
	flagModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	ruleModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	settingsModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/model"
	subjectModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeRuleSource struct {
	rules       []ruleModel.Rule
	incremented []int64
}

func (f *fakeRuleSource) ListRules(activeOnly bool) ([]ruleModel.Rule, error) {
	if !activeOnly {
		return f.rules, nil
	}
	var active []ruleModel.Rule
	for _, r := range f.rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active, nil
}

func (f *fakeRuleSource) GetActiveRulesByTrigger(triggerType string) ([]ruleModel.Rule, error) {
	var matching []ruleModel.Rule
	for _, r := range f.rules {
		if r.IsActive && r.TriggerType == triggerType {
			matching = append(matching, r)
		}
	}
	return matching, nil
}

func (f *fakeRuleSource) GetRule(ruleID int64) (*ruleModel.Rule, error) {
	for _, r := range f.rules {
		if r.RuleID == ruleID {
			rule := r
			return &rule, nil
		}
	}
	return nil, nil
}

func (f *fakeRuleSource) IncrementExecution(ruleID int64) error {
	f.incremented = append(f.incremented, ruleID)
	return nil
}

type fakeSubjectSource struct {
	subject *subjectModel.Subject
}

func (f *fakeSubjectSource) GetSubject(string) (*subjectModel.Subject, error) {
	return f.subject, nil
}

type fakeSettingsSource struct {
	settings map[string]settingsModel.Setting
}

func (f *fakeSettingsSource) GetSetting(key string) (*settingsModel.Setting, error) {
	if s, ok := f.settings[key]; ok {
		return &s, nil
	}
	return nil, errors2.NewNotFoundError(errors2.SETTING_NOT_FOUND, "missing")
}

type fakeFlagCatalog struct {
	flags []flagModel.Flag
}

func (f *fakeFlagCatalog) ListFlags(bool) ([]flagModel.Flag, error) {
	return f.flags, nil
}

type fakeFlagAssigner struct {
	assigned  []string
	assignErr error
}

func (f *fakeFlagAssigner) Assign(_ context.Context, _, flagID, _, _ string) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned = append(f.assigned, flagID)
	return nil
}

type dispatchCall struct {
	actionType string
	config     json.RawMessage
}

type fakeDispatcher struct {
	calls   []dispatchCall
	failOn  string
	failErr error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, actionType string, rawConfig json.RawMessage,
	_ *subjectModel.Subject, _ string) (dispatcher.ActionResult, error) {

	f.calls = append(f.calls, dispatchCall{actionType: actionType, config: rawConfig})
	if actionType == f.failOn {
		return dispatcher.ActionResult{Status: dispatcher.StatusFailed, Detail: f.failErr.Error()}, f.failErr
	}
	return dispatcher.ActionResult{Status: dispatcher.StatusApplied}, nil
}

type fakeExecutionLog struct {
	entries []executionModel.ExecutionLogEntry
}

func (f *fakeExecutionLog) LogExecution(_ context.Context, entry executionModel.ExecutionLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type OrchestratorTestSuite struct {
	suite.Suite
	rules      *fakeRuleSource
	subjects   *fakeSubjectSource
	settings   *fakeSettingsSource
	flags      *fakeFlagCatalog
	assigner   *fakeFlagAssigner
	dispatcher *fakeDispatcher
	execLog    *fakeExecutionLog
	engine     *Engine
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.rules = &fakeRuleSource{}
	s.subjects = &fakeSubjectSource{subject: &subjectModel.Subject{
		SubjectID:  "sub-1",
		EntityType: "animal",
		Fields:     map[string]interface{}{"credits": 1.0, "status": "ACTIVE"},
	}}
	s.settings = &fakeSettingsSource{settings: map[string]settingsModel.Setting{}}
	s.flags = &fakeFlagCatalog{}
	s.assigner = &fakeFlagAssigner{}
	s.dispatcher = &fakeDispatcher{}
	s.execLog = &fakeExecutionLog{}
	s.engine = &Engine{
		Rules:        s.rules,
		Subjects:     s.subjects,
		Settings:     s.settings,
		Flags:        s.flags,
		FlagAssigner: s.assigner,
		Dispatcher:   s.dispatcher,
		Log:          s.execLog,
	}
}

func creditRule(id int64, priority int) ruleModel.Rule {
	return ruleModel.Rule{
		RuleID:           id,
		Name:             "low credits",
		Priority:         priority,
		IsActive:         true,
		TriggerType:      ruleModel.TriggerFieldChanged,
		TriggerField:     "credits",
		TriggerCondition: "less_or_equal",
		TriggerValue:     "1",
		ActionType:       ruleModel.ActionAddFlag,
		ActionConfig:     json.RawMessage(`{"flag_id":"low-credits"}`),
	}
}

func (s *OrchestratorTestSuite) TestCreditsThresholdScenario() {

	s.rules.rules = []ruleModel.Rule{creditRule(1, 10)}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Equal(1, summary.RulesEvaluated)
	s.Equal(1, summary.Matches)
	s.Require().Len(s.execLog.entries, 1)
	s.True(s.execLog.entries[0].Success)
	s.True(s.execLog.entries[0].Matched)
	s.Equal("1", s.execLog.entries[0].FieldValue)
	s.Require().Len(s.dispatcher.calls, 1)
	s.Equal(ruleModel.ActionAddFlag, s.dispatcher.calls[0].actionType)
	s.Equal([]int64{1}, s.rules.incremented)
}

func (s *OrchestratorTestSuite) TestInactiveRuleSkipped() {

	rule := creditRule(1, 10)
	rule.IsActive = false
	s.rules.rules = []ruleModel.Rule{rule}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Equal(0, summary.RulesEvaluated)
	s.Empty(s.execLog.entries)
	s.Empty(s.dispatcher.calls)
}

func (s *OrchestratorTestSuite) TestPriorityOrderPreservedInSequence() {

	high := creditRule(2, 100)
	low := creditRule(1, 1)
	// The source serves rules already ordered priority DESC, id ASC.
	s.rules.rules = []ruleModel.Rule{high, low}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Require().Len(summary.Entries, 2)
	s.Equal(int64(2), summary.Entries[0].RuleID)
	s.Equal(1, summary.Entries[0].Sequence)
	s.Equal(int64(1), summary.Entries[1].RuleID)
	s.Equal(2, summary.Entries[1].Sequence)
}

func (s *OrchestratorTestSuite) TestFaultIsolationAcrossRules() {

	broken := creditRule(1, 100)
	broken.ActionType = ruleModel.ActionCreateAlert
	healthy := creditRule(2, 1)
	s.rules.rules = []ruleModel.Rule{broken, healthy}
	s.dispatcher.failOn = ruleModel.ActionCreateAlert
	s.dispatcher.failErr = errors2.NewServerError(errors2.ErrorMessage{
		Code: errors2.DISPATCH_ACTION.Code, Message: "sink down"}, nil)

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Equal(2, summary.RulesEvaluated)
	s.Require().Len(s.execLog.entries, 2)
	s.False(s.execLog.entries[0].Success)
	s.NotEmpty(s.execLog.entries[0].ErrorMessage)
	s.True(s.execLog.entries[1].Success)
	// Only the healthy rule's counter moves.
	s.Equal([]int64{2}, s.rules.incremented)
}

func (s *OrchestratorTestSuite) TestMissingFieldIsNonMatch() {

	rule := creditRule(1, 10)
	rule.TriggerField = "nonexistent"
	s.rules.rules = []ruleModel.Rule{rule}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Equal(1, summary.RulesEvaluated)
	s.Equal(0, summary.Matches)
	s.Require().Len(s.execLog.entries, 1)
	s.True(s.execLog.entries[0].Success)
	s.False(s.execLog.entries[0].Matched)
	s.Empty(s.dispatcher.calls)
}

func (s *OrchestratorTestSuite) TestThresholdRuleReadsSettings() {

	s.settings.settings[constants.SettingCreditsCritical] = settingsModel.Setting{
		Key: constants.SettingCreditsCritical, Value: "1", DataType: constants.IntegerDataType,
	}
	rule := ruleModel.Rule{
		RuleID:           5,
		Name:             "critical threshold crossed",
		IsActive:         true,
		TriggerType:      ruleModel.TriggerThresholdReached,
		TriggerField:     constants.SettingCreditsCritical,
		TriggerCondition: "greater_or_equal",
		TriggerValue:     "1",
		ActionType:       ruleModel.ActionCreateAlert,
		ActionConfig:     json.RawMessage(`{"message":"critical"}`),
	}
	s.rules.rules = []ruleModel.Rule{rule}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerThresholdReached)

	s.Require().NoError(err)
	s.Equal(1, summary.Matches)
	s.Require().Len(s.dispatcher.calls, 1)
}

func (s *OrchestratorTestSuite) TestTriggerEntityFilter() {

	rule := creditRule(1, 10)
	rule.TriggerEntity = "case"
	s.rules.rules = []ruleModel.Rule{rule}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Equal(0, summary.RulesEvaluated)
	s.Empty(s.execLog.entries)
}

func (s *OrchestratorTestSuite) TestAutoAssignPass() {

	s.flags.flags = []flagModel.Flag{
		{
			FlagID:             "vip",
			Name:               "VIP",
			IsActive:           true,
			AutoAssignField:    "status",
			AutoAssignOperator: "equals",
			AutoAssignValue:    "ACTIVE",
		},
		{
			FlagID:   "plain",
			Name:     "No condition",
			IsActive: true,
		},
	}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Equal([]string{"vip"}, summary.FlagsAutoAssigned)
	s.Equal([]string{"vip"}, s.assigner.assigned)
}

func (s *OrchestratorTestSuite) TestAutoAssignConflictIsQuiet() {

	s.flags.flags = []flagModel.Flag{{
		FlagID:             "vip",
		IsActive:           true,
		AutoAssignField:    "status",
		AutoAssignOperator: "equals",
		AutoAssignValue:    "ACTIVE",
	}}
	s.assigner.assignErr = errors2.NewConflictError(errors2.FLAG_ALREADY_ASSIGNED, "taken")

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Empty(summary.FlagsAutoAssigned)
}

func (s *OrchestratorTestSuite) TestAutoAssignDisabledBySetting() {

	s.settings.settings[constants.SettingAutoFlagEnabled] = settingsModel.Setting{
		Key: constants.SettingAutoFlagEnabled, Value: "false", DataType: constants.BooleanDataType,
	}
	s.flags.flags = []flagModel.Flag{{
		FlagID:             "vip",
		IsActive:           true,
		AutoAssignField:    "status",
		AutoAssignOperator: "equals",
		AutoAssignValue:    "ACTIVE",
	}}

	summary, err := s.engine.EvaluateSubject(context.Background(), "sub-1", ruleModel.TriggerFieldChanged)

	s.Require().NoError(err)
	s.Empty(summary.FlagsAutoAssigned)
	s.Empty(s.assigner.assigned)
}

func (s *OrchestratorTestSuite) TestDryRunDoesNotDispatchOrLog() {

	s.rules.rules = []ruleModel.Rule{creditRule(1, 10)}

	result, err := s.engine.TestRule(context.Background(), 1, "sub-1")

	s.Require().NoError(err)
	s.True(result.Matches)
	s.Equal(1.0, result.FieldValue)
	s.Empty(s.dispatcher.calls)
	s.Empty(s.execLog.entries)
	s.Empty(s.rules.incremented)
}

func (s *OrchestratorTestSuite) TestUnknownSubjectIsNotFound() {

	s.subjects.subject = nil
	s.rules.rules = []ruleModel.Rule{creditRule(1, 10)}

	_, err := s.engine.EvaluateSubject(context.Background(), "ghost", ruleModel.TriggerFieldChanged)

	s.Require().Error(err)
	s.True(errors2.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestUnknownRuleInDryRunIsNotFound() {

	_, err := s.engine.TestRule(context.Background(), 42, "sub-1")

	s.Require().Error(err)
	s.True(errors2.IsNotFound(err))
}
