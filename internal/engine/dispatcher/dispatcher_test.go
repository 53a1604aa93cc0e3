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

package dispatcher

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	ruleModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	subjectModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeSinks struct {
	alerts        []string
	notifications []string
	whatsapp      []string
	tasks         []string
	blocked       map[string]bool
	patched       map[string]interface{}
	assigned      []string
	removed       []string

	assignErr error
	alertErr  error
}

func newFakeSinks() *fakeSinks {
	return &fakeSinks{blocked: map[string]bool{}, patched: map[string]interface{}{}}
}

func (f *fakeSinks) CreateAlert(_ context.Context, subjectID, severity, message, _ string) error {
	if f.alertErr != nil {
		return f.alertErr
	}
	f.alerts = append(f.alerts, severity+":"+message+":"+subjectID)
	return nil
}

func (f *fakeSinks) SendNotification(_ context.Context, recipientRef, message string) error {
	f.notifications = append(f.notifications, recipientRef+":"+message)
	return nil
}

func (f *fakeSinks) SendWhatsApp(_ context.Context, to, message string) error {
	f.whatsapp = append(f.whatsapp, to+":"+message)
	return nil
}

func (f *fakeSinks) CreateTask(_ context.Context, assigneeRef, description, subjectID, _ string) error {
	f.tasks = append(f.tasks, assigneeRef+":"+description+":"+subjectID)
	return nil
}

func (f *fakeSinks) SetBlocked(_ context.Context, subjectID string, blocked bool) error {
	f.blocked[subjectID] = blocked
	return nil
}

func (f *fakeSinks) PatchField(_ context.Context, _, field string, value interface{}) error {
	f.patched[field] = value
	return nil
}

func (f *fakeSinks) Assign(_ context.Context, _, flagID, _, _ string) error {
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned = append(f.assigned, flagID)
	return nil
}

func (f *fakeSinks) Remove(_ context.Context, _, flagID string) error {
	f.removed = append(f.removed, flagID)
	return nil
}

type DispatcherTestSuite struct {
	suite.Suite
	sinks      *fakeSinks
	dispatcher *Dispatcher
	subject    *subjectModel.Subject
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.sinks = newFakeSinks()
	s.dispatcher = &Dispatcher{
		Alerts:        s.sinks,
		Notifications: s.sinks,
		Messaging:     s.sinks,
		Tasks:         s.sinks,
		Booking:       s.sinks,
		Subjects:      s.sinks,
		Flags:         s.sinks,
		ActionTimeout: 5 * time.Second,
	}
	s.subject = &subjectModel.Subject{
		SubjectID: "sub-1",
		Fields: map[string]interface{}{
			"name":    "Ana",
			"credits": 0.0,
			"phone":   "+5511999990000",
		},
	}
}

func (s *DispatcherTestSuite) TestCreateAlertRendersTemplate() {

	cfg := json.RawMessage(`{"severity":"critical","message":"Subject {name} ran out of credits"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionCreateAlert, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Require().Len(s.sinks.alerts, 1)
	s.Equal("critical:Subject Ana ran out of credits:sub-1", s.sinks.alerts[0])
}

func (s *DispatcherTestSuite) TestCreateAlertDefaultsSeverity() {

	cfg := json.RawMessage(`{"message":"hello"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionCreateAlert, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Require().Len(s.sinks.alerts, 1)
	s.Contains(s.sinks.alerts[0], "warning:")
}

func (s *DispatcherTestSuite) TestAddFlagConflictIsAlreadyApplied() {

	s.sinks.assignErr = errors2.NewConflictError(errors2.FLAG_ALREADY_ASSIGNED, "already there")
	cfg := json.RawMessage(`{"flag_id":"flag-1"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionAddFlag, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusAlreadyApplied, result.Status)
	s.Empty(s.sinks.assigned)
}

func (s *DispatcherTestSuite) TestAddAndRemoveFlag() {

	cfg := json.RawMessage(`{"flag_id":"flag-1"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionAddFlag, cfg, s.subject, "op-1")
	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Equal([]string{"flag-1"}, s.sinks.assigned)

	result, err = s.dispatcher.Dispatch(context.Background(), ruleModel.ActionRemoveFlag, cfg, s.subject, "op-1")
	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Equal([]string{"flag-1"}, s.sinks.removed)
}

func (s *DispatcherTestSuite) TestWhatsAppSkippedWithoutPhone() {

	delete(s.subject.Fields, "phone")
	cfg := json.RawMessage(`{"phone_field":"phone","message":"hi {name}"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionSendWhatsApp, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusSkipped, result.Status)
	s.Empty(s.sinks.whatsapp)
}

func (s *DispatcherTestSuite) TestWhatsAppDelivered() {

	cfg := json.RawMessage(`{"phone_field":"phone","message":"hi {name}"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionSendWhatsApp, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Equal([]string{"+5511999990000:hi Ana"}, s.sinks.whatsapp)
}

func (s *DispatcherTestSuite) TestBlockBookingIdempotent() {

	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionBlockBooking, nil, s.subject, "op-1")
	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.True(s.sinks.blocked["sub-1"])

	s.subject.BookingBlocked = true
	result, err = s.dispatcher.Dispatch(context.Background(), ruleModel.ActionBlockBooking, nil, s.subject, "op-1")
	s.NoError(err)
	s.Equal(StatusAlreadyApplied, result.Status)
}

func (s *DispatcherTestSuite) TestUpdateField() {

	cfg := json.RawMessage(`{"field":"status","value":"inactive"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionUpdateField, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Equal("inactive", s.sinks.patched["status"])
}

func (s *DispatcherTestSuite) TestAssignTask() {

	cfg := json.RawMessage(`{"assignee_ref":"staff-7","description":"Call {name}"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionAssignTask, cfg, s.subject, "op-1")

	s.NoError(err)
	s.Equal(StatusApplied, result.Status)
	s.Equal([]string{"staff-7:Call Ana:sub-1"}, s.sinks.tasks)
}

func (s *DispatcherTestSuite) TestUnknownActionTypeFails() {

	result, err := s.dispatcher.Dispatch(context.Background(), "launch_rocket", nil, s.subject, "op-1")

	s.Error(err)
	s.Equal(StatusFailed, result.Status)
}

func (s *DispatcherTestSuite) TestSinkErrorSurfacesAsFailure() {

	s.sinks.alertErr = errors2.NewServerError(errors2.ErrorMessage{
		Code: errors2.DISPATCH_ACTION.Code, Message: "boom"}, nil)
	cfg := json.RawMessage(`{"message":"hello"}`)
	result, err := s.dispatcher.Dispatch(context.Background(), ruleModel.ActionCreateAlert, cfg, s.subject, "op-1")

	s.Error(err)
	s.Equal(StatusFailed, result.Status)
}

func (s *DispatcherTestSuite) TestValidateConfig() {

	testCases := []struct {
		name       string
		actionType string
		config     string
		wantErr    bool
	}{
		{"AlertValid", ruleModel.ActionCreateAlert, `{"severity":"info","message":"m"}`, false},
		{"AlertMissingMessage", ruleModel.ActionCreateAlert, `{"severity":"info"}`, true},
		{"AlertBadSeverity", ruleModel.ActionCreateAlert, `{"severity":"panic","message":"m"}`, true},
		{"AddFlagValid", ruleModel.ActionAddFlag, `{"flag_id":"f-1"}`, false},
		{"AddFlagMissingID", ruleModel.ActionAddFlag, `{}`, true},
		{"BlockBookingEmptyConfig", ruleModel.ActionBlockBooking, ``, false},
		{"WhatsAppValid", ruleModel.ActionSendWhatsApp, `{"phone_field":"phone","message":"m"}`, false},
		{"WhatsAppMissingPhoneField", ruleModel.ActionSendWhatsApp, `{"message":"m"}`, true},
		{"UpdateFieldValid", ruleModel.ActionUpdateField, `{"field":"status","value":1}`, false},
		{"UpdateFieldMissingField", ruleModel.ActionUpdateField, `{"value":1}`, true},
		{"TaskValid", ruleModel.ActionAssignTask, `{"assignee_ref":"s-1","description":"d"}`, false},
		{"NotificationMissingRecipient", ruleModel.ActionSendNotification, `{"message":"m"}`, true},
		{"MalformedJSON", ruleModel.ActionCreateAlert, `{"message":}`, true},
		{"UnknownAction", "launch_rocket", `{}`, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := ValidateConfig(tc.actionType, json.RawMessage(tc.config))
			if tc.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}
		})
	}
}
