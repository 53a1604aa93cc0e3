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

// Package dispatcher maps rule action types to their side effects. The set
// of action types is closed: every type has a typed config and a handler,
// and anything else is rejected at rule save time.
package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	ruleModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	subjectModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// Sink interfaces the dispatcher drives. Implementations live in the
// collaborators package; tests substitute fakes.
type (
	// AlertSink records an alert against a subject.
	AlertSink interface {
		CreateAlert(ctx context.Context, subjectID, severity, message, createdBy string) error
	}

	// NotificationSink delivers an in-app notification.
	NotificationSink interface {
		SendNotification(ctx context.Context, recipientRef, message string) error
	}

	// MessagingSink delivers an outbound WhatsApp message.
	MessagingSink interface {
		SendWhatsApp(ctx context.Context, to, message string) error
	}

	// TaskSink opens a task for a staff member.
	TaskSink interface {
		CreateTask(ctx context.Context, assigneeRef, description, subjectID, createdBy string) error
	}

	// BookingGate toggles whether a subject may book.
	BookingGate interface {
		SetBlocked(ctx context.Context, subjectID string, blocked bool) error
	}

	// SubjectWriter updates a single subject field.
	SubjectWriter interface {
		PatchField(ctx context.Context, subjectID, field string, value interface{}) error
	}

	// FlagRegistry attaches and detaches subject flags.
	FlagRegistry interface {
		Assign(ctx context.Context, subjectID, flagID, assignedBy, notes string) error
		Remove(ctx context.Context, subjectID, flagID string) error
	}
)

// Action outcome statuses recorded in the execution log.
const (
	StatusApplied        = "applied"
	StatusAlreadyApplied = "already_applied"
	StatusSkipped        = "skipped"
	StatusFailed         = "failed"
)

// ActionResult describes the outcome of one dispatched action.
type ActionResult struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Typed action configs. Validated at rule save time, decoded again at
// dispatch time.
type (
	CreateAlertConfig struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
	}

	FlagActionConfig struct {
		FlagID string `json:"flag_id"`
		Notes  string `json:"notes,omitempty"`
	}

	SendNotificationConfig struct {
		RecipientRef string `json:"recipient_ref"`
		Message      string `json:"message"`
	}

	SendWhatsAppConfig struct {
		PhoneField string `json:"phone_field"`
		Message    string `json:"message"`
	}

	AssignTaskConfig struct {
		AssigneeRef string `json:"assignee_ref"`
		Description string `json:"description"`
	}

	UpdateFieldConfig struct {
		Field string      `json:"field"`
		Value interface{} `json:"value"`
	}
)

// Dispatcher executes rule actions against its sinks.
type Dispatcher struct {
	Alerts        AlertSink
	Notifications NotificationSink
	Messaging     MessagingSink
	Tasks         TaskSink
	Booking       BookingGate
	Subjects      SubjectWriter
	Flags         FlagRegistry

	// ActionTimeout bounds every single dispatch.
	ActionTimeout time.Duration
}

// ValidateConfig checks an action config against the schema of its action
// type. Called at rule save time so malformed configs never reach dispatch.
func ValidateConfig(actionType string, raw json.RawMessage) error {

	decode := func(target interface{}) error {
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				fmt.Sprintf("Malformed action_config for action %s: %s", actionType, err.Error()))
		}
		return nil
	}

	switch actionType {
	case ruleModel.ActionCreateAlert:
		var cfg CreateAlertConfig
		if err := decode(&cfg); err != nil {
			return err
		}
		if cfg.Message == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				"create_alert requires a message in action_config.")
		}
		if cfg.Severity != "" && !constants.AllowedAlertSeverities[cfg.Severity] {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				fmt.Sprintf("Unknown alert severity: %s", cfg.Severity))
		}
	case ruleModel.ActionAddFlag, ruleModel.ActionRemoveFlag:
		var cfg FlagActionConfig
		if err := decode(&cfg); err != nil {
			return err
		}
		if cfg.FlagID == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				fmt.Sprintf("%s requires a flag_id in action_config.", actionType))
		}
	case ruleModel.ActionSendNotification:
		var cfg SendNotificationConfig
		if err := decode(&cfg); err != nil {
			return err
		}
		if cfg.RecipientRef == "" || cfg.Message == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				"send_notification requires recipient_ref and message in action_config.")
		}
	case ruleModel.ActionSendWhatsApp:
		var cfg SendWhatsAppConfig
		if err := decode(&cfg); err != nil {
			return err
		}
		if cfg.PhoneField == "" || cfg.Message == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				"send_whatsapp requires phone_field and message in action_config.")
		}
	case ruleModel.ActionBlockBooking, ruleModel.ActionUnblockBooking:
		// No config.
	case ruleModel.ActionAssignTask:
		var cfg AssignTaskConfig
		if err := decode(&cfg); err != nil {
			return err
		}
		if cfg.AssigneeRef == "" || cfg.Description == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				"assign_task requires assignee_ref and description in action_config.")
		}
	case ruleModel.ActionUpdateField:
		var cfg UpdateFieldConfig
		if err := decode(&cfg); err != nil {
			return err
		}
		if cfg.Field == "" {
			return errors2.NewValidationError(errors2.RULE_VALIDATION,
				"update_field requires a field in action_config.")
		}
	default:
		return errors2.NewValidationError(errors2.UNKNOWN_ACTION_TYPE,
			fmt.Sprintf("Unknown action type: %s", actionType))
	}
	return nil
}

// Dispatch executes one action against a subject and reports the outcome.
// Every dispatch runs under the configured per-action timeout so a stuck
// sink cannot stall the evaluation pass.
func (d *Dispatcher) Dispatch(ctx context.Context, actionType string, rawConfig json.RawMessage,
	subject *subjectModel.Subject, actorID string) (ActionResult, error) {

	timeout := d.ActionTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch actionType {
	case ruleModel.ActionCreateAlert:
		return d.createAlert(ctx, rawConfig, subject, actorID)
	case ruleModel.ActionAddFlag:
		return d.addFlag(ctx, rawConfig, subject, actorID)
	case ruleModel.ActionRemoveFlag:
		return d.removeFlag(ctx, rawConfig, subject)
	case ruleModel.ActionSendNotification:
		return d.sendNotification(ctx, rawConfig, subject)
	case ruleModel.ActionSendWhatsApp:
		return d.sendWhatsApp(ctx, rawConfig, subject)
	case ruleModel.ActionBlockBooking:
		return d.setBookingBlocked(ctx, subject, true)
	case ruleModel.ActionUnblockBooking:
		return d.setBookingBlocked(ctx, subject, false)
	case ruleModel.ActionAssignTask:
		return d.assignTask(ctx, rawConfig, subject, actorID)
	case ruleModel.ActionUpdateField:
		return d.updateField(ctx, rawConfig, subject)
	default:
		err := errors2.NewValidationError(errors2.UNKNOWN_ACTION_TYPE,
			fmt.Sprintf("Unknown action type: %s", actionType))
		return ActionResult{Status: StatusFailed, Detail: err.Error()}, err
	}
}

func (d *Dispatcher) createAlert(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject, actorID string) (ActionResult, error) {

	var cfg CreateAlertConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionCreateAlert, err))
	}
	severity := cfg.Severity
	if severity == "" {
		severity = constants.AlertSeverityWarning
	}
	message := renderTemplate(cfg.Message, subject)
	if err := d.Alerts.CreateAlert(ctx, subject.SubjectID, severity, message, actorID); err != nil {
		return failed(actionError(ruleModel.ActionCreateAlert, err))
	}
	return ActionResult{Status: StatusApplied, Detail: fmt.Sprintf("severity=%s", severity)}, nil
}

func (d *Dispatcher) addFlag(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject, actorID string) (ActionResult, error) {

	var cfg FlagActionConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionAddFlag, err))
	}
	err := d.Flags.Assign(ctx, subject.SubjectID, cfg.FlagID, actorID, cfg.Notes)
	if err != nil {
		// A flag that is already attached is the desired end state.
		if errors2.IsConflict(err) {
			return ActionResult{Status: StatusAlreadyApplied,
				Detail: fmt.Sprintf("flag_id=%s", cfg.FlagID)}, nil
		}
		return failed(actionError(ruleModel.ActionAddFlag, err))
	}
	return ActionResult{Status: StatusApplied, Detail: fmt.Sprintf("flag_id=%s", cfg.FlagID)}, nil
}

func (d *Dispatcher) removeFlag(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject) (ActionResult, error) {

	var cfg FlagActionConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionRemoveFlag, err))
	}
	if err := d.Flags.Remove(ctx, subject.SubjectID, cfg.FlagID); err != nil {
		return failed(actionError(ruleModel.ActionRemoveFlag, err))
	}
	return ActionResult{Status: StatusApplied, Detail: fmt.Sprintf("flag_id=%s", cfg.FlagID)}, nil
}

func (d *Dispatcher) sendNotification(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject) (ActionResult, error) {

	var cfg SendNotificationConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionSendNotification, err))
	}
	message := renderTemplate(cfg.Message, subject)
	if err := d.Notifications.SendNotification(ctx, cfg.RecipientRef, message); err != nil {
		return failed(actionError(ruleModel.ActionSendNotification, err))
	}
	return ActionResult{Status: StatusApplied}, nil
}

func (d *Dispatcher) sendWhatsApp(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject) (ActionResult, error) {

	var cfg SendWhatsAppConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionSendWhatsApp, err))
	}
	to, _ := subject.Field(cfg.PhoneField)
	toStr, _ := to.(string)
	if toStr == "" {
		log.GetLogger().Debug("Skipping WhatsApp dispatch, subject has no phone number",
			log.String("subjectId", subject.SubjectID), log.String("phoneField", cfg.PhoneField))
		return ActionResult{Status: StatusSkipped,
			Detail: fmt.Sprintf("subject field %s is empty", cfg.PhoneField)}, nil
	}
	message := renderTemplate(cfg.Message, subject)
	if err := d.Messaging.SendWhatsApp(ctx, toStr, message); err != nil {
		return failed(actionError(ruleModel.ActionSendWhatsApp, err))
	}
	return ActionResult{Status: StatusApplied}, nil
}

func (d *Dispatcher) setBookingBlocked(ctx context.Context,
	subject *subjectModel.Subject, blocked bool) (ActionResult, error) {

	actionType := ruleModel.ActionBlockBooking
	if !blocked {
		actionType = ruleModel.ActionUnblockBooking
	}
	if subject.BookingBlocked == blocked {
		return ActionResult{Status: StatusAlreadyApplied}, nil
	}
	if err := d.Booking.SetBlocked(ctx, subject.SubjectID, blocked); err != nil {
		return failed(actionError(actionType, err))
	}
	return ActionResult{Status: StatusApplied}, nil
}

func (d *Dispatcher) assignTask(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject, actorID string) (ActionResult, error) {

	var cfg AssignTaskConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionAssignTask, err))
	}
	description := renderTemplate(cfg.Description, subject)
	if err := d.Tasks.CreateTask(ctx, cfg.AssigneeRef, description, subject.SubjectID, actorID); err != nil {
		return failed(actionError(ruleModel.ActionAssignTask, err))
	}
	return ActionResult{Status: StatusApplied, Detail: fmt.Sprintf("assignee=%s", cfg.AssigneeRef)}, nil
}

func (d *Dispatcher) updateField(ctx context.Context, raw json.RawMessage,
	subject *subjectModel.Subject) (ActionResult, error) {

	var cfg UpdateFieldConfig
	if err := decodeConfig(raw, &cfg); err != nil {
		return failed(actionError(ruleModel.ActionUpdateField, err))
	}
	if err := d.Subjects.PatchField(ctx, subject.SubjectID, cfg.Field, cfg.Value); err != nil {
		return failed(actionError(ruleModel.ActionUpdateField, err))
	}
	return ActionResult{Status: StatusApplied, Detail: fmt.Sprintf("field=%s", cfg.Field)}, nil
}

func decodeConfig(raw json.RawMessage, target interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}

func failed(err error) (ActionResult, error) {
	return ActionResult{Status: StatusFailed, Detail: err.Error()}, err
}

func actionError(actionType string, cause error) error {
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.DISPATCH_ACTION.Code,
		Message:     errors2.DISPATCH_ACTION.Message,
		Description: fmt.Sprintf("Failed to dispatch action: %s", actionType),
	}, cause)
}

// renderTemplate substitutes {field} placeholders in message templates with
// the subject's field values. {subject_id} always resolves. Unknown
// placeholders are left as-is so mistakes stay visible.
func renderTemplate(template string, subject *subjectModel.Subject) string {

	if !strings.Contains(template, "{") {
		return template
	}
	result := strings.ReplaceAll(template, "{subject_id}", subject.SubjectID)
	for name, value := range subject.Fields {
		placeholder := "{" + name + "}"
		if strings.Contains(result, placeholder) {
			result = strings.ReplaceAll(result, placeholder, fmt.Sprintf("%v", value))
		}
	}
	return result
}
