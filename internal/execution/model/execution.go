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

// Package model defines the append-only execution log record.
package model

import "time"

// ExecutionLogEntry records one rule evaluation against one subject. Entries
// sharing a TraceID belong to the same evaluation pass; Sequence orders them
// within it.
type ExecutionLogEntry struct {
	TraceID      string    `bson:"trace_id" json:"trace_id"`
	Sequence     int       `bson:"sequence" json:"sequence"`
	RuleID       int64     `bson:"rule_id" json:"rule_id"`
	RuleName     string    `bson:"rule_name" json:"rule_name"`
	SubjectID    string    `bson:"subject_id" json:"subject_id"`
	TriggerType  string    `bson:"trigger_type" json:"trigger_type"`
	TriggerField string    `bson:"trigger_field,omitempty" json:"trigger_field,omitempty"`
	FieldValue   string    `bson:"field_value,omitempty" json:"field_value,omitempty"`
	Matched      bool      `bson:"matched" json:"matched"`
	ActionType   string    `bson:"action_type" json:"action_type"`
	ActionStatus string    `bson:"action_status,omitempty" json:"action_status,omitempty"`
	ActionDetail string    `bson:"action_detail,omitempty" json:"action_detail,omitempty"`
	Success      bool      `bson:"success" json:"success"`
	ErrorMessage string    `bson:"error_message,omitempty" json:"error_message,omitempty"`
	ExecutedAt   time.Time `bson:"executed_at" json:"executed_at"`
}

// HistoryFilter narrows an execution history query.
type HistoryFilter struct {
	RuleID    *int64
	SubjectID string
	Limit     int64
}
