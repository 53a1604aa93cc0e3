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

package model

import "time"

// Flag is an operator-defined label attachable to a subject. An optional
// auto-assign condition makes the orchestrator attach the flag without a
// dedicated rule.
type Flag struct {
	FlagID      string `json:"flag_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Description string `json:"description"`

	// Auto-assign condition; empty field means none configured.
	AutoAssignField    string `json:"auto_assign_field,omitempty"`
	AutoAssignOperator string `json:"auto_assign_operator,omitempty"`
	AutoAssignValue    string `json:"auto_assign_value,omitempty"`

	// Visibility switches for the surrounding application surfaces.
	ShowOnProfile  bool `json:"show_on_profile"`
	ShowOnCalendar bool `json:"show_on_calendar"`
	ShowOnBooking  bool `json:"show_on_booking"`
	ShowOnReports  bool `json:"show_on_reports"`

	IsActive bool `json:"is_active"`
}

// HasAutoAssign reports whether the flag carries an auto-assign condition.
func (f *Flag) HasAutoAssign() bool {
	return f.AutoAssignField != "" && f.AutoAssignOperator != ""
}

// FlagAssignment is the join between a flag and a subject. At most one
// unexpired assignment exists per (subject, flag) pair.
type FlagAssignment struct {
	AssignmentID string     `json:"assignment_id"`
	SubjectID    string     `json:"subject_id"`
	FlagID       string     `json:"flag_id"`
	AssignedBy   string     `json:"assigned_by"`
	Notes        string     `json:"notes,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	AssignedAt   time.Time  `json:"assigned_at"`
}

// SubjectFlag is a flag definition joined with its assignment metadata,
// as returned by GetSubjectFlags.
type SubjectFlag struct {
	FlagID      string     `json:"flag_id"`
	Name        string     `json:"name"`
	Color       string     `json:"color"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	AssignedBy  string     `json:"assigned_by"`
	Notes       string     `json:"notes,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	AssignedAt  time.Time  `json:"assigned_at"`
}
