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

import "github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/evaluator"

// MetadataOption is one selectable value in the authoring vocabulary.
type MetadataOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Metadata is the static authoring catalog served to rule builders.
type Metadata struct {
	TriggerTypes []MetadataOption `json:"trigger_types"`
	Operators    []MetadataOption `json:"operators"`
	ActionTypes  []MetadataOption `json:"action_types"`
}

// GetMetadata returns the closed trigger, operator and action vocabularies.
func GetMetadata() Metadata {
	return Metadata{
		TriggerTypes: []MetadataOption{
			{Value: TriggerFieldChanged, Label: "Field changed"},
			{Value: TriggerLogCreated, Label: "Log entry created"},
			{Value: TriggerThresholdReached, Label: "Threshold reached"},
			{Value: TriggerTimeBased, Label: "Time based"},
			{Value: TriggerManual, Label: "Manual"},
		},
		Operators: []MetadataOption{
			{Value: string(evaluator.OpEquals), Label: "Equals"},
			{Value: string(evaluator.OpNotEquals), Label: "Not equals"},
			{Value: string(evaluator.OpGreaterThan), Label: "Greater than"},
			{Value: string(evaluator.OpLessThan), Label: "Less than"},
			{Value: string(evaluator.OpGreaterOrEqual), Label: "Greater or equal"},
			{Value: string(evaluator.OpLessOrEqual), Label: "Less or equal"},
			{Value: string(evaluator.OpContains), Label: "Contains"},
			{Value: string(evaluator.OpIsEmpty), Label: "Is empty"},
			{Value: string(evaluator.OpIsNotEmpty), Label: "Is not empty"},
		},
		ActionTypes: []MetadataOption{
			{Value: ActionCreateAlert, Label: "Create alert"},
			{Value: ActionAddFlag, Label: "Add flag"},
			{Value: ActionRemoveFlag, Label: "Remove flag"},
			{Value: ActionSendNotification, Label: "Send notification"},
			{Value: ActionSendWhatsApp, Label: "Send WhatsApp message"},
			{Value: ActionBlockBooking, Label: "Block booking"},
			{Value: ActionUnblockBooking, Label: "Unblock booking"},
			{Value: ActionAssignTask, Label: "Assign task"},
			{Value: ActionUpdateField, Label: "Update field"},
		},
	}
}
