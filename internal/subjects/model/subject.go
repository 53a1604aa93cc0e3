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

// Package model defines the subject snapshot evaluated by the engine.
package model

// Subject is the entity a rule pass evaluates: an id, a free-form field
// document and the booking gate state.
type Subject struct {
	SubjectID      string                 `json:"subject_id"`
	EntityType     string                 `json:"entity_type"`
	Fields         map[string]interface{} `json:"fields"`
	BookingBlocked bool                   `json:"booking_blocked"`
}

// Field returns the named field value and whether it is present.
func (s *Subject) Field(name string) (interface{}, bool) {
	if s.Fields == nil {
		return nil, false
	}
	value, ok := s.Fields[name]
	return value, ok
}
