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

package collaborators

import (
	"context"

	flagProvider "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/provider"
)

// FlagRegistryAdapter bridges the dispatcher to the flag service. Conflict
// errors from duplicate assignments pass through unchanged so the dispatcher
// can treat them as already-applied outcomes.
type FlagRegistryAdapter struct{}

// NewFlagRegistryAdapter creates a new flag registry adapter.
func NewFlagRegistryAdapter() *FlagRegistryAdapter {
	return &FlagRegistryAdapter{}
}

// Assign attaches a flag to a subject without an expiry.
func (a *FlagRegistryAdapter) Assign(_ context.Context, subjectID, flagID, assignedBy, notes string) error {

	service := flagProvider.NewFlagProvider().GetFlagService()
	_, err := service.AssignFlag(subjectID, flagID, assignedBy, notes, nil)
	return err
}

// Remove detaches a flag from a subject. Removing an absent assignment is a
// no-op.
func (a *FlagRegistryAdapter) Remove(_ context.Context, subjectID, flagID string) error {

	service := flagProvider.NewFlagProvider().GetFlagService()
	_, err := service.RemoveFlag(subjectID, flagID)
	return err
}
