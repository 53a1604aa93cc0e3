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
	"fmt"

	subjectStore "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/store"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

// SubjectAdapter exposes subject mutations to the dispatcher: the booking
// gate and the single-field writer.
type SubjectAdapter struct{}

// NewSubjectAdapter creates a new subject adapter.
func NewSubjectAdapter() *SubjectAdapter {
	return &SubjectAdapter{}
}

// SetBlocked toggles the subject's booking gate.
func (a *SubjectAdapter) SetBlocked(_ context.Context, subjectID string, blocked bool) error {

	rows, err := subjectStore.SetBookingBlocked(subjectID, blocked)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors2.NewNotFoundError(errors2.SUBJECT_NOT_FOUND,
			fmt.Sprintf("No subject found for id: %s", subjectID))
	}
	return nil
}

// PatchField writes one field of the subject's field document.
func (a *SubjectAdapter) PatchField(_ context.Context, subjectID, field string, value interface{}) error {

	rows, err := subjectStore.PatchSubjectField(subjectID, field, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors2.NewNotFoundError(errors2.SUBJECT_NOT_FOUND,
			fmt.Sprintf("No subject found for id: %s", subjectID))
	}
	return nil
}
