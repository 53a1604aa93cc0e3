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

package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/evaluator"
	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/store"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

// FlagServiceInterface defines the service interface.
type FlagServiceInterface interface {
	ListFlags(activeOnly bool) ([]model.Flag, error)
	GetFlag(flagID string) (*model.Flag, error)
	CreateFlag(flag model.Flag) (*model.Flag, error)
	UpdateFlag(flag model.Flag) error
	AssignFlag(subjectID, flagID, assignedBy, notes string, expiresAt *time.Time) (*model.FlagAssignment, error)
	RemoveFlag(subjectID, flagID string) (int64, error)
	GetSubjectFlags(subjectID string) ([]model.SubjectFlag, error)
}

// FlagService is the default implementation.
type FlagService struct{}

// GetFlagService returns a new instance.
func GetFlagService() FlagServiceInterface {
	return &FlagService{}
}

// ListFlags retrieves flag definitions.
func (fs *FlagService) ListFlags(activeOnly bool) ([]model.Flag, error) {

	flags, err := store.GetFlags(activeOnly)
	if err != nil {
		return nil, err
	}
	if len(flags) == 0 {
		return []model.Flag{}, nil
	}
	return flags, nil
}

// GetFlag retrieves one flag definition.
func (fs *FlagService) GetFlag(flagID string) (*model.Flag, error) {

	flag, err := store.GetFlagByID(flagID)
	if err != nil {
		return nil, err
	}
	if flag == nil {
		return nil, errors2.NewNotFoundError(errors2.FLAG_NOT_FOUND,
			fmt.Sprintf("No flag found for id: %s", flagID))
	}
	return flag, nil
}

// CreateFlag validates and persists a new flag definition.
func (fs *FlagService) CreateFlag(flag model.Flag) (*model.Flag, error) {

	if err := fs.validateFlag(flag); err != nil {
		return nil, err
	}

	if flag.FlagID == "" {
		flag.FlagID = uuid.New().String()
	}
	flag.IsActive = true

	if err := store.AddFlag(flag); err != nil {
		return nil, err
	}
	return &flag, nil
}

// UpdateFlag validates and replaces a flag definition.
func (fs *FlagService) UpdateFlag(flag model.Flag) error {

	if err := fs.validateFlag(flag); err != nil {
		return err
	}

	rows, err := store.UpdateFlag(flag)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors2.NewNotFoundError(errors2.FLAG_NOT_FOUND,
			fmt.Sprintf("No flag found for id: %s", flag.FlagID))
	}
	return nil
}

// AssignFlag attaches a flag to a subject. Conflicts with an existing
// unexpired assignment surface as a ConflictError, not a silent no-op.
func (fs *FlagService) AssignFlag(subjectID, flagID, assignedBy, notes string,
	expiresAt *time.Time) (*model.FlagAssignment, error) {

	if subjectID == "" || flagID == "" {
		return nil, errors2.NewValidationError(errors2.FLAG_VALIDATION,
			"subject_id and flag_id are required.")
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, errors2.NewValidationError(errors2.FLAG_VALIDATION,
			"expires_at must be in the future.")
	}

	flag, err := store.GetFlagByID(flagID)
	if err != nil {
		return nil, err
	}
	if flag == nil {
		return nil, errors2.NewNotFoundError(errors2.FLAG_NOT_FOUND,
			fmt.Sprintf("No flag found for id: %s", flagID))
	}

	assignment := model.FlagAssignment{
		AssignmentID: uuid.New().String(),
		SubjectID:    subjectID,
		FlagID:       flagID,
		AssignedBy:   assignedBy,
		Notes:        notes,
		ExpiresAt:    expiresAt,
	}
	if err := store.AddFlagAssignment(assignment); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// RemoveFlag detaches a flag from a subject. Idempotent; reports rows affected.
func (fs *FlagService) RemoveFlag(subjectID, flagID string) (int64, error) {

	if subjectID == "" || flagID == "" {
		return 0, errors2.NewValidationError(errors2.FLAG_VALIDATION,
			"subject_id and flag_id are required.")
	}
	return store.RemoveFlagAssignment(subjectID, flagID)
}

// GetSubjectFlags lists the active, unexpired flags of a subject.
func (fs *FlagService) GetSubjectFlags(subjectID string) ([]model.SubjectFlag, error) {

	subjectFlags, err := store.GetSubjectFlags(subjectID)
	if err != nil {
		return nil, err
	}
	if len(subjectFlags) == 0 {
		return []model.SubjectFlag{}, nil
	}
	return subjectFlags, nil
}

func (fs *FlagService) validateFlag(flag model.Flag) error {

	if flag.Name == "" {
		return errors2.NewValidationError(errors2.FLAG_VALIDATION, "Flag name is required.")
	}
	if !constants.AllowedFlagColors[flag.Color] {
		return errors2.NewValidationError(errors2.FLAG_VALIDATION,
			fmt.Sprintf("Color %q is outside the allowed palette.", flag.Color))
	}
	if flag.AutoAssignField != "" || flag.AutoAssignOperator != "" {
		if flag.AutoAssignField == "" || flag.AutoAssignOperator == "" {
			return errors2.NewValidationError(errors2.FLAG_VALIDATION,
				"Auto-assign conditions need both a field and an operator.")
		}
		if !evaluator.IsKnownOperator(flag.AutoAssignOperator) {
			return errors2.NewValidationError(errors2.UNKNOWN_OPERATOR,
				fmt.Sprintf("Unknown operator: %s", flag.AutoAssignOperator))
		}
	}
	return nil
}
