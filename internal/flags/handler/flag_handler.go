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

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	flagModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/utils"
)

type FlagHandler struct{}

func NewFlagHandler() *FlagHandler {
	return &FlagHandler{}
}

// ListFlags handles GET /flags
func (h *FlagHandler) ListFlags(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	service := provider.NewFlagProvider().GetFlagService()
	flags, err := service.ListFlags(activeOnly)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, flags)
}

// GetFlag handles GET /flags/{id}
func (h *FlagHandler) GetFlag(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	flagID := utils.ExtractLastPathSegment(r.URL.Path)
	if flagID == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"Flag id is required to fetch the flag."))
		return
	}

	service := provider.NewFlagProvider().GetFlagService()
	flag, err := service.GetFlag(flagID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, flag)
}

// CreateFlag handles POST /flags
func (h *FlagHandler) CreateFlag(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var flag flagModel.Flag
	if err := json.NewDecoder(r.Body).Decode(&flag); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "flag"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewFlagProvider().GetFlagService()
	created, err := service.CreateFlag(flag)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      created.FlagID,
		TargetType:    "flag",
		ActionID:      log.ActionAddFlag,
	})
	utils.WriteJSON(w, http.StatusCreated, created)
}

// UpdateFlag handles PUT /flags/{id}
func (h *FlagHandler) UpdateFlag(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	flagID := utils.ExtractLastPathSegment(r.URL.Path)
	if flagID == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"Flag id is required to update the flag."))
		return
	}

	var flag flagModel.Flag
	if err := json.NewDecoder(r.Body).Decode(&flag); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "flag"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	flag.FlagID = flagID

	service := provider.NewFlagProvider().GetFlagService()
	if err := service.UpdateFlag(flag); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      flagID,
		TargetType:    "flag",
		ActionID:      log.ActionUpdateFlag,
	})
	w.WriteHeader(http.StatusNoContent)
}

// AssignFlag handles POST /flag-assignments
func (h *FlagHandler) AssignFlag(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var body struct {
		SubjectID string     `json:"subject_id"`
		FlagID    string     `json:"flag_id"`
		Notes     string     `json:"notes,omitempty"`
		ExpiresAt *time.Time `json:"expires_at,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "flag assignment"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewFlagProvider().GetFlagService()
	assignment, err := service.AssignFlag(body.SubjectID, body.FlagID, actor, body.Notes, body.ExpiresAt)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      body.SubjectID,
		TargetType:    "subject",
		ActionID:      log.ActionAssignFlag,
		Data:          fmt.Sprintf("flag_id=%s", body.FlagID),
	})
	utils.WriteJSON(w, http.StatusCreated, assignment)
}

// RemoveFlagAssignment handles DELETE /flag-assignments?subject_id=...&flag_id=...
func (h *FlagHandler) RemoveFlagAssignment(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	subjectID := r.URL.Query().Get("subject_id")
	flagID := r.URL.Query().Get("flag_id")
	service := provider.NewFlagProvider().GetFlagService()
	if _, err := service.RemoveFlag(subjectID, flagID); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      subjectID,
		TargetType:    "subject",
		ActionID:      log.ActionRemoveFlag,
		Data:          fmt.Sprintf("flag_id=%s", flagID),
	})
	w.WriteHeader(http.StatusNoContent)
}

// GetSubjectFlags handles GET /subjects/{id}/flags
func (h *FlagHandler) GetSubjectFlags(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeFlagsView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	subjectID := utils.ExtractPathParam(r.URL.Path, "subjects")
	if subjectID == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"Subject id is required to fetch subject flags."))
		return
	}

	service := provider.NewFlagProvider().GetFlagService()
	subjectFlags, err := service.GetSubjectFlags(subjectID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, subjectFlags)
}
