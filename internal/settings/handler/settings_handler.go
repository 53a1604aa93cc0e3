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

	settingsModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/utils"
)

type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// ListSettings handles GET /settings
func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeSettingsView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	category := r.URL.Query().Get("category")
	service := provider.NewSettingsProvider().GetSettingsService()
	settings, err := service.ListSettings(category)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

// GetSetting handles GET /settings/{key}
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeSettingsView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	key := utils.ExtractLastPathSegment(r.URL.Path)
	if key == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"Setting key is required to fetch the setting."))
		return
	}

	service := provider.NewSettingsProvider().GetSettingsService()
	setting, err := service.GetSetting(key)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, setting)
}

// UpdateSetting handles PUT /settings/{key}
func (h *SettingsHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeSettingsWrite)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	key := utils.ExtractLastPathSegment(r.URL.Path)
	if key == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"Setting key is required to update the setting."))
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "setting"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewSettingsProvider().GetSettingsService()
	if err := service.UpdateSetting(key, body.Value); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      key,
		TargetType:    "setting",
		ActionID:      log.ActionUpdateSetting,
		Data:          fmt.Sprintf("value=%s", body.Value),
	})
	w.WriteHeader(http.StatusNoContent)
}

// UpsertSetting handles POST /settings
func (h *SettingsHandler) UpsertSetting(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeSettingsWrite)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var setting settingsModel.Setting
	if err := json.NewDecoder(r.Body).Decode(&setting); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "setting"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewSettingsProvider().GetSettingsService()
	created, err := service.UpsertSetting(setting)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      created.Key,
		TargetType:    "setting",
		ActionID:      log.ActionUpsertSetting,
	})
	utils.WriteJSON(w, http.StatusOK, created)
}
