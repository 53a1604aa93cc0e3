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
	"strconv"

	ruleModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/utils"
)

type RuleHandler struct{}

func NewRuleHandler() *RuleHandler {
	return &RuleHandler{}
}

// ListRules handles GET /rules
func (h *RuleHandler) ListRules(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeRulesView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	service := provider.NewRuleProvider().GetRuleService()
	rules, err := service.ListRules(activeOnly)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rules)
}

// GetRule handles GET /rules/{id}
func (h *RuleHandler) GetRule(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeRulesView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleID, err := parseRuleID(r.URL.Path)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewRuleProvider().GetRuleService()
	rule, err := service.GetRule(ruleID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, rule)
}

// GetMetadata handles GET /rules/metadata
func (h *RuleHandler) GetMetadata(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeRulesView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewRuleProvider().GetRuleService()
	utils.WriteJSON(w, http.StatusOK, service.GetMetadata())
}

// CreateRule handles POST /rules
func (h *RuleHandler) CreateRule(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeRulesManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var rule ruleModel.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "rule"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewRuleProvider().GetRuleService()
	created, err := service.CreateRule(rule)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      strconv.FormatInt(created.RuleID, 10),
		TargetType:    "rule",
		ActionID:      log.ActionAddRule,
		Data:          fmt.Sprintf("trigger=%s action=%s", created.TriggerType, created.ActionType),
	})
	utils.WriteJSON(w, http.StatusCreated, created)
}

// UpdateRule handles PATCH /rules/{id}
func (h *RuleHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeRulesManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleID, err := parseRuleID(r.URL.Path)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var patch ruleModel.RulePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "rule"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewRuleProvider().GetRuleService()
	if err := service.UpdateRule(ruleID, patch); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      strconv.FormatInt(ruleID, 10),
		TargetType:    "rule",
		ActionID:      log.ActionUpdateRule,
	})
	w.WriteHeader(http.StatusNoContent)
}

// DeleteRule handles DELETE /rules/{id}
func (h *RuleHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeRulesManage)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	ruleID, err := parseRuleID(r.URL.Path)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	service := provider.NewRuleProvider().GetRuleService()
	if err := service.DeleteRule(ruleID); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      strconv.FormatInt(ruleID, 10),
		TargetType:    "rule",
		ActionID:      log.ActionDeleteRule,
	})
	w.WriteHeader(http.StatusNoContent)
}

func parseRuleID(path string) (int64, error) {

	raw := utils.ExtractPathParam(path, "rules")
	if raw == "" {
		return 0, errors.NewValidationError(errors.BAD_REQUEST,
			"Rule id is required.")
	}
	ruleID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError(errors.BAD_REQUEST,
			fmt.Sprintf("Invalid rule id: %s", raw))
	}
	return ruleID, nil
}
