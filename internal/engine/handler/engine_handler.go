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

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	syscontext "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/context"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/utils"
)

type EngineHandler struct{}

func NewEngineHandler() *EngineHandler {
	return &EngineHandler{}
}

// EvaluateSubject handles POST /evaluations/{subjectID}?trigger=
func (h *EngineHandler) EvaluateSubject(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeExecutionRun)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	subjectID := utils.ExtractPathParam(r.URL.Path, "evaluations")
	if subjectID == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"Subject id is required to run an evaluation."))
		return
	}
	triggerType := r.URL.Query().Get("trigger")

	ctx := syscontext.WithActorID(r.Context(), actor)
	ctx = syscontext.WithTraceID(ctx, syscontext.GetOrGenerateTraceID(ctx))

	summary, err := engine.NewDefaultEngine().EvaluateSubject(ctx, subjectID, triggerType)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      subjectID,
		TargetType:    "subject",
		ActionID:      log.ActionEvaluateSubject,
		Data:          fmt.Sprintf("matches=%d", summary.Matches),
	})
	utils.WriteJSON(w, http.StatusOK, summary)
}

// TestRule handles POST /rules/{id}/test
func (h *EngineHandler) TestRule(w http.ResponseWriter, r *http.Request) {

	actor, err := utils.AuthnAndAuthz(r, constants.ScopeRulesView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	rawID := utils.ExtractPathParam(r.URL.Path, "rules")
	ruleID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			fmt.Sprintf("Invalid rule id: %s", rawID)))
		return
	}

	var body struct {
		SubjectID string `json:"subject_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "rule test"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}
	if body.SubjectID == "" {
		utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
			"subject_id is required to test a rule."))
		return
	}

	result, err := engine.NewDefaultEngine().TestRule(r.Context(), ruleID, body.SubjectID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actor,
		InitiatorType: "operator",
		TargetID:      rawID,
		TargetType:    "rule",
		ActionID:      log.ActionTestRule,
		Data:          fmt.Sprintf("subject_id=%s matches=%t", body.SubjectID, result.Matches),
	})
	utils.WriteJSON(w, http.StatusOK, result)
}
