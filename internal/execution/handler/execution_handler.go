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
	"fmt"
	"net/http"
	"strconv"

	executionModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/utils"
)

type ExecutionHandler struct{}

func NewExecutionHandler() *ExecutionHandler {
	return &ExecutionHandler{}
}

// GetHistory handles GET /executions?rule_id=&subject_id=&limit=
func (h *ExecutionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {

	_, err := utils.AuthnAndAuthz(r, constants.ScopeExecutionView)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	filter := executionModel.HistoryFilter{
		SubjectID: r.URL.Query().Get("subject_id"),
	}
	if raw := r.URL.Query().Get("rule_id"); raw != "" {
		ruleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
				fmt.Sprintf("Invalid rule_id: %s", raw)))
			return
		}
		filter.RuleID = &ruleID
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			utils.HandleError(w, errors.NewValidationError(errors.BAD_REQUEST,
				fmt.Sprintf("Invalid limit: %s", raw)))
			return
		}
		filter.Limit = limit
	}

	service := provider.NewExecutionProvider().GetExecutionService()
	entries, err := service.GetHistory(r.Context(), filter)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, entries)
}
