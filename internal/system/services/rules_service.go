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

package services

import (
	"fmt"
	"net/http"

	engineHandler "github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/handler"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/handler"
)

type RulesService struct {
	ruleHandler   *handler.RuleHandler
	engineHandler *engineHandler.EngineHandler
}

func NewRulesService(mux *http.ServeMux, apiBasePath string) *RulesService {

	instance := &RulesService{
		ruleHandler:   handler.NewRuleHandler(),
		engineHandler: engineHandler.NewEngineHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *RulesService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("GET %s/rules", apiBasePath), s.ruleHandler.ListRules)
	mux.HandleFunc(fmt.Sprintf("POST %s/rules", apiBasePath), s.ruleHandler.CreateRule)
	mux.HandleFunc(fmt.Sprintf("GET %s/rules/metadata", apiBasePath), s.ruleHandler.GetMetadata)
	mux.HandleFunc(fmt.Sprintf("GET %s/rules/{ruleID}", apiBasePath), s.ruleHandler.GetRule)
	mux.HandleFunc(fmt.Sprintf("PATCH %s/rules/{ruleID}", apiBasePath), s.ruleHandler.UpdateRule)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/rules/{ruleID}", apiBasePath), s.ruleHandler.DeleteRule)
	mux.HandleFunc(fmt.Sprintf("POST %s/rules/{ruleID}/test", apiBasePath), s.engineHandler.TestRule)
}
