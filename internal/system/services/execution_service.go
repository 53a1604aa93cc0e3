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
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/handler"
)

type ExecutionService struct {
	executionHandler *handler.ExecutionHandler
	engineHandler    *engineHandler.EngineHandler
}

func NewExecutionService(mux *http.ServeMux, apiBasePath string) *ExecutionService {

	instance := &ExecutionService{
		executionHandler: handler.NewExecutionHandler(),
		engineHandler:    engineHandler.NewEngineHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *ExecutionService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/evaluations/{subjectID}", apiBasePath), s.engineHandler.EvaluateSubject)
	mux.HandleFunc(fmt.Sprintf("GET %s/executions", apiBasePath), s.executionHandler.GetHistory)
}
