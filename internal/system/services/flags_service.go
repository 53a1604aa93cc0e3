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

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/handler"
)

type FlagsService struct {
	flagHandler *handler.FlagHandler
}

func NewFlagsService(mux *http.ServeMux, apiBasePath string) *FlagsService {

	instance := &FlagsService{
		flagHandler: handler.NewFlagHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *FlagsService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("GET %s/flags", apiBasePath), s.flagHandler.ListFlags)
	mux.HandleFunc(fmt.Sprintf("POST %s/flags", apiBasePath), s.flagHandler.CreateFlag)
	mux.HandleFunc(fmt.Sprintf("GET %s/flags/", apiBasePath), s.flagHandler.GetFlag)
	mux.HandleFunc(fmt.Sprintf("PUT %s/flags/", apiBasePath), s.flagHandler.UpdateFlag)
	mux.HandleFunc(fmt.Sprintf("POST %s/flag-assignments", apiBasePath), s.flagHandler.AssignFlag)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/flag-assignments", apiBasePath), s.flagHandler.RemoveFlagAssignment)
	mux.HandleFunc(fmt.Sprintf("GET %s/subjects/{subjectID}/flags", apiBasePath), s.flagHandler.GetSubjectFlags)
}
