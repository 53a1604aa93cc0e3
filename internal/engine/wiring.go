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

package engine

import (
	"time"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/collaborators"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/engine/dispatcher"
	executionProvider "github.com/rodrigorochameire-prog/Defender-sub003/internal/execution/provider"
	flagProvider "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/provider"
	ruleProvider "github.com/rodrigorochameire-prog/Defender-sub003/internal/rules/provider"
	settingsProvider "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/provider"
	subjectModel "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/model"
	subjectStore "github.com/rodrigorochameire-prog/Defender-sub003/internal/subjects/store"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/config"
)

// subjectSource is the default SubjectSource over the subjects table.
type subjectSource struct{}

func (subjectSource) GetSubject(subjectID string) (*subjectModel.Subject, error) {
	return subjectStore.GetSubjectByID(subjectID)
}

// NewDefaultEngine wires the engine with its production collaborators.
func NewDefaultEngine() *Engine {

	engineConfig := config.GetEngineRuntime().Config.Engine
	actionTimeout := time.Duration(engineConfig.ActionTimeoutSeconds) * time.Second

	subjectAdapter := collaborators.NewSubjectAdapter()
	flagRegistry := collaborators.NewFlagRegistryAdapter()

	actionDispatcher := &dispatcher.Dispatcher{
		Alerts:        collaborators.NewPostgresAlertSink(),
		Notifications: collaborators.NewPostgresNotificationSink(),
		Messaging:     collaborators.NewWhatsAppClient(),
		Tasks:         collaborators.NewPostgresTaskSink(),
		Booking:       subjectAdapter,
		Subjects:      subjectAdapter,
		Flags:         flagRegistry,
		ActionTimeout: actionTimeout,
	}

	return &Engine{
		Rules:        ruleProvider.NewRuleProvider().GetRuleService(),
		Subjects:     subjectSource{},
		Settings:     settingsProvider.NewSettingsProvider().GetSettingsService(),
		Flags:        flagProvider.NewFlagProvider().GetFlagService(),
		FlagAssigner: flagRegistry,
		Dispatcher:   actionDispatcher,
		Log:          executionProvider.NewExecutionProvider().GetExecutionService(),
	}
}
