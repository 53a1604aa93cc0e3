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

package provider

import (
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/service"
)

// SettingsProviderInterface defines the interface for the settings provider.
type SettingsProviderInterface interface {
	GetSettingsService() service.SettingsServiceInterface
}

// SettingsProvider is the default implementation of the SettingsProviderInterface.
type SettingsProvider struct{}

// NewSettingsProvider creates a new instance of SettingsProvider.
func NewSettingsProvider() SettingsProviderInterface {
	return &SettingsProvider{}
}

// GetSettingsService returns the settings service instance.
func (sp *SettingsProvider) GetSettingsService() service.SettingsServiceInterface {
	return service.GetSettingsService()
}
