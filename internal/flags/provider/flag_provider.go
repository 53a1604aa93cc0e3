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

// Package provider provides the flag service instance.
package provider

import "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/service"

// FlagProviderInterface defines the interface for the flag provider.
type FlagProviderInterface interface {
	GetFlagService() service.FlagServiceInterface
}

// FlagProvider is the default implementation of the flag provider.
type FlagProvider struct{}

// NewFlagProvider creates a new instance of FlagProvider.
func NewFlagProvider() FlagProviderInterface {
	return &FlagProvider{}
}

// GetFlagService returns the flag service instance.
func (fp *FlagProvider) GetFlagService() service.FlagServiceInterface {
	return service.GetFlagService()
}
