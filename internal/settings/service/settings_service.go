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

package service

import (
	"fmt"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/store"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

// SettingsServiceInterface defines the service interface.
type SettingsServiceInterface interface {
	ListSettings(category string) ([]model.Setting, error)
	GetSetting(key string) (*model.Setting, error)
	UpdateSetting(key, value string) error
	UpsertSetting(setting model.Setting) (*model.Setting, error)
	SeedDefaults() error
}

// SettingsService is the default implementation.
type SettingsService struct{}

// GetSettingsService returns a new instance.
func GetSettingsService() SettingsServiceInterface {
	return &SettingsService{}
}

// defaultSettings are seeded once at first run; operator edits survive restarts.
var defaultSettings = []model.Setting{
	{Key: constants.SettingCreditsCritical, Value: "1", DataType: constants.IntegerDataType,
		Category: "credits", Label: "Credits critical threshold"},
	{Key: constants.SettingCreditsLow, Value: "3", DataType: constants.IntegerDataType,
		Category: "credits", Label: "Credits low threshold"},
	{Key: constants.SettingAutoFlagEnabled, Value: "true", DataType: constants.BooleanDataType,
		Category: "engine", Label: "Evaluate flag auto-assign conditions"},
	{Key: constants.SettingEvaluationBatchSize, Value: "50", DataType: constants.IntegerDataType,
		Category: "engine", Label: "Periodic scan batch size"},
	{Key: constants.SettingDefaultAlertLevel, Value: constants.AlertSeverityWarning,
		DataType: constants.StringDataType, Category: "alerts", Label: "Default alert severity"},
}

// ListSettings retrieves all settings, optionally filtered to a category.
func (ss *SettingsService) ListSettings(category string) ([]model.Setting, error) {

	settings, err := store.GetSettings(category)
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return []model.Setting{}, nil
	}
	return settings, nil
}

// GetSetting retrieves a setting by key.
func (ss *SettingsService) GetSetting(key string) (*model.Setting, error) {

	setting, err := store.GetSettingByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, errors2.NewNotFoundError(errors2.SETTING_NOT_FOUND,
			fmt.Sprintf("No setting seeded for key: %s", key))
	}
	return setting, nil
}

// UpdateSetting replaces the value of a previously seeded setting. Settings
// are never created through this path.
func (ss *SettingsService) UpdateSetting(key, value string) error {

	existing, err := store.GetSettingByKey(key)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors2.NewNotFoundError(errors2.SETTING_NOT_FOUND,
			fmt.Sprintf("No setting seeded for key: %s", key))
	}

	candidate := model.Setting{Key: key, Value: value, DataType: existing.DataType}
	if !candidate.ValidValue() {
		return errors2.NewValidationError(errors2.SETTING_VALIDATION,
			fmt.Sprintf("Value %q does not decode as %s for setting %s", value, existing.DataType, key))
	}

	rows, err := store.UpdateSettingValue(key, value)
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors2.NewNotFoundError(errors2.SETTING_NOT_FOUND,
			fmt.Sprintf("No setting seeded for key: %s", key))
	}
	return nil
}

// UpsertSetting creates or wholly replaces a setting definition.
func (ss *SettingsService) UpsertSetting(setting model.Setting) (*model.Setting, error) {

	if setting.Key == "" {
		return nil, errors2.NewValidationError(errors2.SETTING_VALIDATION, "Setting key is required.")
	}
	if !constants.AllowedSettingDataTypes[setting.DataType] {
		return nil, errors2.NewValidationError(errors2.SETTING_VALIDATION,
			fmt.Sprintf("Unknown data type: %s", setting.DataType))
	}
	if !setting.ValidValue() {
		return nil, errors2.NewValidationError(errors2.SETTING_VALIDATION,
			fmt.Sprintf("Value %q does not decode as %s", setting.Value, setting.DataType))
	}

	if err := store.UpsertSetting(setting); err != nil {
		return nil, err
	}
	return &setting, nil
}

// SeedDefaults inserts the built-in settings if absent. Idempotent.
func (ss *SettingsService) SeedDefaults() error {
	return store.SeedSettings(defaultSettings)
}
