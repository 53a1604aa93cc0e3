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

package store

import (
	"fmt"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/scripts"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// GetSettingByKey fetches one setting. Returns nil when the key was never seeded.
func GetSettingByKey(key string) (*model.Setting, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching setting: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SETTING.Code,
			Message:     errors2.GET_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetSettingByKey["postgres"]
	results, err := dbClient.ExecuteQuery(query, key)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching setting: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SETTING.Code,
			Message:     errors2.GET_SETTING.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	setting := settingFromRow(results[0])
	return &setting, nil
}

// GetSettings fetches all settings, optionally restricted to one category.
func GetSettings(category string) ([]model.Setting, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching settings"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SETTING.Code,
			Message:     errors2.GET_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	var results []map[string]interface{}
	if category == "" {
		results, err = dbClient.ExecuteQuery(scripts.GetAllSettings["postgres"])
	} else {
		results, err = dbClient.ExecuteQuery(scripts.GetSettingsByCategory["postgres"], category)
	}
	if err != nil {
		errorMsg := "Failed to execute query for fetching settings"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_SETTING.Code,
			Message:     errors2.GET_SETTING.Message,
			Description: errorMsg,
		}, err)
	}

	settings := make([]model.Setting, 0, len(results))
	for _, row := range results {
		settings = append(settings, settingFromRow(row))
	}
	return settings, nil
}

// UpdateSettingValue replaces the value of an existing setting. Reports the
// number of rows affected so the service can surface NotFound for unseeded keys.
func UpdateSettingValue(key, value string) (int64, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for updating setting: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTING.Code,
			Message:     errors2.UPDATE_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	rows, err := dbClient.Execute(scripts.UpdateSettingValue["postgres"], key, value)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to update setting: %s", key)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTING.Code,
			Message:     errors2.UPDATE_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	return rows, nil
}

// UpsertSetting creates or wholly replaces a setting.
func UpsertSetting(setting model.Setting) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for upserting setting: %s", setting.Key)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTING.Code,
			Message:     errors2.UPDATE_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	_, err = dbClient.Execute(scripts.UpsertSetting["postgres"],
		setting.Key, setting.Value, setting.DataType, setting.Category, setting.Label)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to upsert setting: %s", setting.Key)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTING.Code,
			Message:     errors2.UPDATE_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// SeedSettings inserts the given settings if absent, never overwriting
// operator-tuned values. Safe to run on every start.
func SeedSettings(settings []model.Setting) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for seeding settings"
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_SETTING.Code,
			Message:     errors2.UPDATE_SETTING.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	for _, setting := range settings {
		_, err = dbClient.Execute(scripts.SeedSetting["postgres"],
			setting.Key, setting.Value, setting.DataType, setting.Category, setting.Label)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to seed setting: %s", setting.Key)
			logger.Debug(errorMsg, log.Error(err))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.UPDATE_SETTING.Code,
				Message:     errors2.UPDATE_SETTING.Message,
				Description: errorMsg,
			}, err)
		}
	}
	return nil
}

func settingFromRow(row map[string]interface{}) model.Setting {
	setting := model.Setting{}
	if v, ok := row["setting_key"].(string); ok {
		setting.Key = v
	}
	if v, ok := row["setting_value"].(string); ok {
		setting.Value = v
	}
	if v, ok := row["data_type"].(string); ok {
		setting.DataType = v
	}
	if v, ok := row["category"].(string); ok {
		setting.Category = v
	}
	if v, ok := row["label"].(string); ok {
		setting.Label = v
	}
	return setting
}
