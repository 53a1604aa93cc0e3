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

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/service"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

func TestSettings_SeedDefaultsIsIdempotent(t *testing.T) {
	svc := service.GetSettingsService()

	require.NoError(t, svc.SeedDefaults())

	// An operator edit must survive a re-seed.
	require.NoError(t, svc.UpdateSetting(constants.SettingCreditsLow, "7"))
	require.NoError(t, svc.SeedDefaults())

	setting, err := svc.GetSetting(constants.SettingCreditsLow)
	require.NoError(t, err)
	assert.Equal(t, "7", setting.Value)

	v, ok := setting.IntValue()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

func TestSettings_UpdateRejectsWrongType(t *testing.T) {
	svc := service.GetSettingsService()
	require.NoError(t, svc.SeedDefaults())

	err := svc.UpdateSetting(constants.SettingCreditsCritical, "not-a-number")
	require.Error(t, err)
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)

	// The stored value is untouched.
	setting, err := svc.GetSetting(constants.SettingCreditsCritical)
	require.NoError(t, err)
	_, ok := setting.IntValue()
	assert.True(t, ok)
}

func TestSettings_UpdateUnknownKeyIsNotFound(t *testing.T) {
	svc := service.GetSettingsService()

	err := svc.UpdateSetting("no_such_setting", "1")
	assert.True(t, errors2.IsNotFound(err))

	_, err = svc.GetSetting("no_such_setting")
	assert.True(t, errors2.IsNotFound(err))
}

func TestSettings_UpsertAndListByCategory(t *testing.T) {
	svc := service.GetSettingsService()

	created, err := svc.UpsertSetting(model.Setting{
		Key:      "reminder_hours",
		Value:    "24",
		DataType: constants.IntegerDataType,
		Category: "notifications",
		Label:    "Hours before booking to remind",
	})
	require.NoError(t, err)
	assert.Equal(t, "reminder_hours", created.Key)

	settings, err := svc.ListSettings("notifications")
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "24", settings[0].Value)

	// Upsert with the same key replaces the definition.
	_, err = svc.UpsertSetting(model.Setting{
		Key:      "reminder_hours",
		Value:    "48",
		DataType: constants.IntegerDataType,
		Category: "notifications",
		Label:    "Hours before booking to remind",
	})
	require.NoError(t, err)

	setting, err := svc.GetSetting("reminder_hours")
	require.NoError(t, err)
	assert.Equal(t, "48", setting.Value)
}

func TestSettings_UpsertRejectsBadDefinitions(t *testing.T) {
	svc := service.GetSettingsService()

	_, err := svc.UpsertSetting(model.Setting{Value: "1", DataType: constants.IntegerDataType})
	assert.Error(t, err)

	_, err = svc.UpsertSetting(model.Setting{Key: "x", Value: "1", DataType: "timestamp"})
	assert.Error(t, err)

	_, err = svc.UpsertSetting(model.Setting{Key: "x", Value: "oops", DataType: constants.BooleanDataType})
	assert.Error(t, err)
}
