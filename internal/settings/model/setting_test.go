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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
)

func TestTypedAccessorsFailClosed(t *testing.T) {

	intSetting := Setting{Key: "batch", Value: "50", DataType: constants.IntegerDataType}
	v, ok := intSetting.IntValue()
	assert.True(t, ok)
	assert.Equal(t, 50, v)

	// A string setting never decodes as an integer, even when numeric.
	strSetting := Setting{Key: "label", Value: "50", DataType: constants.StringDataType}
	_, ok = strSetting.IntValue()
	assert.False(t, ok)

	corrupt := Setting{Key: "batch", Value: "fifty", DataType: constants.IntegerDataType}
	_, ok = corrupt.IntValue()
	assert.False(t, ok)

	boolSetting := Setting{Key: "enabled", Value: "true", DataType: constants.BooleanDataType}
	b, ok := boolSetting.BoolValue()
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = intSetting.BoolValue()
	assert.False(t, ok)
}

func TestDecimalValueAcceptsIntegers(t *testing.T) {

	setting := Setting{Key: "threshold", Value: "3", DataType: constants.IntegerDataType}
	v, ok := setting.DecimalValue()
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	setting = Setting{Key: "rate", Value: "0.25", DataType: constants.DecimalDataType}
	v, ok = setting.DecimalValue()
	assert.True(t, ok)
	assert.Equal(t, 0.25, v)
}

func TestValidValuePerDataType(t *testing.T) {

	cases := []struct {
		dataType string
		value    string
		valid    bool
	}{
		{constants.StringDataType, "anything", true},
		{constants.IntegerDataType, "42", true},
		{constants.IntegerDataType, "4.2", false},
		{constants.DecimalDataType, "4.2", true},
		{constants.BooleanDataType, "false", true},
		{constants.BooleanDataType, "si", false},
		{constants.JSONDataType, `{"a":1}`, true},
		{constants.JSONDataType, `{"a":`, false},
		{"timestamp", "2026-01-01", false},
	}

	for _, tc := range cases {
		s := Setting{Key: "k", Value: tc.value, DataType: tc.dataType}
		assert.Equal(t, tc.valid, s.ValidValue(), "%s %q", tc.dataType, tc.value)
	}
}
