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
	"encoding/json"
	"strconv"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
)

// Setting is a named, typed scalar configuration value. The raw value is
// stored string-encoded; typed accessors decode it and fail closed.
type Setting struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	DataType string `json:"data_type"`
	Category string `json:"category"`
	Label    string `json:"label"`
}

// IntValue decodes the setting as an integer. Decode failure reports
// (0, false) instead of an error so condition evaluation can treat a
// malformed setting as a non-match.
func (s *Setting) IntValue() (int, bool) {
	if s.DataType != constants.IntegerDataType {
		return 0, false
	}
	v, err := strconv.Atoi(s.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DecimalValue decodes the setting as a float64, failing closed.
func (s *Setting) DecimalValue() (float64, bool) {
	if s.DataType != constants.IntegerDataType && s.DataType != constants.DecimalDataType {
		return 0, false
	}
	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BoolValue decodes the setting as a boolean, failing closed.
func (s *Setting) BoolValue() (bool, bool) {
	if s.DataType != constants.BooleanDataType {
		return false, false
	}
	v, err := strconv.ParseBool(s.Value)
	if err != nil {
		return false, false
	}
	return v, true
}

// ValidValue reports whether the raw value decodes as the declared data type.
func (s *Setting) ValidValue() bool {
	switch s.DataType {
	case constants.StringDataType:
		return true
	case constants.IntegerDataType:
		_, err := strconv.Atoi(s.Value)
		return err == nil
	case constants.DecimalDataType:
		_, err := strconv.ParseFloat(s.Value, 64)
		return err == nil
	case constants.BooleanDataType:
		_, err := strconv.ParseBool(s.Value)
		return err == nil
	case constants.JSONDataType:
		return json.Valid([]byte(s.Value))
	default:
		return false
	}
}
