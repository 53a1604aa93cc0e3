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

// Package evaluator compares one subject field value against a comparand
// through a condition operator. It is pure: it knows nothing about rules,
// flags, settings or subjects, and it never raises — malformed input makes
// a condition non-matching rather than failing the evaluation pass.
package evaluator

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is a condition operator understood by the evaluator.
type Operator string

const (
	OpEquals         Operator = "equals"
	OpNotEquals      Operator = "not_equals"
	OpGreaterThan    Operator = "greater_than"
	OpLessThan       Operator = "less_than"
	OpGreaterOrEqual Operator = "greater_or_equal"
	OpLessOrEqual    Operator = "less_or_equal"
	OpContains       Operator = "contains"
	OpIsEmpty        Operator = "is_empty"
	OpIsNotEmpty     Operator = "is_not_empty"
)

// KnownOperators is the closed set of operators accepted at authoring time.
var KnownOperators = []Operator{
	OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
	OpGreaterOrEqual, OpLessOrEqual, OpContains, OpIsEmpty, OpIsNotEmpty,
}

// IsKnownOperator reports whether op names a supported operator.
func IsKnownOperator(op string) bool {
	for _, known := range KnownOperators {
		if string(known) == op {
			return true
		}
	}
	return false
}

// Evaluate applies operator to (fieldValue, comparand) and returns the match
// outcome. Unknown operators and non-numeric input to ordering operators
// fail closed (false).
func Evaluate(fieldValue interface{}, operator Operator, comparand string) bool {

	switch operator {
	case OpEquals:
		return equals(fieldValue, comparand)
	case OpNotEquals:
		return !equals(fieldValue, comparand)
	case OpGreaterThan:
		return compareNumeric(fieldValue, comparand, func(a, b float64) bool { return a > b })
	case OpLessThan:
		return compareNumeric(fieldValue, comparand, func(a, b float64) bool { return a < b })
	case OpGreaterOrEqual:
		return compareNumeric(fieldValue, comparand, func(a, b float64) bool { return a >= b })
	case OpLessOrEqual:
		return compareNumeric(fieldValue, comparand, func(a, b float64) bool { return a <= b })
	case OpContains:
		return contains(fieldValue, comparand)
	case OpIsEmpty:
		return isEmpty(fieldValue)
	case OpIsNotEmpty:
		return !isEmpty(fieldValue)
	default:
		return false
	}
}

// equals prefers numeric comparison when both operands coerce to numbers,
// otherwise falls back to case-sensitive string equality.
func equals(fieldValue interface{}, comparand string) bool {
	if fieldValue == nil {
		return false
	}
	fieldNum, fieldOK := coerceToNumber(fieldValue)
	compNum, compOK := coerceToNumber(comparand)
	if fieldOK && compOK {
		return fieldNum == compNum
	}
	return coerceToString(fieldValue) == comparand
}

func compareNumeric(fieldValue interface{}, comparand string, cmp func(a, b float64) bool) bool {
	fieldNum, fieldOK := coerceToNumber(fieldValue)
	compNum, compOK := coerceToNumber(comparand)
	if !fieldOK || !compOK {
		return false
	}
	return cmp(fieldNum, compNum)
}

// contains covers substring matches on strings and membership on collections.
func contains(fieldValue interface{}, comparand string) bool {
	switch v := fieldValue.(type) {
	case string:
		return strings.Contains(v, comparand)
	case []interface{}:
		for _, item := range v {
			if coerceToString(item) == comparand {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if item == comparand {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// isEmpty treats nil, empty strings and zero-length collections as empty.
// Numeric zero is a value, not an absence.
func isEmpty(fieldValue interface{}) bool {
	switch v := fieldValue.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]interface{}:
		return len(v) == 0
	default:
		return false
	}
}

// coerceToNumber converts supported value shapes to float64, failing closed.
func coerceToNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// coerceToString renders a value the way it would appear in a rule definition.
func coerceToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		// Render integral floats without the decimal point.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
