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

package constants

type ContextKey string

const (
	// TraceIDContextKey is the context key carrying the per-request trace id.
	TraceIDContextKey ContextKey = "traceId"

	// ActorIDContextKey is the context key carrying the authenticated operator id.
	ActorIDContextKey ContextKey = "actorId"
)

const ApiBasePath = "/api/v1"

// Setting value data types.
const (
	StringDataType  = "string"
	IntegerDataType = "integer"
	DecimalDataType = "decimal"
	BooleanDataType = "boolean"
	JSONDataType    = "json"
)

// AllowedSettingDataTypes defines the valid set of setting value types.
var AllowedSettingDataTypes = map[string]bool{
	StringDataType:  true,
	IntegerDataType: true,
	DecimalDataType: true,
	BooleanDataType: true,
	JSONDataType:    true,
}

// Well-known setting keys seeded at first run.
const (
	SettingCreditsCritical     = "credits_critical"
	SettingCreditsLow          = "credits_low"
	SettingAutoFlagEnabled     = "auto_flag_enabled"
	SettingEvaluationBatchSize = "evaluation_batch_size"
	SettingDefaultAlertLevel   = "default_alert_level"
)

// AllowedFlagColors is the fixed palette a flag color must belong to.
var AllowedFlagColors = map[string]bool{
	"red":    true,
	"orange": true,
	"yellow": true,
	"green":  true,
	"blue":   true,
	"purple": true,
	"pink":   true,
	"gray":   true,
}

// Authorization scopes checked on the authoring and execution APIs.
const (
	ScopeRulesManage   = "rules:manage"
	ScopeRulesView     = "rules:view"
	ScopeFlagsManage   = "flags:manage"
	ScopeFlagsView     = "flags:view"
	ScopeSettingsView  = "settings:view"
	ScopeSettingsWrite = "settings:manage"
	ScopeExecutionView = "execution:view"
	ScopeExecutionRun  = "execution:run"
)

// Alert severities raised by the create_alert action.
const (
	AlertSeverityInfo     = "info"
	AlertSeverityWarning  = "warning"
	AlertSeverityCritical = "critical"
)

var AllowedAlertSeverities = map[string]bool{
	AlertSeverityInfo:     true,
	AlertSeverityWarning:  true,
	AlertSeverityCritical: true,
}
