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

package errors

const errorPrefix = "DRE-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	ADD_RULE = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while adding rule.",
	}

	GET_RULE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching rule(s).",
	}

	UPDATE_RULE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while updating rule.",
	}

	DELETE_RULE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while deleting rule.",
	}

	ADD_FLAG = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while adding flag.",
	}

	GET_FLAG = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching flag(s).",
	}

	UPDATE_FLAG = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while updating flag.",
	}

	ASSIGN_FLAG = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while assigning flag.",
	}

	REMOVE_FLAG = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while removing flag assignment.",
	}

	GET_SETTING = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while fetching setting(s).",
	}

	UPDATE_SETTING = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while updating setting.",
	}

	ADD_EXECUTION_LOG = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while appending execution log entry.",
	}

	GET_EXECUTION_LOG = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while fetching execution history.",
	}

	GET_SUBJECT = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while fetching subject fields.",
	}

	PATCH_SUBJECT = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while patching subject field.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while un-marshalling JSON.",
	}

	DISPATCH_ACTION = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while dispatching action.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Parsing token failed.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	RULE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Rule not found.",
		Description: "No rule found for the provided rule id.",
	}

	RULE_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Rule validation failed.",
	}

	FLAG_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Flag not found.",
		Description: "No flag found for the provided flag id.",
	}

	FLAG_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Flag validation failed.",
	}

	FLAG_ALREADY_ASSIGNED = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Flag already assigned.",
		Description: "An unexpired assignment already exists for this subject and flag.",
	}

	SETTING_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Setting not found.",
		Description: "No setting has been seeded for the provided key.",
	}

	SETTING_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Setting validation failed.",
	}

	SUBJECT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11010",
		Message:     "Subject not found.",
		Description: "No subject record found for the given subject id.",
	}

	UNKNOWN_ACTION_TYPE = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "Unknown action type.",
	}

	UNKNOWN_OPERATOR = ErrorMessage{
		Code:    errorPrefix + "11012",
		Message: "Unknown condition operator.",
	}

	UNKNOWN_TRIGGER_TYPE = ErrorMessage{
		Code:    errorPrefix + "11013",
		Message: "Unknown trigger type.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11014",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}
)
