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

package utils

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/authn"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/authz"
	customerrors "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// HandleError writes an error response. Client errors surface their code and
// description; server errors are logged and masked.
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
		})
		return
	}

	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger := log.GetLogger()
		logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}

	log.GetLogger().Error("Unclassified error", log.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// WriteJSON writes payload as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// AuthnAndAuthz performs authentication and authorization for the given HTTP request and scope.
// It returns the authenticated subject of the token for audit purposes.
func AuthnAndAuthz(r *http.Request, requiredScope string) (string, error) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		clientError := customerrors.NewClientError(customerrors.ErrorMessage{
			Code:        customerrors.UN_AUTHORIZED.Code,
			Message:     customerrors.UN_AUTHORIZED.Message,
			Description: "Missing or invalid Authorization header",
		}, http.StatusUnauthorized)
		return "", clientError
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := authn.ValidateAuthenticationAndReturnClaims(token)
	if err != nil {
		return "", err
	}

	scopeStr, _ := claims["scope"].(string)
	if !authz.ValidatePermission(scopeStr, requiredScope) {
		clientError := customerrors.NewClientError(customerrors.ErrorMessage{
			Code:        customerrors.FORBIDDEN.Code,
			Message:     customerrors.FORBIDDEN.Message,
			Description: "Do not have permission to perform this operation",
		}, http.StatusForbidden)
		return "", clientError
	}

	actor, _ := claims["sub"].(string)
	return actor, nil
}

// ExtractLastPathSegment returns the final path segment of the request URL.
func ExtractLastPathSegment(path string) string {
	trimmed := strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	return trimmed[idx+1:]
}

// ExtractPathParam returns the path segment that follows the given marker
// segment, e.g. ExtractPathParam("/api/v1/subjects/s-1/flags", "subjects")
// yields "s-1". Returns "" when the marker or the parameter is absent.
func ExtractPathParam(path, marker string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		if segment == marker && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}
