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

import (
	"fmt"
	"net/http"
)

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description"`
	TraceID     string `json:"trace_id,omitempty"`
}

type ClientError struct {
	ErrorMessage
	StatusCode int
}

type ServerError struct {
	ErrorMessage
	Err error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewServerError(msg ErrorMessage, cause error) *ServerError {
	return &ServerError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewClientError(msg ErrorMessage, code int) *ClientError {
	return &ClientError{
		ErrorMessage: msg,
		StatusCode:   code,
	}
}

// NewValidationError creates a ClientError for a malformed rule, flag or
// setting definition rejected at authoring time.
func NewValidationError(msg ErrorMessage, description string) *ClientError {
	msg.Description = description
	return NewClientError(msg, http.StatusBadRequest)
}

// NewNotFoundError creates a ClientError for a reference to a missing
// rule, flag, setting or subject.
func NewNotFoundError(msg ErrorMessage, description string) *ClientError {
	msg.Description = description
	return NewClientError(msg, http.StatusNotFound)
}

// NewConflictError creates a ClientError for a duplicate flag assignment or
// a concurrent unique-constraint violation. Callers may treat it as a
// non-fatal outcome rather than a system failure.
func NewConflictError(msg ErrorMessage, description string) *ClientError {
	msg.Description = description
	return NewClientError(msg, http.StatusConflict)
}

// IsConflict reports whether err is a ClientError carrying conflict semantics.
func IsConflict(err error) bool {
	clientErr, ok := err.(*ClientError)
	return ok && clientErr.StatusCode == http.StatusConflict
}

// IsNotFound reports whether err is a ClientError carrying not-found semantics.
func IsNotFound(err error) bool {
	clientErr, ok := err.(*ClientError)
	return ok && clientErr.StatusCode == http.StatusNotFound
}
