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

package collaborators

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/config"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// WhatsAppClient sends outbound messages through the configured messaging
// gateway.
type WhatsAppClient struct {
	httpClient *http.Client
}

// NewWhatsAppClient creates a new WhatsApp gateway client.
func NewWhatsAppClient() *WhatsAppClient {
	return &WhatsAppClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type whatsAppSendRequest struct {
	To       string `json:"to"`
	Message  string `json:"message"`
	SenderID string `json:"sender_id,omitempty"`
}

// SendWhatsApp posts one message to the gateway. The request honors the
// dispatcher's per-action deadline through ctx.
func (c *WhatsAppClient) SendWhatsApp(ctx context.Context, to, message string) error {

	messagingConfig := config.GetEngineRuntime().Config.Messaging
	if messagingConfig.Host == "" {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: "Messaging gateway is not configured",
		}, nil)
	}

	endpoint := fmt.Sprintf("http://%s:%s/api/v1/messages", messagingConfig.Host, messagingConfig.Port)
	payload, err := json.Marshal(whatsAppSendRequest{
		To:       to,
		Message:  message,
		SenderID: messagingConfig.SenderID,
	})
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: "Failed to encode WhatsApp send request",
		}, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: "Failed to build WhatsApp send request",
		}, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if messagingConfig.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+messagingConfig.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.GetLogger().Debug("WhatsApp gateway request failed", log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: "WhatsApp gateway request failed",
		}, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		errorMsg := fmt.Sprintf("WhatsApp gateway returned status %d: %s", resp.StatusCode, string(body))
		log.GetLogger().Debug(errorMsg)
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DISPATCH_ACTION.Code,
			Message:     errors2.DISPATCH_ACTION.Message,
			Description: errorMsg,
		}, nil)
	}
	return nil
}
