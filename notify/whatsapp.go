// Copyright 2025 LicitIA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultWhatsAppAPIURL is the Meta Graph API base for the WhatsApp
// Cloud API.
const DefaultWhatsAppAPIURL = "https://graph.facebook.com/v19.0"

// WhatsAppConfig holds the WhatsApp Cloud API credentials.
type WhatsAppConfig struct {
	APIURL        string
	AccessToken   string
	PhoneNumberID string
}

// WhatsAppSender sends tender alert texts through the WhatsApp Cloud API.
type WhatsAppSender struct {
	config WhatsAppConfig
	client *http.Client
	logger *slog.Logger
}

// NewWhatsAppSender creates a WhatsApp Cloud API sender. AccessToken and
// PhoneNumberID are required; APIURL defaults to DefaultWhatsAppAPIURL.
func NewWhatsAppSender(config WhatsAppConfig) (*WhatsAppSender, error) {
	if config.AccessToken == "" || config.PhoneNumberID == "" {
		return nil, ErrWhatsAppConfigIncomplete
	}
	if config.APIURL == "" {
		config.APIURL = DefaultWhatsAppAPIURL
	}

	return &WhatsAppSender{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: slog.Default().With("component", "whatsapp_sender"),
	}, nil
}

type whatsAppMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             whatsAppTextBody `json:"text"`
}

type whatsAppTextBody struct {
	Body string `json:"body"`
}

// Send delivers one text message to a phone number in international format.
func (s *WhatsAppSender) Send(ctx context.Context, to, text string) error {
	payload, err := json.Marshal(whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             whatsAppTextBody{Body: text},
	})
	if err != nil {
		return fmt.Errorf("encoding whatsapp message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", s.config.APIURL, s.config.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building whatsapp request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, string(body))
	}

	s.logger.Info("whatsapp alert sent", "to", to)
	return nil
}
