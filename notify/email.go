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
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

const emailMaxRetries = 3

// EmailConfig holds the SMTP settings for alert email delivery.
type EmailConfig struct {
	Host     string
	Port     int
	From     string
	User     string
	Password string
}

// EmailSender sends tender alert emails over SMTP with STARTTLS.
type EmailSender struct {
	config EmailConfig
	logger *slog.Logger

	// sendMail is swapped out in tests.
	sendMail func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender creates an SMTP alert sender. All configuration fields
// except Port are required; Port defaults to 587.
func NewEmailSender(config EmailConfig) (*EmailSender, error) {
	if config.Host == "" || config.From == "" || config.User == "" || config.Password == "" {
		return nil, ErrSMTPConfigIncomplete
	}
	if config.Port == 0 {
		config.Port = 587
	}

	return &EmailSender{
		config:   config,
		logger:   slog.Default().With("component", "email_sender"),
		sendMail: smtp.SendMail,
	}, nil
}

// Send delivers one tender alert email, retrying with doubling backoff on
// transient failures.
func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	message := s.buildMessage(to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	backoff := 1 * time.Second
	var lastErr error
	for attempt := 1; attempt <= emailMaxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		lastErr = s.sendMail(addr, auth, s.config.From, []string{to}, message)
		if lastErr == nil {
			s.logger.Info("email alert sent", "to", to)
			return nil
		}
		s.logger.Warn("email send failed", "to", to, "attempt", attempt, "err", lastErr)
	}

	return fmt.Errorf("sending email after %d attempts: %w", emailMaxRetries, lastErr)
}

// buildMessage assembles an RFC 5322 message. Headers and body are
// separated by a blank line, with CRLF line endings in the header block.
func (s *EmailSender) buildMessage(to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", s.config.From))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
