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
	"errors"
	"log/slog"

	"github.com/licitia/radar/core"
)

// Dispatcher fans a tender alert out to every transport the subscription
// carries an address for. It implements ingestion.Notifier.
type Dispatcher struct {
	email    *EmailSender
	whatsapp *WhatsAppSender
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEmailSender enables email delivery.
func WithEmailSender(sender *EmailSender) DispatcherOption {
	return func(d *Dispatcher) {
		d.email = sender
	}
}

// WithWhatsAppSender enables WhatsApp delivery.
func WithWhatsAppSender(sender *WhatsAppSender) DispatcherOption {
	return func(d *Dispatcher) {
		d.whatsapp = sender
	}
}

// WithDispatcherLogger sets a custom logger.
// Default is slog.Default().
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
	}
}

// NewDispatcher creates an alert dispatcher. At least one transport must be
// configured.
func NewDispatcher(opts ...DispatcherOption) (*Dispatcher, error) {
	d := &Dispatcher{
		logger: slog.Default().With("component", "notify_dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.email == nil && d.whatsapp == nil {
		return nil, ErrNoTransportsConfigured
	}
	return d, nil
}

// NotifyTender sends the alert through every transport the subscription has
// an address for. A transport without a matching address, or without a
// configured sender, is skipped. An error is returned only when every
// attempted transport failed.
func (d *Dispatcher) NotifyTender(ctx context.Context, subscription core.Subscription, tender *core.Tender) error {
	attempted := 0
	var errs []error

	if subscription.ContactEmail != "" && d.email != nil {
		attempted++
		err := d.email.Send(ctx, subscription.ContactEmail, BuildSubject(tender), BuildEmailBody(subscription, tender))
		if err != nil {
			errs = append(errs, err)
		}
	}

	if subscription.WhatsAppNumber != "" && d.whatsapp != nil {
		attempted++
		if err := d.whatsapp.Send(ctx, subscription.WhatsAppNumber, BuildWhatsAppText(tender)); err != nil {
			errs = append(errs, err)
		}
	}

	if attempted == 0 {
		d.logger.Debug("no transport available for subscription",
			"company", subscription.CompanyName, "tenderId", tender.Id)
		return nil
	}
	if len(errs) == attempted {
		return errors.Join(errs...)
	}
	return nil
}
