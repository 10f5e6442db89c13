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

import "errors"

var (
	// ErrSMTPConfigIncomplete is returned when an email sender is created
	// with a partial SMTP configuration.
	ErrSMTPConfigIncomplete = errors.New("smtp host, from address, user and password are all required")

	// ErrWhatsAppConfigIncomplete is returned when a WhatsApp sender is
	// created without an access token or phone number id.
	ErrWhatsAppConfigIncomplete = errors.New("whatsapp access token and phone number id are required")

	// ErrNoTransportsConfigured is returned when a dispatcher is created
	// with no senders at all.
	ErrNoTransportsConfigured = errors.New("at least one notification transport is required")
)
