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
	"fmt"
	"strings"
	"time"

	"github.com/licitia/radar/core"
)

const objectPreviewRunes = 500

// BuildSubject returns the alert subject line for a tender.
func BuildSubject(tender *core.Tender) string {
	return fmt.Sprintf("Nueva licitación de interventoría vial – %s", tender.EntityName)
}

// BuildEmailBody renders the plain-text alert email in Spanish.
func BuildEmailBody(subscription core.Subscription, tender *core.Tender) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Hola %s,\n\n", orFallback(subscription.ContactName, subscription.CompanyName)))
	sb.WriteString("Hemos detectado una nueva licitación que podría ser de tu interés:\n\n")
	sb.WriteString(fmt.Sprintf("Entidad: %s\n", tender.EntityName))
	sb.WriteString(fmt.Sprintf("Departamento: %s\n", orFallback(tender.Department, "N/A")))
	sb.WriteString(fmt.Sprintf("Municipio: %s\n", orFallback(tender.Municipality, "N/A")))
	sb.WriteString(fmt.Sprintf("Monto: %s\n", formatAmount(tender.Amount)))
	sb.WriteString(fmt.Sprintf("Fecha de publicación: %s\n", formatDate(tender.PublicationDate)))
	sb.WriteString(fmt.Sprintf("Fecha de cierre: %s\n", formatDate(tender.ClosingDate)))
	sb.WriteString(fmt.Sprintf("Estado: %s\n\n", tender.State))
	sb.WriteString("Objeto del proceso:\n")
	sb.WriteString(previewObject(tender.ObjectText))
	sb.WriteString("\n\n")
	if tender.ProcessURL != "" {
		sb.WriteString(fmt.Sprintf("Ver detalles: %s\n\n", tender.ProcessURL))
	}
	sb.WriteString("---\n")
	sb.WriteString("LicitIA - Radar de Oportunidades\n")

	return sb.String()
}

// BuildWhatsAppText renders the short alert text for WhatsApp delivery.
func BuildWhatsAppText(tender *core.Tender) string {
	var sb strings.Builder

	sb.WriteString("🚧 Nueva licitación de interventoría vial\n\n")
	sb.WriteString(fmt.Sprintf("Entidad: %s\n", tender.EntityName))
	sb.WriteString(fmt.Sprintf("Departamento: %s\n", orFallback(tender.Department, "N/A")))
	sb.WriteString(fmt.Sprintf("Monto: %s\n", formatAmount(tender.Amount)))
	sb.WriteString(fmt.Sprintf("Fecha cierre: %s\n", formatDate(tender.ClosingDate)))
	if tender.ProcessURL != "" {
		sb.WriteString(fmt.Sprintf("\nVer detalles: %s", tender.ProcessURL))
	}

	return sb.String()
}

// formatAmount renders a COP amount with thousands separators, or the
// Spanish "not specified" marker when absent.
func formatAmount(amount *float64) string {
	if amount == nil || *amount == 0 {
		return "No especificado"
	}
	return fmt.Sprintf("$%s COP", groupThousands(fmt.Sprintf("%.2f", *amount)))
}

// groupThousands inserts commas into the integer part of a formatted
// decimal, e.g. "1234567.89" becomes "1,234,567.89".
func groupThousands(formatted string) string {
	integer, fraction, _ := strings.Cut(formatted, ".")

	negative := strings.HasPrefix(integer, "-")
	if negative {
		integer = integer[1:]
	}

	var sb strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	result := sb.String()
	if negative {
		result = "-" + result
	}
	if fraction != "" {
		result += "." + fraction
	}
	return result
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2006-01-02")
}

func previewObject(text string) string {
	runes := []rune(text)
	if len(runes) <= objectPreviewRunes {
		return text
	}
	return string(runes[:objectPreviewRunes]) + "..."
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
