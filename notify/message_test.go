package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/licitia/radar/core"
	"github.com/stretchr/testify/assert"
)

func sampleTender() *core.Tender {
	amount := 1_250_000_000.0
	pub := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	closing := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
	return &core.Tender{
		ExternalId:      "CO1.NTC.999",
		EntityName:      "INVIAS",
		ObjectText:      "Interventoría técnica para el mejoramiento de la vía La Dorada",
		Department:      "Caldas",
		Municipality:    "La Dorada",
		Amount:          &amount,
		PublicationDate: &pub,
		ClosingDate:     &closing,
		State:           "Publicado",
		ProcessURL:      "https://community.secop.gov.co/Public/Tendering/CO1.NTC.999",
	}
}

func TestBuildSubject(t *testing.T) {
	subject := BuildSubject(sampleTender())
	assert.Equal(t, "Nueva licitación de interventoría vial – INVIAS", subject)
}

func TestBuildEmailBody(t *testing.T) {
	subscription := core.Subscription{
		CompanyName:  "Conalvias",
		ContactName:  "Marta Ruiz",
		ContactEmail: "marta@conalvias.co",
	}

	body := BuildEmailBody(subscription, sampleTender())

	assert.Contains(t, body, "Hola Marta Ruiz,")
	assert.Contains(t, body, "Entidad: INVIAS")
	assert.Contains(t, body, "Departamento: Caldas")
	assert.Contains(t, body, "Municipio: La Dorada")
	assert.Contains(t, body, "Monto: $1,250,000,000.00 COP")
	assert.Contains(t, body, "Fecha de publicación: 2024-08-01")
	assert.Contains(t, body, "Fecha de cierre: 2024-08-20")
	assert.Contains(t, body, "Objeto del proceso:")
	assert.Contains(t, body, "Ver detalles: https://community.secop.gov.co/Public/Tendering/CO1.NTC.999")
	assert.Contains(t, body, "LicitIA - Radar de Oportunidades")
}

func TestBuildEmailBody_FallbacksForMissingFields(t *testing.T) {
	tender := sampleTender()
	tender.Amount = nil
	tender.ClosingDate = nil
	tender.Department = ""

	body := BuildEmailBody(core.Subscription{CompanyName: "Conalvias"}, tender)

	assert.Contains(t, body, "Hola Conalvias,")
	assert.Contains(t, body, "Monto: No especificado")
	assert.Contains(t, body, "Fecha de cierre: N/A")
	assert.Contains(t, body, "Departamento: N/A")
}

func TestBuildEmailBody_TruncatesLongObjectText(t *testing.T) {
	tender := sampleTender()
	tender.ObjectText = strings.Repeat("interventoría ", 60)

	body := BuildEmailBody(core.Subscription{ContactName: "Marta"}, tender)
	assert.Contains(t, body, "...")

	start := strings.Index(body, "Objeto del proceso:\n")
	end := strings.Index(body[start:], "\n\n")
	objectSection := body[start : start+end]
	assert.LessOrEqual(t, len([]rune(objectSection)), objectPreviewRunes+len("Objeto del proceso:\n")+3)
}

func TestBuildWhatsAppText(t *testing.T) {
	text := BuildWhatsAppText(sampleTender())

	assert.Contains(t, text, "Nueva licitación de interventoría vial")
	assert.Contains(t, text, "Entidad: INVIAS")
	assert.Contains(t, text, "Monto: $1,250,000,000.00 COP")
	assert.Contains(t, text, "Fecha cierre: 2024-08-20")
	assert.Contains(t, text, "Ver detalles: https://")
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.00", "0.00"},
		{"999.50", "999.50"},
		{"1000.00", "1,000.00"},
		{"1234567.89", "1,234,567.89"},
		{"950000000.00", "950,000,000.00"},
		{"-1234.00", "-1,234.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in), "input %s", tt.in)
	}
}
