package secop

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/licitia/radar/core"
)

// secopRow mirrors the SECOP II Socrata schema. Socrata serves numbers and
// dates as strings; parsing happens in mapRow.
type secopRow struct {
	ProcessId            string     `json:"id_del_proceso"`
	EntityName           string     `json:"entidad"`
	ProcedureDescription string     `json:"descripci_n_del_procedimiento"`
	ProcedureName        string     `json:"nombre_del_procedimiento"`
	Department           string     `json:"departamento_entidad"`
	Municipality         string     `json:"ciudad_entidad"`
	BasePrice            string     `json:"precio_base"`
	AwardedValue         string     `json:"valor_total_adjudicacion"`
	PublicationDate      string     `json:"fecha_de_publicacion_del"`
	LastPublicationDate  string     `json:"fecha_de_ultima_publicaci"`
	ProcedureState       string     `json:"estado_del_procedimiento"`
	StateSummary         string     `json:"estado_resumen"`
	ContractType         string     `json:"tipo_de_contrato"`
	ProcessURL           processURL `json:"urlproceso"`
}

// processURL tolerates both the object form {"url": "..."} and a bare string.
type processURL struct {
	URL string `json:"url"`
}

func (p *processURL) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &p.URL)
	}
	type alias processURL
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	p.URL = a.URL
	return nil
}

// mapRow converts one Socrata row into a tender. Rows without the essential
// process id or entity name map to nil. Malformed amounts and dates become
// absent fields, never errors.
func (c *Client) mapRow(row secopRow) *core.Tender {
	if row.ProcessId == "" || row.EntityName == "" {
		c.logger.Debug("skipping row without process id or entity")
		return nil
	}

	objectText := row.ProcedureDescription
	if objectText == "" {
		objectText = row.ProcedureName
	}

	state := row.ProcedureState
	if state == "" {
		state = row.StateSummary
	}

	tender := &core.Tender{
		Id:              core.IDFromContent(row.ProcessId),
		ExternalId:      row.ProcessId,
		Source:          core.SourceSECOPII,
		EntityName:      row.EntityName,
		ObjectText:      objectText,
		Department:      row.Department,
		Municipality:    row.Municipality,
		Amount:          parseAmount(row.BasePrice, row.AwardedValue),
		PublicationDate: parseSocrataTime(row.PublicationDate),
		ClosingDate:     parseSocrataTime(row.LastPublicationDate),
		State:           state,
		ProcessURL:      row.ProcessURL.URL,
		ContractType:    row.ContractType,
	}

	return tender
}

// parseAmount tries the base price first, then the awarded value.
// Unparseable or non-positive values yield an absent amount.
func parseAmount(basePrice, awardedValue string) *float64 {
	for _, raw := range []string{basePrice, awardedValue} {
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value <= 0 {
			continue
		}
		return &value
	}
	return nil
}

var socrataTimeLayouts = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseSocrataTime parses the date formats SECOP II serves. Unparseable
// values yield an absent date.
func parseSocrataTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range socrataTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}
