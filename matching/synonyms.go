package matching

import "strings"

// synonymTable maps a keyword to term variants that count as an occurrence
// of that keyword in tender text. Static thesaurus, loaded once. Keys and
// values are accent-free; keywordOccurs matches against accent-stripped
// tender text.
var synonymTable = map[string][]string{
	"interventoria":  {"supervision"},
	"supervision":    {"interventoria"},
	"vial":           {"vias", "via", "carretera", "malla vial"},
	"vias":           {"via", "vial", "carretera"},
	"carretera":      {"via", "vias", "vial", "corredor"},
	"obra":           {"obras", "construccion"},
	"obras":          {"obra", "construccion"},
	"construccion":   {"obra", "obras"},
	"mantenimiento":  {"conservacion", "rehabilitacion"},
	"mejoramiento":   {"mejora", "optimizacion", "ampliacion"},
	"rehabilitacion": {"mantenimiento", "mejoramiento"},
	"diseno":         {"estudios", "estudio"},
	"estudio":        {"estudios", "diseno"},
	"estudios":       {"estudio", "diseno"},
	"puente":         {"puentes", "viaducto"},
	"puentes":        {"puente", "viaducto"},
	"pavimento":      {"pavimentacion", "asfalto"},
	"acueducto":      {"alcantarillado", "saneamiento"},
}

// KeywordScore measures how much of an experience's cached keyword signature
// occurs in the tender text, directly or through synonyms. An empty keyword
// list scores 0.0: a signature-less experience cannot be matched by keyword.
func KeywordScore(tenderText string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0.0
	}

	tenderLower := stripDiacritics(strings.ToLower(tenderText))

	matches := 0
	for _, keyword := range keywords {
		if keywordOccurs(tenderLower, keyword) {
			matches++
		}
	}

	if matches == 0 {
		return 0.0
	}

	ratio := float64(matches) / float64(len(keywords))

	// Multiple matches compound the evidence.
	switch {
	case matches >= 3:
		ratio *= 1.3
	case matches >= 2:
		ratio *= 1.2
	}

	return min(1.0, ratio)
}

// keywordOccurs reports whether the keyword or any of its synonyms appears
// in the lowercased tender text.
func keywordOccurs(tenderLower, keyword string) bool {
	if strings.Contains(tenderLower, keyword) {
		return true
	}
	for _, synonym := range synonymTable[keyword] {
		if strings.Contains(tenderLower, synonym) {
			return true
		}
	}
	return false
}
