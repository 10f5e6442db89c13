package matching

// domainVocabulary is the fixed set of road-supervision and engineering
// terms that always qualify as keywords. Entries are accent-free because
// tokenize strips diacritics before lookup.
var domainVocabulary = map[string]bool{
	"interventoria": true, "supervision": true,
	"vial": true, "vias": true,
	"carretera": true, "malla": true,
	"obra": true, "obras": true,
	"construccion": true, "mantenimiento": true,
	"mejoramiento": true, "rehabilitacion": true,
	"diseno": true, "estudio": true, "estudios": true,
	"tecnica": true, "administrativa": true, "ambiental": true,
	"puente": true, "puentes": true, "infraestructura": true,
	"pavimento": true, "pavimentacion": true,
	"acueducto": true, "alcantarillado": true,
}

// keywordStopWords are common Spanish words excluded from the significant
// token sweep.
var keywordStopWords = map[string]bool{
	"para": true, "del": true, "los": true, "las": true, "con": true,
	"por": true, "que": true, "una": true, "uno": true,
}

// maxSignificantKeywords bounds the number of non-vocabulary tokens kept.
const maxSignificantKeywords = 10

// ExtractKeywords pulls a bounded, deduplicated set of matching keywords out
// of free text. It collects every token present in the domain vocabulary
// plus up to 10 additional significant tokens (longer than 5 runes, not a
// stop word). Empty or missing text yields an empty list.
//
// The result becomes the cached keyword signature of an experience record,
// computed once at creation or import time.
func ExtractKeywords(text string) []string {
	if text == "" {
		return []string{}
	}

	tokens := tokenize(text)
	keywords := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))

	for _, token := range tokens {
		if domainVocabulary[token] && !seen[token] {
			seen[token] = true
			keywords = append(keywords, token)
		}
	}

	significant := 0
	for _, token := range tokens {
		if significant >= maxSignificantKeywords {
			break
		}
		if seen[token] || keywordStopWords[token] || len([]rune(token)) <= 5 {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
		significant++
	}

	return keywords
}
