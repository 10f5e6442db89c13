package matching

import (
	"strings"

	"github.com/xrash/smetrics"
)

// entityAliases maps well-known short forms of Colombian contracting
// entities to their canonical names. Keys are matched against whole
// normalized words, never substrings, so "ani" does not fire inside
// "urbanismo". Static table, loaded once.
var entityAliases = map[string]string{
	"invias":   "instituto nacional de vias",
	"ani":      "agencia nacional de infraestructura",
	"idu":      "instituto de desarrollo urbano",
	"findeter": "financiera de desarrollo territorial",
	"fonade":   "fondo financiero de proyectos de desarrollo",
	"umv":      "unidad de mantenimiento vial",
}

// canonicalizeEntity normalizes an entity name and expands known aliases.
// "INVIAS - Regional Centro" becomes "instituto nacional de vias regional
// centro", so alias and full forms compare by containment.
func canonicalizeEntity(name string) string {
	normalized := normalizeText(name)
	if normalized == "" {
		return ""
	}

	words := strings.Fields(normalized)
	replaced := false
	for i, word := range words {
		if canonical, ok := entityAliases[word]; ok {
			words[i] = canonical
			replaced = true
		}
	}
	if replaced {
		return strings.Join(words, " ")
	}
	return normalized
}

// EntityScore measures similarity between the tender's issuing entity and
// the experience's contracting entity. A missing experience entity is
// neutral 0.5. Tiers: exact canonical match 1.0, containment either way
// 0.9, two or more shared words 0.7, one shared word 0.4, then a
// Jaro-Winkler fallback over the canonical strings.
func EntityScore(tenderEntity, experienceEntity string) float64 {
	if strings.TrimSpace(experienceEntity) == "" {
		return 0.5
	}

	tender := canonicalizeEntity(tenderEntity)
	experience := canonicalizeEntity(experienceEntity)
	if tender == "" || experience == "" {
		return 0.5
	}

	if tender == experience {
		return 1.0
	}
	if strings.Contains(tender, experience) || strings.Contains(experience, tender) {
		return 0.9
	}

	switch shared := sharedWordCount(tender, experience); {
	case shared >= 2:
		return 0.7
	case shared == 1:
		return 0.4
	}

	switch similarity := smetrics.JaroWinkler(tender, experience, 0.7, 4); {
	case similarity >= 0.8:
		return 0.8
	case similarity >= 0.6:
		return 0.5
	}
	return 0.0
}

// sharedWordCount counts distinct words present in both names. Connectives
// of two letters or fewer are ignored so "de" alone never counts as overlap.
func sharedWordCount(a, b string) int {
	aWords := make(map[string]bool)
	for _, word := range strings.Fields(a) {
		if len(word) > 2 {
			aWords[word] = true
		}
	}

	shared := 0
	counted := make(map[string]bool)
	for _, word := range strings.Fields(b) {
		if aWords[word] && !counted[word] {
			counted[word] = true
			shared++
		}
	}
	return shared
}
