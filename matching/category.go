package matching

import "strings"

var (
	roadAreaTerms       = []string{"vial", "vias", "carretera"}
	roadTenderTerms     = []string{"vial", "vias", "via", "carretera", "malla"}
	constructionTerms   = []string{"construccion", "obra"}
	supervisionTerms    = []string{"interventoria", "supervision"}
	supervisionCategory = "interventoria"
)

// CategoryScore applies ordered rule checks between the experience's
// category and engineering-area tags and the tender object text. The factor
// is intentionally neutral-biased: anything outside the rules scores 0.5.
func CategoryScore(tenderText, experienceCategory, engineeringArea string) float64 {
	tender := normalizeText(tenderText)
	area := normalizeText(engineeringArea)
	category := normalizeText(experienceCategory)

	if area != "" {
		if containsAny(area, roadAreaTerms) && containsAny(tender, roadTenderTerms) {
			return 1.0
		}
		if containsAny(area, constructionTerms) && containsAny(tender, constructionTerms) {
			return 0.8
		}
	}

	if category != "" && strings.Contains(category, supervisionCategory) {
		if containsAny(tender, supervisionTerms) {
			return 1.0
		}
	}

	return 0.5
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
