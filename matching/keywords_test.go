package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_Empty(t *testing.T) {
	assert.Empty(t, ExtractKeywords(""))
}

func TestExtractKeywords_DomainVocabulary(t *testing.T) {
	keywords := ExtractKeywords("Interventoría técnica para las obras de mejoramiento de la malla vial")

	assert.Contains(t, keywords, "interventoria")
	assert.Contains(t, keywords, "obras")
	assert.Contains(t, keywords, "mejoramiento")
	assert.Contains(t, keywords, "vial")
	assert.Contains(t, keywords, "malla")

	// Stop words and short tokens never qualify.
	assert.NotContains(t, keywords, "para")
	assert.NotContains(t, keywords, "las")
	assert.NotContains(t, keywords, "la")
	assert.NotContains(t, keywords, "de")
}

func TestExtractKeywords_AccentInsensitive(t *testing.T) {
	accented := ExtractKeywords("Interventoría de vías")
	plain := ExtractKeywords("interventoria de vias")

	// Accented and unaccented spellings produce the same signature.
	assert.Equal(t, plain, accented)
	assert.Contains(t, accented, "interventoria")
	assert.Contains(t, accented, "vias")
}

func TestExtractKeywords_SignificantTokens(t *testing.T) {
	keywords := ExtractKeywords("construcción de ciclorrutas metropolitanas")

	assert.Contains(t, keywords, "construccion")
	// Long tokens outside the vocabulary still qualify as significant.
	assert.Contains(t, keywords, "ciclorrutas")
	assert.Contains(t, keywords, "metropolitanas")
}

func TestExtractKeywords_Deduplicates(t *testing.T) {
	keywords := ExtractKeywords("vial vial vial obras obras")

	counts := make(map[string]int)
	for _, kw := range keywords {
		counts[kw]++
	}
	assert.Equal(t, 1, counts["vial"])
	assert.Equal(t, 1, counts["obras"])
}

func TestExtractKeywords_SignificantTokenLimit(t *testing.T) {
	text := "alfabeto bicicleta camiones dinamita elefante farolas gigante helados iglesia juguete kilometro lamparas ventanas"
	keywords := ExtractKeywords(text)

	// None of these are vocabulary terms, so the significant cap applies.
	assert.Len(t, keywords, maxSignificantKeywords)
}
