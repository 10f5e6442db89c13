package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryScore_RoadArea(t *testing.T) {
	score := CategoryScore("mejoramiento de la malla vial urbana", "", "Vías")
	assert.Equal(t, 1.0, score)
}

func TestCategoryScore_ConstructionArea(t *testing.T) {
	score := CategoryScore("obra civil para colegio municipal", "", "Construcción")
	assert.Equal(t, 0.8, score)
}

func TestCategoryScore_SupervisionCategory(t *testing.T) {
	score := CategoryScore("supervisión técnica del proyecto", "Interventoría", "")
	assert.Equal(t, 1.0, score)
}

func TestCategoryScore_Neutral(t *testing.T) {
	assert.Equal(t, 0.5, CategoryScore("suministro de papelería", "", ""))
	assert.Equal(t, 0.5, CategoryScore("suministro de papelería", "Consultoría", "Hidráulica"))
}

func TestCategoryScore_AreaWithoutTenderMatch(t *testing.T) {
	// A road engineering area means nothing if the tender says nothing about roads.
	score := CategoryScore("suministro de papelería", "", "Vías")
	assert.Equal(t, 0.5, score)
}
