package matching

import "strings"

// LocationScore compares tender and experience geography. When neither side
// carries any location data the score is a penalized 0.3, not neutral:
// absent geography is informative in a geography-sensitive domain.
func LocationScore(tenderDepartment, tenderMunicipality, experienceDepartment, experienceMunicipality string) float64 {
	tDept := normalizeText(tenderDepartment)
	tMuni := normalizeText(tenderMunicipality)
	eDept := normalizeText(experienceDepartment)
	eMuni := normalizeText(experienceMunicipality)

	if tDept == "" && tMuni == "" && eDept == "" && eMuni == "" {
		return 0.3
	}

	if tMuni != "" && tMuni == eMuni {
		return 1.0
	}
	if tDept != "" && tDept == eDept {
		return 0.8
	}

	// A municipality named inside the other side's department counts as a
	// weak regional signal.
	if crossContained(tMuni, eDept) || crossContained(eMuni, tDept) {
		return 0.6
	}

	return 0.2
}

func crossContained(municipality, department string) bool {
	if municipality == "" || department == "" {
		return false
	}
	return strings.Contains(department, municipality) || strings.Contains(municipality, department)
}
