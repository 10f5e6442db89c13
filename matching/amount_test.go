package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestAmountScore_MissingAmounts(t *testing.T) {
	assert.Equal(t, 0.5, AmountScore(nil, 2024, fptr(100), 2020))
	assert.Equal(t, 0.5, AmountScore(fptr(100), 2024, nil, 2020))
	assert.Equal(t, 0.5, AmountScore(fptr(100), 2024, fptr(0), 2020))
}

func TestAmountScore_Bands(t *testing.T) {
	tests := []struct {
		name   string
		tender float64
		exp    float64
		want   float64
	}{
		{"exact ratio", 1_000_000, 1_000_000, 1.0},
		{"within tight band", 1_100_000, 1_000_000, 1.0},
		{"ratio 1.4", 1_400_000, 1_000_000, 0.9},
		{"ratio 1.8", 1_800_000, 1_000_000, 0.7},
		{"ratio 2.5", 2_500_000, 1_000_000, 0.5},
		{"ratio 4", 4_000_000, 1_000_000, 0.3},
		{"ratio 10", 10_000_000, 1_000_000, 0.1},
		{"ratio 0.05", 50_000, 1_000_000, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Same year on both sides: no escalation applies.
			score := AmountScore(fptr(tt.tender), 2024, fptr(tt.exp), 2024)
			assert.Equal(t, tt.want, score)
		})
	}
}

func TestAdjustForInflation_Monotonic(t *testing.T) {
	base := 100_000_000.0

	to2018 := AdjustForInflation(base, 2015, 2018)
	to2024 := AdjustForInflation(base, 2015, 2024)

	assert.Greater(t, to2018, base)
	assert.Greater(t, to2024, to2018)
}

func TestAdjustForInflation_NoYearsNoChange(t *testing.T) {
	assert.Equal(t, 100.0, AdjustForInflation(100, 2024, 2024))
	assert.Equal(t, 100.0, AdjustForInflation(100, 2024, 2020))
}

func TestAdjustForInflation_UnknownYearsUseMeanRate(t *testing.T) {
	adjusted := AdjustForInflation(100, 2030, 2031)
	assert.InDelta(t, 100*(1+meanInflationRate), adjusted, 1e-9)
}

func TestAmountScore_EscalationShiftsBand(t *testing.T) {
	tender := fptr(1_000_000_000)
	experience := fptr(500_000_000)

	// Raw ratio is 2.0, which lands in the 0.7 band.
	assert.Equal(t, 0.7, AmountScore(tender, 2024, experience, 2024))

	// Escalating a 2015 amount to 2024 roughly halves the gap.
	assert.Equal(t, 0.9, AmountScore(tender, 2024, experience, 2015))
}

func TestAmountScore_SkipsEscalationWithoutYears(t *testing.T) {
	tender := fptr(1_000_000_000)
	experience := fptr(500_000_000)

	assert.Equal(t, 0.7, AmountScore(tender, 2024, experience, 0))
	assert.Equal(t, 0.7, AmountScore(tender, 0, experience, 2015))
}
