package matching

// inflationRates holds annual Colombian consumer price inflation by year,
// used to escalate historical contract amounts. Static table, loaded once.
var inflationRates = map[int]float64{
	2015: 0.0677,
	2016: 0.0575,
	2017: 0.0409,
	2018: 0.0318,
	2019: 0.0380,
	2020: 0.0161,
	2021: 0.0562,
	2022: 0.1312,
	2023: 0.0928,
	2024: 0.0520,
}

// meanInflationRate is the arithmetic mean of the table, used for years the
// table does not cover.
var meanInflationRate = func() float64 {
	var sum float64
	for _, rate := range inflationRates {
		sum += rate
	}
	return sum / float64(len(inflationRates))
}()

// amountBand maps a tender/experience amount ratio range onto a score.
type amountBand struct {
	low, high float64
	score     float64
}

// amountBands are checked tightest first.
var amountBands = []amountBand{
	{0.8, 1.2, 1.0},
	{0.6, 1.5, 0.9},
	{0.4, 2.0, 0.7},
	{0.2, 3.0, 0.5},
	{0.1, 5.0, 0.3},
}

// AdjustForInflation escalates an amount from one year to another by
// compounding the annual rate for each year strictly after fromYear up to
// and including toYear. Years absent from the table use the mean rate.
// Returns the amount unchanged when toYear is not after fromYear.
func AdjustForInflation(amount float64, fromYear, toYear int) float64 {
	adjusted := amount
	for year := fromYear + 1; year <= toYear; year++ {
		rate, ok := inflationRates[year]
		if !ok {
			rate = meanInflationRate
		}
		adjusted *= 1.0 + rate
	}
	return adjusted
}

// AmountScore compares a tender amount against an experience amount after
// escalating the experience amount to the tender's year. A missing amount on
// either side, or a zero experience amount, is neutral 0.5. Escalation is
// skipped when either year is zero or the experience year is not strictly
// earlier than the tender year.
func AmountScore(tenderAmount *float64, tenderYear int, experienceAmount *float64, experienceYear int) float64 {
	if tenderAmount == nil || experienceAmount == nil {
		return 0.5
	}
	if *tenderAmount == 0 || *experienceAmount == 0 {
		return 0.5
	}

	adjusted := *experienceAmount
	if tenderYear > 0 && experienceYear > 0 && experienceYear < tenderYear {
		adjusted = AdjustForInflation(adjusted, experienceYear, tenderYear)
	}

	ratio := *tenderAmount / adjusted

	for _, band := range amountBands {
		if ratio >= band.low && ratio <= band.high {
			return band.score
		}
	}
	return 0.1
}
