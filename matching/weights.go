package matching

// WeightProfile holds the relative importance of each factor score.
// Profiles are fixed constants selected once at Matcher construction based
// on semantic capability availability.
type WeightProfile struct {
	Semantic float64
	Keyword  float64
	Amount   float64
	Entity   float64
	Location float64
	Category float64
}

// String names the profile for logs and CLI output.
func (w WeightProfile) String() string {
	if w.Semantic > 0 {
		return "hybrid"
	}
	return "rules-only"
}

// Sum returns the total of all factor weights.
func (w WeightProfile) Sum() float64 {
	return w.Semantic + w.Keyword + w.Amount + w.Entity + w.Location + w.Category
}

// normalized proportionally rescales the profile so its weights sum to 1.0.
func (w WeightProfile) normalized() WeightProfile {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return WeightProfile{
		Semantic: w.Semantic / sum,
		Keyword:  w.Keyword / sum,
		Amount:   w.Amount / sum,
		Entity:   w.Entity / sum,
		Location: w.Location / sum,
		Category: w.Category / sum,
	}
}

// HybridProfile is the weight profile used when the semantic capability is
// available. Semantic similarity dominates and the weak category factor is
// zeroed.
func HybridProfile() WeightProfile {
	return WeightProfile{
		Semantic: 0.50,
		Keyword:  0.15,
		Amount:   0.15,
		Entity:   0.10,
		Location: 0.10,
		Category: 0.00,
	}.normalized()
}

// RulesOnlyProfile is the weight profile used when no embedding backend is
// available. The raw weights are rescaled proportionally so the profile
// still sums to 1.0 with the semantic factor absent.
func RulesOnlyProfile() WeightProfile {
	return WeightProfile{
		Keyword:  0.40,
		Amount:   0.15,
		Entity:   0.10,
		Location: 0.10,
		Category: 0.00,
	}.normalized()
}
