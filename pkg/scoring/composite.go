package scoring

// Base/supplier blend split for the final score.
const (
	baseShare     = 0.60
	supplierShare = 0.40
)

// Weights is the pillar weight set for the base-score blend. Weights must
// sum to 1.0 (validated at config load).
type Weights struct {
	Financial     float64
	Environmental float64
	Social        float64
	Governance    float64
}

// DefaultWeights is the canonical pillar weighting.
var DefaultWeights = Weights{
	Financial:     0.15,
	Environmental: 0.30,
	Social:        0.30,
	Governance:    0.25,
}

// Base blends the four pillar scores into the base score. The environmental
// and governance inputs are the bonus-adjusted values, so the result can
// land slightly above 100.
func (w Weights) Base(p PillarScores) float64 {
	return w.Financial*p.Financial +
		w.Environmental*p.EnvironmentalBonus +
		w.Social*p.Social +
		w.Governance*p.GovernanceBonus
}

// Final blends the base score with the aggregate supplier score.
func Final(base, supplierAggregate float64) float64 {
	return base*baseShare + supplierAggregate*supplierShare
}
