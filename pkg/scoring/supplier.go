package scoring

import (
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// SupplierInputs carries the already-resolved signals for one supplier:
// the watchlist match score ([0,1]), the supplier sector's risk average
// (0-10), the supplier region's risk score (0-100), and the permit flag.
type SupplierInputs struct {
	Name       string
	MatchScore float64
	SectorAvg  float64
	RegionRisk float64
	HasPermit  bool
}

// ScoreSupplier reduces one supplier to its breakdown row. All four
// components are oriented higher-is-safer: a strong watchlist match drives
// the name component toward 0, a risky sector drives the sector component
// toward 0, and a missing permit scores 50 instead of 100.
func ScoreSupplier(in SupplierInputs) (models.SupplierScoreDetail, error) {
	nameRisk := 100 - in.MatchScore*100

	sectorRisk, err := invertedRisk(in.SectorAvg)
	if err != nil {
		return models.SupplierScoreDetail{}, err
	}

	permitScore := 50.0
	if in.HasPermit {
		permitScore = 100
	}

	return models.SupplierScoreDetail{
		SupplierName:  in.Name,
		NameRisk:      nameRisk,
		SectorRisk:    sectorRisk,
		RegionRisk:    in.RegionRisk,
		PermitScore:   permitScore,
		SupplierScore: (nameRisk + sectorRisk + in.RegionRisk + permitScore) / 4,
	}, nil
}

// AggregateSupplierScore averages the per-supplier scores. An SME with no
// linked suppliers scores 100: absent supply-chain data is treated as best
// case rather than penalized.
func AggregateSupplierScore(details []models.SupplierScoreDetail) float64 {
	if len(details) == 0 {
		return 100
	}

	sum := 0.0
	for _, d := range details {
		sum += d.SupplierScore
	}
	return sum / float64(len(details))
}
