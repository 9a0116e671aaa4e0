package scoring

import (
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// PillarScores carries each pillar mean plus the bonus-adjusted
// environmental and governance values used in the composite blend. Bonus
// values are intentionally not re-clamped, so they may exceed 100.
type PillarScores struct {
	Financial          float64
	Environmental      float64
	EnvironmentalBonus float64
	Social             float64
	Governance         float64
	GovernanceBonus    float64
}

// FinancialScore reduces the financial sub-signals to one score:
// profitability (100 profitable / 50 not), sector stability (inverted
// normalized sector risk average), and market competition (inverted
// normalized 0-10 rating).
func FinancialScore(p *models.SMEProfile, sectorRiskAvg float64) (float64, error) {
	profitability := 50.0
	if p.IsProfitable {
		profitability = 100
	}

	stability, err := invertedRisk(sectorRiskAvg)
	if err != nil {
		return 0, err
	}

	competitionRaw := float64(p.MarketCompetition)
	normalized, err := Normalize(&competitionRaw, 0, 10)
	if err != nil {
		return 0, err
	}
	competition := 100 - normalized

	return (profitability + stability + competition) / 3, nil
}

// EnvironmentalScore reduces the five environmental sub-signals and returns
// both the plain mean and the bonus-adjusted value (+1 for a business
// continuity plan, +1 for an environmental permit; unclamped above 100).
func EnvironmentalScore(p *models.SMEProfile, regionRisk float64) (score, bonus float64, err error) {
	energy, err := EnergyUsageScore(p.EnergyUsage)
	if err != nil {
		return 0, 0, err
	}

	water, err := WaterUsageScore(p.WaterUsage)
	if err != nil {
		return 0, 0, err
	}

	ghg, err := GHGEmissionsScore(p.GHGEmissions)
	if err != nil {
		return 0, 0, err
	}

	waste := WasteManagementScore(p.WasteManagement)

	score = (regionRisk + energy + water + waste + ghg) / 5

	bonus = score + flag(p.HasBCP) + flag(p.HasEnvironmentalPermit)
	return score, bonus, nil
}

// SocialScore averages the five social metrics. Inputs arrive already on the
// 0-100 scale; the turnover rate is inverted so that low churn scores high.
func SocialScore(p *models.SMEProfile) float64 {
	components := []float64{
		p.PctEmployeesHealth,
		p.PctEmployeesSSS,
		100 - p.EmployeeTurnoverRate,
		p.WorkplaceSafety,
		p.EmergencyPreparedness,
	}

	sum := 0.0
	for _, c := range components {
		sum += c
	}
	return sum / float64(len(components))
}

// GovernanceScore reduces the reporting-frequency and inspection sub-signals
// and returns both the plain mean and the bonus-adjusted value (+1 for
// documented policies; unclamped above 100).
func GovernanceScore(p *models.SMEProfile) (score, bonus float64) {
	reporting := ReportingFrequencyScore(p.FinReportingFreq)
	score = (reporting + p.InspectionScore) / 2
	bonus = score + flag(p.HasPolicies)
	return score, bonus
}

// invertedRisk converts a 0-10 risk average into a 0-100 safety score.
func invertedRisk(riskAvg float64) (float64, error) {
	normalized, err := Normalize(&riskAvg, 0, 10)
	if err != nil {
		return 0, err
	}
	return 100 - normalized, nil
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
