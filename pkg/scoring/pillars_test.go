package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// fixtureProfile mirrors the reference SME used to pin the whole arithmetic
// chain: a profitable Manufacturing business in NCR with good environmental
// readings and solid social coverage.
func fixtureProfile() *models.SMEProfile {
	return &models.SMEProfile{
		BusinessName:           "Fixture Manufacturing",
		Sector:                 "Manufacturing",
		Region:                 "National Capital Region (NCR)",
		IsProfitable:           true,
		MarketCompetition:      5,
		HasBCP:                 true,
		EnergyUsage:            sptr("400kwh"),
		WaterUsage:             sptr("10m3"),
		WasteManagement:        models.WasteRecycling,
		HasEnvironmentalPermit: true,
		GHGEmissions:           sptr("200 kg CO2e"),
		PctEmployeesHealth:     80,
		PctEmployeesSSS:        90,
		EmployeeTurnoverRate:   10,
		WorkplaceSafety:        70,
		EmergencyPreparedness:  60,
		FinReportingFreq:       models.ReportingMonthly,
		HasPolicies:            true,
		InspectionScore:        85,
	}
}

// Manufacturing sub-risks are 6/4/4 in the seeded reference table.
const fixtureSectorAvg = 14.0 / 3.0

const fixtureRegionRisk = 69.3

func TestFinancialScore(t *testing.T) {
	got, err := FinancialScore(fixtureProfile(), fixtureSectorAvg)
	require.NoError(t, err)

	// profitability 100, sector stability 100-46.667=53.333, competition 50
	assert.InDelta(t, 67.7777778, got, 1e-6)
}

func TestFinancialScoreUnprofitable(t *testing.T) {
	p := fixtureProfile()
	p.IsProfitable = false

	got, err := FinancialScore(p, fixtureSectorAvg)
	require.NoError(t, err)
	assert.InDelta(t, 51.1111111, got, 1e-6)
}

func TestEnvironmentalScore(t *testing.T) {
	score, bonus, err := EnvironmentalScore(fixtureProfile(), fixtureRegionRisk)
	require.NoError(t, err)

	// mean of {69.3, 100, 100, 50, 100}
	assert.InDelta(t, 83.86, score, 1e-9)
	assert.InDelta(t, 85.86, bonus, 1e-9, "BCP and permit flags add one point each")
}

func TestEnvironmentalScorePropagatesParseError(t *testing.T) {
	p := fixtureProfile()
	p.WaterUsage = sptr("some water")

	_, _, err := EnvironmentalScore(p, fixtureRegionRisk)
	assert.ErrorIs(t, err, apperrors.ErrParse)
}

func TestEnvironmentalBonusExceedsHundred(t *testing.T) {
	p := fixtureProfile()
	p.EnergyUsage = sptr("100kwh")
	p.WaterUsage = sptr("5m3")
	p.GHGEmissions = sptr("50 kg CO2e")
	p.WasteManagement = models.WasteZeroWaste

	score, bonus, err := EnvironmentalScore(p, 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, 102.0, bonus, "bonus terms are deliberately not re-clamped")
}

func TestSocialScore(t *testing.T) {
	// mean of {80, 90, 100-10, 70, 60}
	assert.InDelta(t, 78.0, SocialScore(fixtureProfile()), 1e-9)
}

func TestGovernanceScore(t *testing.T) {
	score, bonus := GovernanceScore(fixtureProfile())
	assert.InDelta(t, 92.5, score, 1e-9)
	assert.InDelta(t, 93.5, bonus, 1e-9)
}

func TestGovernanceScoreUnknownFrequency(t *testing.T) {
	p := fixtureProfile()
	p.FinReportingFreq = "Sometimes"
	p.HasPolicies = false

	score, bonus := GovernanceScore(p)
	assert.InDelta(t, 67.5, score, 1e-9)
	assert.Equal(t, score, bonus)
}
