package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

func TestScoreSupplier(t *testing.T) {
	detail, err := ScoreSupplier(SupplierInputs{
		Name:       "Golden Harvest Trading",
		MatchScore: 0.9,
		SectorAvg:  4,
		RegionRisk: 70,
		HasPermit:  true,
	})
	require.NoError(t, err)

	assert.InDelta(t, 10.0, detail.NameRisk, 1e-9)
	assert.InDelta(t, 60.0, detail.SectorRisk, 1e-9)
	assert.InDelta(t, 70.0, detail.RegionRisk, 1e-9)
	assert.InDelta(t, 100.0, detail.PermitScore, 1e-9)
	assert.InDelta(t, 60.0, detail.SupplierScore, 1e-9)
}

func TestScoreSupplierNoPermitNoMatch(t *testing.T) {
	detail, err := ScoreSupplier(SupplierInputs{
		Name:       "Clean Supplier",
		MatchScore: 0,
		SectorAvg:  0,
		RegionRisk: 80,
		HasPermit:  false,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, detail.NameRisk, 1e-9)
	assert.InDelta(t, 100.0, detail.SectorRisk, 1e-9)
	assert.InDelta(t, 50.0, detail.PermitScore, 1e-9)
	assert.InDelta(t, 82.5, detail.SupplierScore, 1e-9)
}

func TestAggregateSupplierScore(t *testing.T) {
	assert.Equal(t, 100.0, AggregateSupplierScore(nil), "no supply-chain data is best case")

	details := []models.SupplierScoreDetail{
		{SupplierScore: 60},
		{SupplierScore: 80},
	}
	assert.InDelta(t, 70.0, AggregateSupplierScore(details), 1e-9)
}

func TestWeightsBase(t *testing.T) {
	base := DefaultWeights.Base(PillarScores{
		Financial:          100,
		EnvironmentalBonus: 100,
		Social:             100,
		GovernanceBonus:    100,
	})
	assert.InDelta(t, 100.0, base, 1e-9, "weights sum to 1")
}

// TestGoldenFixtureChain pins the entire arithmetic chain for the reference
// SME, pillar by pillar through the final blend.
func TestGoldenFixtureChain(t *testing.T) {
	p := fixtureProfile()

	financial, err := FinancialScore(p, fixtureSectorAvg)
	require.NoError(t, err)

	envScore, envBonus, err := EnvironmentalScore(p, fixtureRegionRisk)
	require.NoError(t, err)

	social := SocialScore(p)
	govScore, govBonus := GovernanceScore(p)

	base := DefaultWeights.Base(PillarScores{
		Financial:          financial,
		Environmental:      envScore,
		EnvironmentalBonus: envBonus,
		Social:             social,
		Governance:         govScore,
		GovernanceBonus:    govBonus,
	})
	final := Final(base, AggregateSupplierScore(nil))

	assert.InDelta(t, 67.7777778, financial, 1e-6)
	assert.InDelta(t, 83.86, envScore, 1e-6)
	assert.InDelta(t, 78.0, social, 1e-6)
	assert.InDelta(t, 93.5, govBonus, 1e-6)
	assert.InDelta(t, 82.6996667, base, 1e-6)
	assert.InDelta(t, 89.6198, final, 1e-6)
}

func TestFinalBlendShares(t *testing.T) {
	assert.InDelta(t, 60.0, Final(100, 0), 1e-9)
	assert.InDelta(t, 40.0, Final(0, 100), 1e-9)
}
