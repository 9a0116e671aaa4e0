package models

// SectorRiskEntry is a row of the static sector-risk reference table.
// Sub-risk scores are 0 (negligible) to 10 (severe).
type SectorRiskEntry struct {
	Sector            string  `json:"sector"`
	EnvironmentalRisk float64 `json:"env_risk"`
	SocialRisk        float64 `json:"soc_risk"`
	GovernanceRisk    float64 `json:"gov_risk"`
	Notes             string  `json:"notes,omitempty"`
}

// Average returns the mean of the three sub-risk scores, still on the 0-10
// scale.
func (e *SectorRiskEntry) Average() float64 {
	return (e.EnvironmentalRisk + e.SocialRisk + e.GovernanceRisk) / 3
}

// RegionRiskEntry is a row of the static region-risk reference table.
// Score is 0-100.
type RegionRiskEntry struct {
	Region string  `json:"region"`
	Score  float64 `json:"score"`
}

// WatchlistEntry is one risk-flagged business name. The watchlist is
// externally populated (regulator blacklists, suspension lists), unbounded,
// and names are not unique across sources.
type WatchlistEntry struct {
	BusinessName string `json:"business_name" yaml:"business_name"`
	RiskTag      string `json:"risk_tag,omitempty" yaml:"risk_tag,omitempty"`
}
