package scoring

import (
	"strconv"
	"strings"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
	"github.com/bayanihan-labs/esg-engine/pkg/models"
)

// defaultBucketScore is assigned when a measurement is missing or reported
// as zero (a zero reading is treated as "no data", not "no usage").
const defaultBucketScore = 25

// parseMeasurement strips the given unit suffixes (case-insensitive) from a
// raw measurement and parses the remainder as a float. A nil or blank value
// returns (nil, nil): missing data is a defined default, never an error.
// A malformed non-empty value is a ParseError naming the field.
func parseMeasurement(field string, raw *string, suffixes ...string) (*float64, error) {
	if raw == nil {
		return nil, nil
	}

	s := strings.ToLower(strings.TrimSpace(*raw))
	for _, suffix := range suffixes {
		s = strings.ReplaceAll(s, suffix, "")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, apperrors.NewParse(field, *raw)
	}
	return &v, nil
}

// EnergyUsageScore buckets a raw kWh reading such as "400kwh".
func EnergyUsageScore(raw *string) (float64, error) {
	v, err := parseMeasurement("energy_usage", raw, "kwh")
	if err != nil {
		return 0, err
	}

	switch {
	case v == nil || *v == 0:
		return defaultBucketScore, nil
	case *v <= 500:
		return 100, nil
	case *v <= 2000:
		return 75, nil
	case *v <= 8000:
		return 50, nil
	default:
		return defaultBucketScore, nil
	}
}

// WaterUsageScore buckets a raw water reading such as "10m3" or "350l".
func WaterUsageScore(raw *string) (float64, error) {
	v, err := parseMeasurement("water_usage", raw, "m3", "l")
	if err != nil {
		return 0, err
	}

	switch {
	case v == nil || *v == 0:
		return defaultBucketScore, nil
	case *v <= 20:
		return 100, nil
	case *v <= 50:
		return 75, nil
	case *v <= 100:
		return 50, nil
	default:
		return defaultBucketScore, nil
	}
}

// GHGEmissionsScore buckets a raw emissions reading such as "200 kg CO2e".
func GHGEmissionsScore(raw *string) (float64, error) {
	v, err := parseMeasurement("ghg_emissions", raw, "kg co2e")
	if err != nil {
		return 0, err
	}

	switch {
	case v == nil || *v == 0:
		return defaultBucketScore, nil
	case *v <= 300:
		return 100, nil
	case *v <= 700:
		return 75, nil
	case *v <= 1200:
		return 50, nil
	default:
		return defaultBucketScore, nil
	}
}

// wasteScores maps the five waste-management maturity categories to scores.
// Unknown categories score 0.
var wasteScores = map[string]float64{
	models.WasteNoPolicy:      0,
	models.WasteBasicDisposal: 25,
	models.WasteRecycling:     50,
	models.WasteComprehensive: 75,
	models.WasteZeroWaste:     100,
}

// WasteManagementScore maps a waste-management category to its score.
func WasteManagementScore(category string) float64 {
	return wasteScores[category]
}

// reportingScores maps financial reporting frequencies to governance scores.
// Monthly reporting is the sweet spot; daily is treated as noise rather than
// diligence, and anything unrecognized scores like yearly.
var reportingScores = map[string]float64{
	models.ReportingMonthly:   100,
	models.ReportingDaily:     75,
	models.ReportingQuarterly: 75,
	models.ReportingYearly:    50,
}

// ReportingFrequencyScore maps a reporting frequency to its score.
func ReportingFrequencyScore(freq string) float64 {
	if score, ok := reportingScores[freq]; ok {
		return score
	}
	return 50
}
