// Package scoring implements the deterministic ESG scoring rules: linear
// normalization, bucketed classification of raw measurements, fuzzy
// watchlist matching, the four pillar scorers, supplier aggregation, and the
// weighted composite blend. Everything here is pure computation; callers
// fetch profiles and reference data first and hand in plain values.
package scoring

import (
	"fmt"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
)

// Normalize linearly scales value into [0,100] over [min,max], clamped at
// both ends. A nil value scores 0. Degenerate bounds (min == max) are a
// configuration error, not an arithmetic fault.
func Normalize(value *float64, min, max float64) (float64, error) {
	if min == max {
		return 0, fmt.Errorf("%w: normalization bounds [%v,%v] have zero width", apperrors.ErrConfiguration, min, max)
	}

	if value == nil {
		return 0, nil
	}

	score := (*value - min) / (max - min) * 100
	if score < 0 {
		return 0, nil
	}
	if score > 100 {
		return 100, nil
	}
	return score, nil
}
