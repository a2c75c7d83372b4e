// Package scoring computes risk scores and the two classifications carried
// by every risk: the numeric severity tier and the regulatory hierarchy
// level. All functions are pure; out-of-range input is clamped, never
// rejected.
package scoring

import (
	"math"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// Severity tier thresholds on the net score
const (
	ThresholdCritical  = 12
	ThresholdImportant = 8
	ThresholdModerate  = 4
)

// Clamp forces an ordinal factor into [1,4]. Missing or invalid input
// (zero, negative) defaults to 1.
func Clamp(v int) int {
	if v < 1 {
		return 1
	}
	if v > 4 {
		return 4
	}
	return v
}

// Brut returns gravity × probability, each clamped to [1,4]
func Brut(gravity, probability int) int {
	return Clamp(gravity) * Clamp(probability)
}

// Net discounts the brut score by the mitigation factor:
// ceil(brut × (1 − factor)). Absent mitigation leaves the brut score intact.
func Net(gravity, probability int, mitigation types.MitigationLevel) int {
	brut := Brut(gravity, probability)
	factor := mitigation.Factor()
	if factor <= 0 {
		return brut
	}
	return int(math.Ceil(float64(brut) * (1 - factor)))
}

// Tier buckets a net score into the severity tier
func Tier(net int) types.SeverityTier {
	switch {
	case net >= ThresholdCritical:
		return types.TierCritical
	case net >= ThresholdImportant:
		return types.TierImportant
	case net >= ThresholdModerate:
		return types.TierModerate
	default:
		return types.TierLow
	}
}
