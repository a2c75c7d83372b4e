package types

// MitigationLevel is a qualitative rating of existing controls on a risk.
// The factor discounts the brut score into the net score.
type MitigationLevel string

const (
	MitigationNone     MitigationLevel = "none"
	MitigationPartial  MitigationLevel = "partial"
	MitigationGood     MitigationLevel = "good"
	MitigationVeryGood MitigationLevel = "very_good"
)

// Factor returns the discount factor applied to the brut score.
// Unknown levels behave as MitigationNone.
func (m MitigationLevel) Factor() float64 {
	switch m {
	case MitigationPartial:
		return 0.5
	case MitigationGood:
		return 0.7
	case MitigationVeryGood:
		return 0.9
	default:
		return 0
	}
}

// IsValid reports whether the level is one of the known values
func (m MitigationLevel) IsValid() bool {
	switch m {
	case MitigationNone, MitigationPartial, MitigationGood, MitigationVeryGood:
		return true
	}
	return false
}

// String returns the string representation of MitigationLevel
func (m MitigationLevel) String() string {
	return string(m)
}
