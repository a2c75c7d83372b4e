package model

import (
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// RiskRecord is a single identified risk within a work unit.
//
// Two independent classifications coexist on purpose: Tier is derived from
// the numeric net score for prioritization, HierarchyLevel is the 3-level
// regulatory classification derived from labeled probability and gravity.
// Downstream consumers rely on each independently; never merge them.
type RiskRecord struct {
	ID        string
	Danger    string
	Situation string

	// Gravity and Probability are ordinal factors in [1,4]
	Gravity     int
	Probability int

	BrutScore  int
	NetScore   int
	Mitigation types.MitigationLevel
	Tier       types.SeverityTier

	// HierarchyLevel is 1..3 (1 most critical), 0 when not yet computed
	HierarchyLevel int

	// Applicable defaults to true when unset
	Applicable *bool

	ExistingMeasures []string
	Measures         []Measure
	FollowUp         FollowUp

	// Workforce is the headcount affected, nil when unknown
	Workforce *int
	// Hardship is the pénibilité flag, nil when the question was never answered
	Hardship *bool
}

// Measure is a proposed prevention measure attached to a risk
type Measure struct {
	Type        types.MeasureType
	Description string
	Delay       string
	Cost        string
	Reference   string
}

// FollowUp tracks ownership and scheduling of a risk's treatment
type FollowUp struct {
	Responsible  string
	DueDate      string
	Indicator    string
	DecisionDate string
	DoneDate     string
}

// IsApplicable resolves the applicability flag, defaulting to true
func (r *RiskRecord) IsApplicable() bool {
	return r.Applicable == nil || *r.Applicable
}
