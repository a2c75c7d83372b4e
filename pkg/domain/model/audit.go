package model

import (
	"fmt"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// IssuePath locates an audit finding inside a document. MeasureIndex is -1
// when the issue targets the risk itself rather than a specific measure.
type IssuePath struct {
	UnitID       string
	RiskID       string
	MeasureIndex int
}

// String renders the path as "unit/risk" or "unit/risk/measure[i]"
func (p IssuePath) String() string {
	if p.MeasureIndex < 0 {
		return fmt.Sprintf("%s/%s", p.UnitID, p.RiskID)
	}
	return fmt.Sprintf("%s/%s/measure[%d]", p.UnitID, p.RiskID, p.MeasureIndex)
}

// AuditIssue is one finding of the deterministic rule pass
type AuditIssue struct {
	Code       string
	Severity   types.IssueSeverity
	Message    string
	Path       IssuePath
	Suggestion string
}

// AuditSummary aggregates issue counts and the 0-100 quality score
type AuditSummary struct {
	IssueCounts map[types.IssueSeverity]int
	Score       int
}

// AuditCoverage reports which detected categories are represented in the
// risk content. Ratio is 1.0 when nothing was detected.
type AuditCoverage struct {
	Detected []types.CategorySlug
	Covered  []types.CategorySlug
	Missing  []types.CategorySlug
	Ratio    float64
}

// AuditReport is the output of a full audit run
type AuditReport struct {
	Summary  AuditSummary
	Coverage AuditCoverage
	Issues   []AuditIssue
}
