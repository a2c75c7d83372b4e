package types

// SeverityTier is the coarse prioritization bucket derived from the net score
type SeverityTier string

const (
	TierCritical  SeverityTier = "critical"
	TierImportant SeverityTier = "important"
	TierModerate  SeverityTier = "moderate"
	TierLow       SeverityTier = "low"
)

// String returns the string representation of SeverityTier
func (s SeverityTier) String() string {
	return string(s)
}

// IssueSeverity is the severity of an audit finding
type IssueSeverity string

const (
	IssueCritical IssueSeverity = "critical"
	IssueMajor    IssueSeverity = "major"
	IssueMinor    IssueSeverity = "minor"
	IssueInfo     IssueSeverity = "info"
)

// String returns the string representation of IssueSeverity
func (s IssueSeverity) String() string {
	return string(s)
}
