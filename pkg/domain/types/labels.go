package types

// ProbabilityLabel is the regulatory label derived from the ordinal probability.
// The French wording is mandated by the export scheme and kept verbatim.
type ProbabilityLabel string

const (
	ProbabilityFaible  ProbabilityLabel = "FAIBLE"
	ProbabilityMoyenne ProbabilityLabel = "MOYENNE"
	ProbabilityForte   ProbabilityLabel = "FORTE"
)

// String returns the string representation of ProbabilityLabel
func (p ProbabilityLabel) String() string {
	return string(p)
}

// GravityLabel is the regulatory label derived from the ordinal gravity
type GravityLabel string

const (
	GravityReversible   GravityLabel = "REVERSIBLE"
	GravityIrreversible GravityLabel = "IRREVERSIBLE"
	GravityFatal        GravityLabel = "FATAL"
)

// String returns the string representation of GravityLabel
func (g GravityLabel) String() string {
	return string(g)
}
