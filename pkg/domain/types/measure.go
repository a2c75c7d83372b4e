package types

// MeasureType categorizes a proposed prevention measure
type MeasureType string

const (
	MeasureCollective MeasureType = "collective"
	MeasureIndividual MeasureType = "individual"
	MeasureTraining   MeasureType = "training"
)

// IsValid reports whether the type is one of the known values
func (m MeasureType) IsValid() bool {
	switch m {
	case MeasureCollective, MeasureIndividual, MeasureTraining:
		return true
	}
	return false
}

// String returns the string representation of MeasureType
func (m MeasureType) String() string {
	return string(m)
}
