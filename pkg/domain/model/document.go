package model

import "time"

// WorkUnit groups the risks of one unit of work (atelier, chantier, bureau...)
type WorkUnit struct {
	ID    string
	Name  string
	Risks []RiskRecord
}

// RiskDocument is the risk register for one organization, the unit of work
// passed by value through normalization and audit. Mutation is always local
// to a call; documents are never shared across concurrent callers.
type RiskDocument struct {
	Sector      string
	GeneratedAt time.Time
	Units       []WorkUnit
	Summary     Summary
}

// Summary holds document-level statistics. Every field is a pure
// recomputation from the current risk set; hand-edited values do not
// survive normalization.
type Summary struct {
	CriticalCount  int
	ImportantCount int
	ModerateCount  int

	// TopPriorities holds at most three "{danger} – {situation}" labels
	TopPriorities []string

	BudgetEstimate string

	Strengths  []string
	Weaknesses []string
}

// Clone returns a deep copy so that callers keep value semantics across
// normalization and audit
func (d *RiskDocument) Clone() RiskDocument {
	out := *d
	out.Units = make([]WorkUnit, len(d.Units))
	for i, u := range d.Units {
		cu := u
		cu.Risks = make([]RiskRecord, len(u.Risks))
		for j, r := range u.Risks {
			cr := r
			cr.ExistingMeasures = append([]string(nil), r.ExistingMeasures...)
			cr.Measures = append([]Measure(nil), r.Measures...)
			if r.Applicable != nil {
				v := *r.Applicable
				cr.Applicable = &v
			}
			if r.Workforce != nil {
				v := *r.Workforce
				cr.Workforce = &v
			}
			if r.Hardship != nil {
				v := *r.Hardship
				cr.Hardship = &v
			}
			cu.Risks[j] = cr
		}
		out.Units[i] = cu
	}
	out.Summary.TopPriorities = append([]string(nil), d.Summary.TopPriorities...)
	out.Summary.Strengths = append([]string(nil), d.Summary.Strengths...)
	out.Summary.Weaknesses = append([]string(nil), d.Summary.Weaknesses...)
	return out
}

// RiskCount returns the total number of risks across all units
func (d *RiskDocument) RiskCount() int {
	n := 0
	for _, u := range d.Units {
		n += len(u.Risks)
	}
	return n
}
