package scoring

import (
	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// ProbabilityLabel maps the ordinal probability onto its regulatory label
func ProbabilityLabel(p int) types.ProbabilityLabel {
	switch {
	case p <= 1:
		return types.ProbabilityFaible
	case p == 2:
		return types.ProbabilityMoyenne
	default:
		return types.ProbabilityForte
	}
}

// GravityLabel maps the ordinal gravity onto its regulatory label
func GravityLabel(g int) types.GravityLabel {
	switch {
	case g <= 2:
		return types.GravityReversible
	case g == 3:
		return types.GravityIrreversible
	default:
		return types.GravityFatal
	}
}

// hierarchyTable is the fixed regulatory lookup, 1 being the most critical
// level. The table is a policy constant; changing a cell is a product
// decision, not a bug fix.
var hierarchyTable = map[types.GravityLabel]map[types.ProbabilityLabel]int{
	types.GravityFatal: {
		types.ProbabilityFaible:  2,
		types.ProbabilityMoyenne: 1,
		types.ProbabilityForte:   1,
	},
	types.GravityIrreversible: {
		types.ProbabilityFaible:  3,
		types.ProbabilityMoyenne: 2,
		types.ProbabilityForte:   1,
	},
	types.GravityReversible: {
		types.ProbabilityFaible:  3,
		types.ProbabilityMoyenne: 3,
		types.ProbabilityForte:   2,
	},
}

// HierarchyLevel resolves the 3-level regulatory classification. Unknown
// labels fall back to the least critical level.
func HierarchyLevel(p types.ProbabilityLabel, g types.GravityLabel) int {
	if row, ok := hierarchyTable[g]; ok {
		if level, ok := row[p]; ok {
			return level
		}
	}
	return 3
}

// ApplyHierarchy recomputes the hierarchy level of every risk in the
// document and overwrites the summary's three severity counters from the
// level distribution (level 1 → critical, 2 → important, 3 → moderate).
// This is the authoritative source of those counters, superseding any
// value the generator or a manual edit may have set.
func ApplyHierarchy(doc *model.RiskDocument) {
	var counts [4]int

	for ui := range doc.Units {
		unit := &doc.Units[ui]
		for ri := range unit.Risks {
			risk := &unit.Risks[ri]
			level := HierarchyLevel(
				ProbabilityLabel(risk.Probability),
				GravityLabel(risk.Gravity),
			)
			risk.HierarchyLevel = level
			counts[level]++
		}
	}

	doc.Summary.CriticalCount = counts[1]
	doc.Summary.ImportantCount = counts[2]
	doc.Summary.ModerateCount = counts[3]
}
