package budget

import (
	"fmt"
	"math"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// Default adjustment rates for the scenario computation
const (
	DefaultTaxRate     = 0.20
	DefaultSubsidyRate = 0.40
)

// Options configures the scenario computation
type Options struct {
	TaxRate     float64
	SubsidyRate float64
	// EligibleTypes lists measure types the subsidy applies to; defaults
	// to collective and training measures
	EligibleTypes []types.MeasureType
}

// Scenario set produced by Scenarios. NetOfSubsidy is the one surfaced as
// the document's single estimate.
type ScenarioSet struct {
	Base         Range
	WithTax      Range
	NetOfSubsidy Range
}

// Aggregate sums the parsed cost ranges of every proposed measure in every
// risk. Unparsable expressions are skipped.
func Aggregate(doc *model.RiskDocument) Range {
	var total Range
	for _, unit := range doc.Units {
		for _, risk := range unit.Risks {
			for _, m := range risk.Measures {
				if r := ParseCost(m.Cost); r != nil {
					total.Min += r.Min
					total.Max += r.Max
				}
			}
		}
	}
	return total
}

// Scenarios computes the three budget views: the raw aggregate, the
// aggregate with tax applied, and the taxed aggregate minus the subsidy on
// eligible measure types.
func Scenarios(doc *model.RiskDocument, opts Options) ScenarioSet {
	if opts.TaxRate <= 0 {
		opts.TaxRate = DefaultTaxRate
	}
	if opts.SubsidyRate <= 0 {
		opts.SubsidyRate = DefaultSubsidyRate
	}
	if opts.EligibleTypes == nil {
		opts.EligibleTypes = []types.MeasureType{types.MeasureCollective, types.MeasureTraining}
	}
	eligible := make(map[types.MeasureType]bool, len(opts.EligibleTypes))
	for _, t := range opts.EligibleTypes {
		eligible[t] = true
	}

	var base, subsidized Range
	for _, unit := range doc.Units {
		for _, risk := range unit.Risks {
			for _, m := range risk.Measures {
				r := ParseCost(m.Cost)
				if r == nil {
					continue
				}
				base.Min += r.Min
				base.Max += r.Max
				if eligible[m.Type] {
					subsidized.Min += r.Min
					subsidized.Max += r.Max
				}
			}
		}
	}

	tax := 1 + opts.TaxRate
	withTax := Range{Min: base.Min * tax, Max: base.Max * tax}
	net := Range{
		Min: withTax.Min - subsidized.Min*tax*opts.SubsidyRate,
		Max: withTax.Max - subsidized.Max*tax*opts.SubsidyRate,
	}

	return ScenarioSet{Base: base, WithTax: withTax, NetOfSubsidy: net}
}

// Format renders a range as "min–max€", both bounds rounded to the nearest
// 50 currency units. When max is not positive (nothing parsed), a
// pre-existing estimate wins, then an em-dash placeholder.
func Format(r Range, fallback string) string {
	if r.Max <= 0 {
		if fallback != "" {
			return fallback
		}
		return "—"
	}
	return fmt.Sprintf("%d–%d€", roundTo50(r.Min), roundTo50(r.Max))
}

func roundTo50(v float64) int {
	return int(math.Round(v/50) * 50)
}
