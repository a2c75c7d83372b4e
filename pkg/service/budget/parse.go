// Package budget turns heterogeneous cost expressions into numeric ranges
// and aggregates them into document-level estimates.
package budget

import (
	"regexp"
	"strconv"
	"strings"
)

// Range is a cost interval in currency units
type Range struct {
	Min float64
	Max float64
}

// Symbolic tier tokens map to fixed ranges. The tiers mirror what the
// generator is prompted to emit when no figure is known.
var tierRanges = map[string]Range{
	"€":    {Min: 0, Max: 500},
	"€€":   {Min: 500, Max: 2000},
	"€€€":  {Min: 2000, Max: 10000},
	"€€€€": {Min: 10000, Max: 50000},
}

var rangeSeparator = regexp.MustCompile(`\s*[–—-]\s*`)

// ParseCost parses a cost expression into a range. Three forms are
// accepted: a symbolic tier token ("€€"), a dash-separated numeric range
// ("1 000–2 000€"), or a single number ("1.2k"). Unparsable input yields
// nil; callers skip it rather than fail.
func ParseCost(expr string) *Range {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil
	}

	if r, ok := tierRanges[s]; ok {
		return &Range{Min: r.Min, Max: r.Max}
	}

	parts := rangeSeparator.Split(s, -1)
	switch len(parts) {
	case 1:
		v, ok := parseAmount(parts[0])
		if !ok {
			return nil
		}
		return &Range{Min: v, Max: v}
	case 2:
		lo, okLo := parseAmount(parts[0])
		hi, okHi := parseAmount(parts[1])
		if !okLo || !okHi {
			return nil
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		return &Range{Min: lo, Max: hi}
	default:
		return nil
	}
}

// parseAmount parses a single amount: currency symbols and thousands
// separators (regular, non-breaking and narrow spaces) are stripped, a
// trailing "k" multiplies by 1000, the decimal mark may be a comma or dot.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	for _, cut := range []string{"€", "eur", "EUR", " ", " ", " "} {
		s = strings.ReplaceAll(s, cut, "")
	}
	if s == "" {
		return 0, false
	}

	multiplier := 1.0
	if last := s[len(s)-1]; last == 'k' || last == 'K' {
		multiplier = 1000
		s = s[:len(s)-1]
	}

	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v * multiplier, true
}
