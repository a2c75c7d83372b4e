package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/budget"
	"github.com/prevanto-lab/duerpcore/pkg/service/scoring"
)

const (
	maxPriorityLabelLen = 80
	topPriorityCount    = 3
)

func randomID() string {
	return uuid.NewString()
}

// Normalize brings a document into canonical form: missing identifiers are
// assigned, applicability defaults to true, brut/net scores, tiers and
// hierarchy levels are recomputed, and the summary block is rebuilt from
// the risk set. The operation is idempotent: normalizing an already
// normalized document yields an identical result.
func (uc *UseCases) Normalize(doc *model.RiskDocument) {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = uc.now()
	}

	for ui := range doc.Units {
		unit := &doc.Units[ui]
		if unit.ID == "" {
			unit.ID = uc.newID()
		}
		for ri := range unit.Risks {
			risk := &unit.Risks[ri]
			if risk.ID == "" {
				risk.ID = uc.newID()
			}
			if risk.Applicable == nil {
				applicable := true
				risk.Applicable = &applicable
			}
			if !risk.Mitigation.IsValid() {
				risk.Mitigation = types.MitigationNone
			}

			risk.Gravity = scoring.Clamp(risk.Gravity)
			risk.Probability = scoring.Clamp(risk.Probability)
			risk.BrutScore = scoring.Brut(risk.Gravity, risk.Probability)
			risk.NetScore = scoring.Net(risk.Gravity, risk.Probability, risk.Mitigation)
			risk.Tier = scoring.Tier(risk.NetScore)
		}
	}

	doc.Summary.TopPriorities = topPriorities(doc)

	scenarios := budget.Scenarios(doc, uc.budgetOpts)
	doc.Summary.BudgetEstimate = budget.Format(scenarios.NetOfSubsidy, doc.Summary.BudgetEstimate)

	// Authoritative recount of the three severity counters
	scoring.ApplyHierarchy(doc)
}

// topPriorities ranks all risks by (net desc, brut desc, document order)
// and renders the first three as bounded "{danger} – {situation}" labels
func topPriorities(doc *model.RiskDocument) []string {
	var risks []*model.RiskRecord
	for ui := range doc.Units {
		for ri := range doc.Units[ui].Risks {
			risks = append(risks, &doc.Units[ui].Risks[ri])
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].NetScore != risks[j].NetScore {
			return risks[i].NetScore > risks[j].NetScore
		}
		return risks[i].BrutScore > risks[j].BrutScore
	})

	var labels []string
	for _, r := range risks {
		if len(labels) == topPriorityCount {
			break
		}
		labels = append(labels, priorityLabel(r))
	}
	return labels
}

func priorityLabel(r *model.RiskRecord) string {
	label := r.Danger
	if r.Situation != "" {
		label = fmt.Sprintf("%s – %s", r.Danger, r.Situation)
	}
	return truncate(label, maxPriorityLabelLen)
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes-1])) + "…"
}

// Validate is the strict conformance gate applied after sanitization.
// It returns a validation-tagged error describing the first violation.
func (uc *UseCases) Validate(doc *model.RiskDocument) error {
	for ui := range doc.Units {
		unit := &doc.Units[ui]
		if strings.TrimSpace(unit.Name) == "" {
			return goerr.New("work unit name is empty",
				goerr.T(types.ErrTagValidation), goerr.V("unit_index", ui))
		}

		seen := make(map[string]bool, len(unit.Risks))
		for ri := range unit.Risks {
			risk := &unit.Risks[ri]
			if risk.ID != "" && seen[risk.ID] {
				return goerr.New("duplicate risk identifier within unit",
					goerr.T(types.ErrTagValidation),
					goerr.V("unit", unit.Name), goerr.V("risk_id", risk.ID))
			}
			seen[risk.ID] = true

			if risk.Gravity < 0 || risk.Gravity > 4 {
				return goerr.New("gravity out of range",
					goerr.T(types.ErrTagValidation),
					goerr.V("unit", unit.Name), goerr.V("gravity", risk.Gravity))
			}
			if risk.Probability < 0 || risk.Probability > 4 {
				return goerr.New("probability out of range",
					goerr.T(types.ErrTagValidation),
					goerr.V("unit", unit.Name), goerr.V("probability", risk.Probability))
			}
			if risk.Workforce != nil && *risk.Workforce < 0 {
				return goerr.New("workforce count is negative",
					goerr.T(types.ErrTagValidation),
					goerr.V("unit", unit.Name), goerr.V("workforce", *risk.Workforce))
			}
		}
	}
	return nil
}
