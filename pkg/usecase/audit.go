package usecase

import (
	"context"
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/scoring"
	"github.com/prevanto-lab/duerpcore/pkg/service/taxonomy"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
)

//go:embed prompt/rewrite_system.md
var rewriteSystemPrompt string

// Audit issue codes
const (
	IssueHardshipUnset      = "hardship_unset"
	IssueNoMeasures         = "no_measures"
	IssueMeasureNoReference = "measure_missing_reference"
	IssueMeasureNoType      = "measure_missing_type"
	IssueMeasureNoDelay     = "measure_missing_delay"
	IssueMeasureNotSmart    = "measure_not_smart"
)

// Score penalties per issue severity
const (
	penaltyCritical = 25
	penaltyMajor    = 10
	penaltyMinor    = 3
)

// smartVerbs is the whitelist of opening action verbs (slugified) that
// qualify a measure description as actionable
var smartVerbs = map[string]bool{
	"mettre": true, "installer": true, "former": true, "organiser": true,
	"afficher": true, "fournir": true, "etablir": true, "planifier": true,
	"verifier": true, "controler": true, "remplacer": true, "nommer": true,
	"definir": true, "realiser": true, "sensibiliser": true, "baliser": true,
	"equiper": true, "proposer": true, "limiter": true, "isoler": true,
}

// Audit normalizes the document, measures category coverage against the
// taxonomy, runs the deterministic rule pass, requests best-effort AI
// rewrites for not-SMART measures, and scores the result. Only the
// validation gate can fail; the rewrite collaborator never blocks report
// generation.
func (uc *UseCases) Audit(ctx context.Context, doc model.RiskDocument, contextClues string) (*model.AuditReport, error) {
	normalized := doc.Clone()
	uc.Normalize(&normalized)
	if err := uc.Validate(&normalized); err != nil {
		return nil, goerr.Wrap(err, "document failed validation before audit")
	}

	report := &model.AuditReport{
		Coverage: uc.coverage(&normalized, contextClues),
	}
	report.Issues = uc.rulePass(&normalized)

	uc.requestRewrites(ctx, &normalized, report)

	counts := map[types.IssueSeverity]int{}
	for _, issue := range report.Issues {
		counts[issue.Severity]++
	}
	score := 100 -
		penaltyCritical*counts[types.IssueCritical] -
		penaltyMajor*counts[types.IssueMajor] -
		penaltyMinor*counts[types.IssueMinor]
	if score < 0 {
		score = 0
	}
	report.Summary = model.AuditSummary{IssueCounts: counts, Score: score}

	return report, nil
}

// coverage matches the taxonomy twice: context clues tell what should be
// covered, the risk corpus tells what is. Ratio is vacuously 1.0 when
// nothing was detected.
func (uc *UseCases) coverage(doc *model.RiskDocument, contextClues string) model.AuditCoverage {
	var clues strings.Builder
	clues.WriteString(doc.Sector)
	clues.WriteString(" ")
	clues.WriteString(contextClues)
	for _, unit := range doc.Units {
		clues.WriteString(" ")
		clues.WriteString(unit.Name)
	}

	var corpus strings.Builder
	for _, unit := range doc.Units {
		for _, risk := range unit.Risks {
			corpus.WriteString(risk.Danger)
			corpus.WriteString(" ")
			corpus.WriteString(risk.Situation)
			corpus.WriteString(" ")
			for _, m := range risk.ExistingMeasures {
				corpus.WriteString(m)
				corpus.WriteString(" ")
			}
			for _, m := range risk.Measures {
				corpus.WriteString(m.Description)
				corpus.WriteString(" ")
			}
		}
	}

	detected := uc.taxonomy.Match(clues.String())
	present := make(map[types.CategorySlug]bool)
	for _, slug := range uc.taxonomy.Match(corpus.String()) {
		present[slug] = true
	}

	cov := model.AuditCoverage{Detected: detected, Ratio: 1.0}
	for _, slug := range detected {
		if present[slug] {
			cov.Covered = append(cov.Covered, slug)
		} else {
			cov.Missing = append(cov.Missing, slug)
		}
	}
	if len(detected) > 0 {
		cov.Ratio = float64(len(cov.Covered)) / float64(len(detected))
	}
	return cov
}

func (uc *UseCases) rulePass(doc *model.RiskDocument) []model.AuditIssue {
	var issues []model.AuditIssue

	for _, unit := range doc.Units {
		for _, risk := range unit.Risks {
			riskPath := model.IssuePath{UnitID: unit.ID, RiskID: risk.ID, MeasureIndex: -1}

			if risk.Hardship == nil {
				issues = append(issues, model.AuditIssue{
					Code:     IssueHardshipUnset,
					Severity: types.IssueMinor,
					Message:  "hardship (pénibilité) flag was never assessed",
					Path:     riskPath,
				})
			}

			if risk.NetScore >= scoring.ThresholdImportant && len(risk.Measures) == 0 {
				severity := types.IssueMajor
				if risk.NetScore >= scoring.ThresholdCritical {
					severity = types.IssueCritical
				}
				issues = append(issues, model.AuditIssue{
					Code:     IssueNoMeasures,
					Severity: severity,
					Message:  "high net score without any proposed measure",
					Path:     riskPath,
				})
			}

			for mi, m := range risk.Measures {
				path := model.IssuePath{UnitID: unit.ID, RiskID: risk.ID, MeasureIndex: mi}

				if m.Reference == "" {
					issues = append(issues, model.AuditIssue{
						Code:     IssueMeasureNoReference,
						Severity: types.IssueMinor,
						Message:  "measure has no regulatory reference",
						Path:     path,
					})
				}
				if !m.Type.IsValid() {
					issues = append(issues, model.AuditIssue{
						Code:     IssueMeasureNoType,
						Severity: types.IssueMinor,
						Message:  "measure has no type (collective/individual/training)",
						Path:     path,
					})
				}
				if m.Delay == "" {
					issues = append(issues, model.AuditIssue{
						Code:     IssueMeasureNoDelay,
						Severity: types.IssueMinor,
						Message:  "measure has no implementation delay",
						Path:     path,
					})
				}
				if !isSmart(&risk, &m) {
					issues = append(issues, model.AuditIssue{
						Code:     IssueMeasureNotSmart,
						Severity: types.IssueMajor,
						Message:  "measure lacks action verb, responsible, due date and indicator",
						Path:     path,
					})
				}
			}
		}
	}

	return issues
}

// isSmart reports whether a measure satisfies at least one SMART trait:
// an opening action verb, or a responsible party, due date or indicator on
// the parent risk. A measure lacking all four is flagged.
func isSmart(risk *model.RiskRecord, m *model.Measure) bool {
	slug := taxonomy.Slugify(m.Description)
	first, _, _ := strings.Cut(slug, "-")
	if smartVerbs[first] {
		return true
	}
	return risk.FollowUp.Responsible != "" ||
		risk.FollowUp.DueDate != "" ||
		risk.FollowUp.Indicator != ""
}

type rewriteItem struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

type rewriteResponse struct {
	Rewrites []struct {
		Path       string `json:"path"`
		Suggestion string `json:"suggestion"`
	} `json:"rewrites"`
}

// requestRewrites asks the collaborator for SMART-compliant replacements
// of up to rewriteCap not-SMART measures. Any failure is logged and the
// report proceeds without suggestions.
func (uc *UseCases) requestRewrites(ctx context.Context, doc *model.RiskDocument, report *model.AuditReport) {
	if uc.generator == nil {
		return
	}
	logger := logging.From(ctx)

	var items []rewriteItem
	targets := make(map[string]*model.AuditIssue)
	for i := range report.Issues {
		issue := &report.Issues[i]
		if issue.Code != IssueMeasureNotSmart {
			continue
		}
		if len(items) == uc.rewriteCap {
			break
		}
		items = append(items, rewriteItem{
			Path:        issue.Path.String(),
			Description: measureDescription(doc, issue.Path),
		})
		targets[issue.Path.String()] = issue
	}
	if len(items) == 0 {
		return
	}

	prompt, err := json.Marshal(map[string]any{"measures": items})
	if err != nil {
		logger.Warn("failed to build rewrite prompt", "error", err.Error())
		return
	}

	raw, err := uc.generator.Generate(ctx, string(prompt), rewriteSystemPrompt)
	if err != nil {
		logger.Warn("AI rewrite skipped", "error", err.Error())
		return
	}

	var resp rewriteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logger.Warn("AI rewrite response unparsable, skipping", "error", err.Error())
		return
	}

	for _, rw := range resp.Rewrites {
		if issue, ok := targets[rw.Path]; ok && strings.TrimSpace(rw.Suggestion) != "" {
			issue.Suggestion = truncate(strings.TrimSpace(rw.Suggestion), maxTextLen)
		}
	}
}

func measureDescription(doc *model.RiskDocument, path model.IssuePath) string {
	for _, unit := range doc.Units {
		if unit.ID != path.UnitID {
			continue
		}
		for _, risk := range unit.Risks {
			if risk.ID != path.RiskID {
				continue
			}
			if path.MeasureIndex >= 0 && path.MeasureIndex < len(risk.Measures) {
				return risk.Measures[path.MeasureIndex].Description
			}
		}
	}
	return ""
}
