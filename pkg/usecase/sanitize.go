package usecase

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/taxonomy"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
)

// Caps applied during candidate sanitization. Anything beyond them is
// truncated or dropped with a warning, never an error.
const (
	maxTextLen  = 500
	maxLabelLen = 200
	maxUnits    = 50
	maxRisks    = 100
	maxMeasures = 20
	maxStrings  = 50
)

// SanitizeCandidate ingests untrusted generator output into a document.
// It is a total function over JSON-shaped input: every field is coerced to
// its expected type with length caps, unknown shapes are dropped, and the
// worst possible input degrades to an empty-but-valid document. The strict
// schema gate (Validate) is a separate, explicit step.
//
// Both canonical keys and the French wire keys of the generator prompts
// (unites_travail, risques, gravite, probabilite, maitrise, ...) are
// accepted.
func (uc *UseCases) SanitizeCandidate(ctx context.Context, raw []byte) model.RiskDocument {
	logger := logging.From(ctx)

	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		logger.Warn("candidate document is not a JSON object, degrading to empty document",
			"error", err.Error())
		return model.RiskDocument{}
	}

	doc := model.RiskDocument{
		Sector: fieldText(root, maxLabelLen, "sector", "secteur"),
	}

	units := fieldList(root, "units", "unites_travail", "unites")
	if len(units) > maxUnits {
		logger.Warn("unit list truncated", "got", len(units), "cap", maxUnits)
		units = units[:maxUnits]
	}

	for _, rawUnit := range units {
		u, ok := rawUnit.(map[string]any)
		if !ok {
			logger.Warn("dropping non-object work unit")
			continue
		}
		unit := model.WorkUnit{
			ID:   fieldText(u, maxLabelLen, "id"),
			Name: fieldText(u, maxLabelLen, "name", "nom"),
		}

		risks := fieldList(u, "risks", "risques")
		if len(risks) > maxRisks {
			logger.Warn("risk list truncated", "unit", unit.Name, "got", len(risks), "cap", maxRisks)
			risks = risks[:maxRisks]
		}
		for _, rawRisk := range risks {
			r, ok := rawRisk.(map[string]any)
			if !ok {
				logger.Warn("dropping non-object risk", "unit", unit.Name)
				continue
			}
			unit.Risks = append(unit.Risks, uc.sanitizeRisk(ctx, r))
		}

		doc.Units = append(doc.Units, unit)
	}

	if s, ok := fieldMap(root, "summary", "synthese"); ok {
		doc.Summary.Strengths = fieldStrings(s, maxTextLen, "strengths", "points_forts")
		doc.Summary.Weaknesses = fieldStrings(s, maxTextLen, "weaknesses", "points_faibles")
	}

	return doc
}

func (uc *UseCases) sanitizeRisk(ctx context.Context, r map[string]any) model.RiskRecord {
	risk := model.RiskRecord{
		ID:          fieldText(r, maxLabelLen, "id"),
		Danger:      fieldText(r, maxTextLen, "danger"),
		Situation:   fieldText(r, maxTextLen, "situation", "situation_exposition"),
		Gravity:     clampOrdinal(fieldNumber(r, "gravity", "gravite")),
		Probability: clampOrdinal(fieldNumber(r, "probability", "probabilite")),
		Mitigation:  parseMitigation(fieldText(r, maxLabelLen, "mitigation", "maitrise")),
		Applicable:  fieldBool(r, "applicable"),
		Hardship:    fieldBool(r, "hardship", "penibilite"),
	}

	if n, ok := fieldNumber(r, "workforce", "effectif_concerne", "effectif"); ok {
		if n < 0 {
			n = 0
		}
		risk.Workforce = &n
	}

	risk.ExistingMeasures = fieldStrings(r, maxTextLen, "existing_measures", "mesures_existantes")

	measures := fieldList(r, "measures", "mesures_proposees", "mesures")
	if len(measures) > maxMeasures {
		logging.From(ctx).Warn("measure list truncated", "got", len(measures), "cap", maxMeasures)
		measures = measures[:maxMeasures]
	}
	for _, rawMeasure := range measures {
		m, ok := rawMeasure.(map[string]any)
		if !ok {
			continue
		}
		risk.Measures = append(risk.Measures, model.Measure{
			Type:        parseMeasureType(fieldText(m, maxLabelLen, "type")),
			Description: fieldText(m, maxTextLen, "description"),
			Delay:       fieldText(m, maxLabelLen, "delay", "delai"),
			Cost:        fieldText(m, maxLabelLen, "cost", "cout"),
			Reference:   fieldText(m, maxLabelLen, "reference", "reference_reglementaire"),
		})
	}

	if f, ok := fieldMap(r, "follow_up", "suivi"); ok {
		risk.FollowUp = model.FollowUp{
			Responsible:  fieldText(f, maxLabelLen, "responsible", "responsable"),
			DueDate:      fieldText(f, maxLabelLen, "due_date", "echeance"),
			Indicator:    fieldText(f, maxLabelLen, "indicator", "indicateur"),
			DecisionDate: fieldText(f, maxLabelLen, "decision_date", "date_decision"),
			DoneDate:     fieldText(f, maxLabelLen, "done_date", "date_realisation"),
		}
	}

	return risk
}

// fieldText returns the first present key coerced to a bounded string.
// Numbers are rendered, other shapes drop to "".
func fieldText(m map[string]any, maxRunes int, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return truncate(strings.TrimSpace(t), maxRunes)
		case float64:
			if t == math.Trunc(t) {
				return strconv.FormatInt(int64(t), 10)
			}
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	}
	return ""
}

// fieldNumber coerces to int, accepting JSON numbers and digit strings
func fieldNumber(m map[string]any, keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return int(t), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func fieldBool(m map[string]any, keys ...string) *bool {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if b, ok := v.(bool); ok {
				return &b
			}
		}
	}
	return nil
}

func fieldList(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if list, ok := v.([]any); ok {
				return list
			}
		}
	}
	return nil
}

func fieldMap(m map[string]any, keys ...string) (map[string]any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if sub, ok := v.(map[string]any); ok {
				return sub, true
			}
		}
	}
	return nil, false
}

func fieldStrings(m map[string]any, maxRunes int, keys ...string) []string {
	var out []string
	for _, v := range fieldList(m, keys...) {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, truncate(strings.TrimSpace(s), maxRunes))
		}
		if len(out) == maxStrings {
			break
		}
	}
	return out
}

// clampOrdinal folds a possibly-missing ordinal into [1,4]
func clampOrdinal(n int, ok bool) int {
	if !ok || n < 1 {
		return 1
	}
	if n > 4 {
		return 4
	}
	return n
}

func parseMitigation(s string) types.MitigationLevel {
	switch taxonomy.Slugify(s) {
	case "partial", "partielle", "partiel", "moyenne":
		return types.MitigationPartial
	case "good", "bonne", "bon":
		return types.MitigationGood
	case "very-good", "tres-bonne", "tres-bon", "excellente":
		return types.MitigationVeryGood
	default:
		return types.MitigationNone
	}
}

func parseMeasureType(s string) types.MeasureType {
	switch taxonomy.Slugify(s) {
	case "collective", "collectif":
		return types.MeasureCollective
	case "individual", "individuelle", "individuel":
		return types.MeasureIndividual
	case "training", "formation":
		return types.MeasureTraining
	default:
		// left empty; the audit flags measures without a type
		return ""
	}
}
