package usecase

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/taxonomy"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
)

var errNoGenerator = goerr.New("no text generator configured", goerr.T(types.ErrTagCollaborator))

//go:embed prompt/question_system.md
var questionSystemPrompt string

//go:embed prompt/clarify_system.md
var clarifySystemPrompt string

// Questioning bounds
const (
	defaultTargetCoverage = 0.8
	looseStopCoverage     = 0.6
	minNewQuestions       = 3
	maxNewQuestions       = 12
	defaultNewQuestions   = 6
	maxCandidates         = 24
)

// Fixed slot identifiers. These always count toward coverage, regardless
// of what the collaborator proposes.
const (
	slotHeadcount  = "headcount"
	slotMitigation = "mitigation"
)

// candidateSet is the collaborator's answer to a batch request
type candidateSet struct {
	Urgent        []candidateQuestion `json:"urgent"`
	Complementary []candidateQuestion `json:"complementary"`
}

type candidateQuestion struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Category string            `json:"category"`
	ShowIf   map[string]string `json:"show_if"`
}

type clarifySet struct {
	Questions []candidateQuestion `json:"questions"`
}

// NextQuestions runs one adaptive questioning turn. The caller supplies
// the full accumulated state and receives the next batch plus a
// stop/continue signal; no session state is retained between calls.
// Collaborator failures degrade to heuristic slot questions, never to an
// error.
func (uc *UseCases) NextQuestions(ctx context.Context, input model.QuestionInput) *model.QuestionBatch {
	logger := logging.From(ctx)

	target := input.TargetCoverage
	if target <= 0 {
		target = defaultTargetCoverage
	}
	if target > 1 {
		target = 1
	}
	maxNew := input.MaxNew
	if maxNew == 0 {
		maxNew = defaultNewQuestions
	}
	if maxNew < minNewQuestions {
		maxNew = minNewQuestions
	}
	if maxNew > maxNewQuestions {
		maxNew = maxNewQuestions
	}

	// Without sector and units there is nothing to seed question
	// generation with; ask for the context itself first.
	if strings.TrimSpace(input.Sector) == "" || len(input.Units) == 0 {
		return contextBatch(&input, maxNew)
	}

	detected := uc.taxonomy.Match(input.Sector + " " + strings.Join(input.Units, " ") + " " + strings.Join(input.Notes, " "))

	candidates, genErr := uc.generateCandidates(ctx, &input, detected)
	if genErr != nil {
		logger.Warn("question generation failed, falling back to heuristic questions",
			"error", genErr.Error())
		return uc.heuristicBatch(&input, maxNew, target)
	}

	urgent := toQuestions(candidates.Urgent, true)
	complementary := toQuestions(candidates.Complementary, false)

	coverage, missing := slotCoverage(&input, urgent)

	selected := selectQuestions(&input, urgent, complementary, maxNew)

	// Second-chance clarification call: coverage is short but every
	// candidate was filtered out.
	fallbackUsed := false
	if len(selected) == 0 && coverage < target {
		clarified, err := uc.generateClarifications(ctx, &input, missing)
		if err != nil {
			logger.Warn("clarification generation failed", "error", err.Error())
		} else {
			selected = clarified
			if len(selected) > maxNew {
				selected = selected[:maxNew]
			}
			fallbackUsed = true
		}
	}

	stop := coverage >= target || (len(selected) == 0 && coverage >= looseStopCoverage)

	return &model.QuestionBatch{
		Questions:      selected,
		Coverage:       coverage,
		MissingReasons: missing,
		Stop:           stop,
		Meta: map[string]any{
			"detected_categories": detected,
			"urgent_candidates":   len(candidates.Urgent),
			"total_candidates":    len(candidates.Urgent) + len(candidates.Complementary),
			"fallback":            fallbackUsed,
			"target":              target,
		},
	}
}

// contextBatch covers the NEEDS_CONTEXT state: sector or units missing
func contextBatch(input *model.QuestionInput, maxNew int) *model.QuestionBatch {
	statics := []model.Question{
		{ID: "context-sector", Text: "Quel est le secteur d'activité de l'entreprise ?", Urgent: true},
		{ID: "context-units", Text: "Quelles sont les unités de travail (atelier, magasin, bureau...) ?", Urgent: true},
		{ID: "context-size", Text: "Combien de salariés compte l'entreprise ?", Urgent: true},
	}

	var missing []string
	if strings.TrimSpace(input.Sector) == "" {
		missing = append(missing, "sector not provided")
	}
	if len(input.Units) == 0 {
		missing = append(missing, "work units not provided")
	}

	var questions []model.Question
	for _, q := range statics {
		if input.WasAsked(q.ID) || input.Answered(q.ID) {
			continue
		}
		if len(questions) == maxNew {
			break
		}
		questions = append(questions, q)
	}

	return &model.QuestionBatch{
		Questions:      questions,
		Coverage:       0,
		MissingReasons: missing,
		Stop:           false,
		Meta:           map[string]any{"state": "needs_context"},
	}
}

// heuristicBatch fills the fixed slots without any collaborator
func (uc *UseCases) heuristicBatch(input *model.QuestionInput, maxNew int, target float64) *model.QuestionBatch {
	coverage, missing := slotCoverage(input, nil)

	statics := []model.Question{
		{ID: slotHeadcount, Text: "Quel est l'effectif de chaque unité de travail ?", Urgent: true},
		{ID: slotMitigation, Text: "Des mesures de prévention sont-elles déjà en place pour les principaux risques ?", Urgent: true},
	}

	var questions []model.Question
	for _, q := range statics {
		if input.WasAsked(q.ID) || input.Answered(q.ID) {
			continue
		}
		if len(questions) == maxNew {
			break
		}
		questions = append(questions, q)
	}

	stop := coverage >= target || (len(questions) == 0 && coverage >= looseStopCoverage)

	return &model.QuestionBatch{
		Questions:      questions,
		Coverage:       coverage,
		MissingReasons: missing,
		Stop:           stop,
		Meta:           map[string]any{"fallback": true, "target": target},
	}
}

// slotCoverage computes answered/total over the slot model: two fixed
// slots plus one per distinct category that produced an urgent candidate
func slotCoverage(input *model.QuestionInput, urgent []model.Question) (float64, []string) {
	total := 2
	answered := 0
	var missing []string

	if slotAnswered(input, slotHeadcount) {
		answered++
	} else {
		missing = append(missing, "headcount per work unit not provided")
	}
	if slotAnswered(input, slotMitigation) {
		answered++
	} else {
		missing = append(missing, "existing mitigation level not confirmed")
	}

	seen := map[types.CategorySlug]bool{}
	for _, q := range urgent {
		if q.Category == "" || seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		total++
		if categoryAnswered(input, q.Category, urgent) {
			answered++
		} else {
			missing = append(missing, fmt.Sprintf("category not confirmed: %s", q.Category))
		}
	}

	return float64(answered) / float64(total), missing
}

// slotAnswered accepts both the canonical slot ID and prefixed variants
// ("headcount-fournil") that a generator may emit
func slotAnswered(input *model.QuestionInput, slot string) bool {
	for id := range input.Answers {
		if id == slot || strings.HasPrefix(id, slot+"-") {
			return true
		}
	}
	return false
}

// categoryAnswered reports whether any urgent candidate of the category
// was answered, or any answer ID references the category slug
func categoryAnswered(input *model.QuestionInput, slug types.CategorySlug, urgent []model.Question) bool {
	for _, q := range urgent {
		if q.Category == slug && input.Answered(q.ID) {
			return true
		}
	}
	for id := range input.Answers {
		if strings.Contains(id, string(slug)) {
			return true
		}
	}
	return false
}

// selectQuestions picks unanswered urgent candidates first, then
// complementary ones, honoring show-if preconditions, skipping already
// asked or duplicate IDs, and never exceeding maxNew
func selectQuestions(input *model.QuestionInput, urgent, complementary []model.Question, maxNew int) []model.Question {
	seen := map[string]bool{}
	var selected []model.Question

	pick := func(pool []model.Question) {
		for _, q := range pool {
			if len(selected) == maxNew {
				return
			}
			if q.ID == "" || seen[q.ID] {
				continue
			}
			if input.WasAsked(q.ID) || input.Answered(q.ID) {
				continue
			}
			if !showIfSatisfied(input, q.ShowIf) {
				continue
			}
			seen[q.ID] = true
			selected = append(selected, q)
		}
	}

	pick(urgent)
	pick(complementary)
	return selected
}

func showIfSatisfied(input *model.QuestionInput, showIf map[string]string) bool {
	for key, want := range showIf {
		if input.Answers == nil || input.Answers[key] != want {
			return false
		}
	}
	return true
}

func (uc *UseCases) generateCandidates(ctx context.Context, input *model.QuestionInput, detected []types.CategorySlug) (*candidateSet, error) {
	if uc.generator == nil {
		return nil, errNoGenerator
	}

	prompt, err := json.Marshal(map[string]any{
		"secteur":              input.Sector,
		"taille":               input.SizeClass,
		"unites_travail":       input.Units,
		"contexte":             input.Notes,
		"categories_detectees": detected,
		"questions_posees":     input.Asked,
		"reponses":             input.Answers,
	})
	if err != nil {
		return nil, err
	}

	raw, err := uc.generator.Generate(ctx, string(prompt), questionSystemPrompt)
	if err != nil {
		return nil, err
	}

	var set candidateSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, err
	}

	// Defensive caps even when the collaborator over-delivers
	if len(set.Urgent) > maxCandidates {
		set.Urgent = set.Urgent[:maxCandidates]
	}
	if len(set.Complementary) > maxCandidates {
		set.Complementary = set.Complementary[:maxCandidates]
	}
	return &set, nil
}

func (uc *UseCases) generateClarifications(ctx context.Context, input *model.QuestionInput, missing []string) ([]model.Question, error) {
	if uc.generator == nil {
		return nil, errNoGenerator
	}

	prompt, err := json.Marshal(map[string]any{
		"secteur":          input.Sector,
		"points_manquants": missing,
		"questions_posees": input.Asked,
	})
	if err != nil {
		return nil, err
	}

	raw, err := uc.generator.Generate(ctx, string(prompt), clarifySystemPrompt)
	if err != nil {
		return nil, err
	}

	var set clarifySet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, err
	}

	var out []model.Question
	seen := map[string]bool{}
	for _, q := range toQuestions(set.Questions, true) {
		if q.ID == "" || seen[q.ID] || input.WasAsked(q.ID) || input.Answered(q.ID) {
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out, nil
}

// toQuestions coerces raw candidates into domain questions, deriving a
// slug ID from the text when the collaborator omitted one
func toQuestions(raw []candidateQuestion, urgent bool) []model.Question {
	var out []model.Question
	for _, c := range raw {
		text := truncate(strings.TrimSpace(c.Text), maxTextLen)
		if text == "" {
			continue
		}
		id := taxonomy.Slugify(c.ID)
		if id == "" {
			id = clipSlug(taxonomy.Slugify(text), 40)
		}
		out = append(out, model.Question{
			ID:       id,
			Text:     text,
			Category: taxonomy.SlugOf(c.Category),
			Urgent:   urgent,
			ShowIf:   c.ShowIf,
		})
	}
	return out
}

func clipSlug(slug string, maxLen int) string {
	if len(slug) <= maxLen {
		return slug
	}
	return strings.TrimRight(slug[:maxLen], "-")
}
