package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/usecase"
)

func auditFixture() model.RiskDocument {
	yes := true
	return model.RiskDocument{
		Sector: "boulangerie",
		Units: []model.WorkUnit{
			{
				ID:   "fournil",
				Name: "Fournil",
				Risks: []model.RiskRecord{
					{
						// critical: net 12, no measures, hardship unset
						ID:          "r-four",
						Danger:      "Brûlure au four",
						Gravity:     4,
						Probability: 3,
					},
					{
						// complete measure: no findings
						ID:          "r-farine",
						Danger:      "Inhalation de farine",
						Gravity:     2,
						Probability: 3,
						Hardship:    &yes,
						Measures: []model.Measure{
							{
								Type:        types.MeasureCollective,
								Description: "Installer une aspiration à la source",
								Delay:       "6 mois",
								Reference:   "R4412-1",
							},
						},
						FollowUp: model.FollowUp{Responsible: "Gérant"},
					},
				},
			},
		},
	}
}

func TestAuditScore(t *testing.T) {
	uc := newTestUseCases(t)

	doc := auditFixture()
	// Degrade the second risk's measure: no type, no delay, no reference,
	// not SMART. One major and three minors on top of the first risk's
	// critical (no measures) and minor (hardship unset).
	doc.Units[0].Risks[1].Measures[0] = model.Measure{Description: "la poussière"}
	doc.Units[0].Risks[1].FollowUp = model.FollowUp{}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()

	counts := report.Summary.IssueCounts
	gt.Number(t, counts[types.IssueCritical]).Equal(1)
	gt.Number(t, counts[types.IssueMajor]).Equal(1)
	gt.Number(t, counts[types.IssueMinor]).Equal(4)

	// 100 - 25*1 - 10*1 - 3*4
	gt.Number(t, report.Summary.Score).Equal(53)
}

func TestAuditScoreFormula(t *testing.T) {
	uc := newTestUseCases(t)

	yes := true
	doc := model.RiskDocument{
		Units: []model.WorkUnit{
			{
				ID:   "u",
				Name: "Atelier",
				Risks: []model.RiskRecord{
					{
						// 1 critical: net 16 and no measures
						ID:          "r-crit",
						Danger:      "Chute de hauteur",
						Gravity:     4,
						Probability: 4,
						Hardship:    &yes,
					},
					{
						// 2 majors: two complete but non-SMART measures
						ID:          "r-major",
						Danger:      "Bruit",
						Gravity:     2,
						Probability: 2,
						Hardship:    &yes,
						Measures: []model.Measure{
							{Type: types.MeasureCollective, Description: "un capot", Delay: "1 mois", Reference: "R4431-1"},
							{Type: types.MeasureIndividual, Description: "des casques", Delay: "1 mois", Reference: "R4431-2"},
						},
					},
					{
						// 3 minors: hardship unset plus one SMART measure
						// missing its reference and delay
						ID:          "r-minor",
						Danger:      "Écran",
						Gravity:     1,
						Probability: 2,
						Measures: []model.Measure{
							{Type: types.MeasureIndividual, Description: "Installer un support d'écran réglable"},
						},
					},
				},
			},
		},
	}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()

	counts := report.Summary.IssueCounts
	gt.Number(t, counts[types.IssueCritical]).Equal(1)
	gt.Number(t, counts[types.IssueMajor]).Equal(2)
	gt.Number(t, counts[types.IssueMinor]).Equal(3)
	gt.Number(t, report.Summary.Score).Equal(46)
}

func TestAuditScoreFloor(t *testing.T) {
	uc := newTestUseCases(t)

	doc := model.RiskDocument{
		Units: []model.WorkUnit{{ID: "u", Name: "Atelier"}},
	}
	for i := 0; i < 5; i++ {
		doc.Units[0].Risks = append(doc.Units[0].Risks, model.RiskRecord{
			ID:          "r" + string(rune('a'+i)),
			Danger:      "Danger",
			Gravity:     4,
			Probability: 4,
		})
	}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()

	// 5 criticals and 5 minors exceed 100 points
	gt.Number(t, report.Summary.Score).Equal(0)
}

func TestAuditCleanDocument(t *testing.T) {
	uc := newTestUseCases(t)

	doc := auditFixture()
	yes := true
	doc.Units[0].Risks[0].Hardship = &yes
	doc.Units[0].Risks[0].Measures = []model.Measure{
		{
			Type:        types.MeasureTraining,
			Description: "Former les salariés à l'enfournement",
			Delay:       "3 mois",
			Reference:   "R4323-104",
		},
	}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()

	gt.Array(t, report.Issues).Length(0)
	gt.Number(t, report.Summary.Score).Equal(100)
}

func TestAuditCoverage(t *testing.T) {
	uc := newTestUseCases(t)

	doc := auditFixture()
	report, err := uc.Audit(context.Background(), doc, "four à pain, sacs de farine, manutention quotidienne")
	gt.NoError(t, err).Required()

	cov := report.Coverage
	// incendie (four), chimique (farine) and manutention-manuelle are all
	// detected from the clues; manutention has no matching risk content.
	gt.Array(t, cov.Detected).Length(3)
	gt.Array(t, cov.Missing).Equal([]types.CategorySlug{"manutention-manuelle"})
	gt.Number(t, cov.Ratio).Equal(2.0 / 3.0)
}

func TestAuditCoverageVacuous(t *testing.T) {
	uc := newTestUseCases(t)

	doc := model.RiskDocument{
		Sector: "conseil",
		Units: []model.WorkUnit{
			{ID: "u", Name: "Bureau", Risks: []model.RiskRecord{
				{ID: "r", Danger: "Fatigue visuelle", Gravity: 1, Probability: 2},
			}},
		},
	}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()

	gt.Array(t, report.Coverage.Detected).Length(0)
	gt.Number(t, report.Coverage.Ratio).Equal(1.0)
}

func TestAuditRewrites(t *testing.T) {
	var gotSystem string
	gen := genFunc(func(_ context.Context, prompt, systemPrompt string) ([]byte, error) {
		gotSystem = systemPrompt
		return []byte(`{"rewrites":[
			{"path":"fournil/r-farine/measure[0]","suggestion":"Installer une aspiration à la source avant fin juin, suivi mensuel"},
			{"path":"inconnu/xx/measure[9]","suggestion":"ignorée"}
		]}`), nil
	})
	uc := newTestUseCases(t, usecase.WithGenerator(gen))

	doc := auditFixture()
	doc.Units[0].Risks[1].Measures[0].Description = "la poussière"
	doc.Units[0].Risks[1].FollowUp = model.FollowUp{}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()
	gt.B(t, gotSystem != "").True()

	var smart *model.AuditIssue
	for i := range report.Issues {
		if report.Issues[i].Code == usecase.IssueMeasureNotSmart {
			smart = &report.Issues[i]
		}
	}
	gt.Value(t, smart).NotNil().Required()
	gt.Value(t, smart.Suggestion).Equal("Installer une aspiration à la source avant fin juin, suivi mensuel")
}

func TestAuditRewriteFailureTolerated(t *testing.T) {
	gen := genFunc(func(_ context.Context, _, _ string) ([]byte, error) {
		return nil, errors.New("model unavailable")
	})
	uc := newTestUseCases(t, usecase.WithGenerator(gen))

	doc := auditFixture()
	doc.Units[0].Risks[1].Measures[0].Description = "la poussière"
	doc.Units[0].Risks[1].FollowUp = model.FollowUp{}

	report, err := uc.Audit(context.Background(), doc, "")
	gt.NoError(t, err).Required()

	for _, issue := range report.Issues {
		gt.Value(t, issue.Suggestion).Equal("")
	}
}

func TestAuditRejectsInvalidDocument(t *testing.T) {
	uc := newTestUseCases(t)

	doc := model.RiskDocument{
		Units: []model.WorkUnit{{Name: ""}},
	}

	_, err := uc.Audit(context.Background(), doc, "")
	gt.Error(t, err)
	gt.B(t, goerr.HasTag(err, types.ErrTagValidation)).True()
}
