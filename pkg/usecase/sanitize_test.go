package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

func TestSanitizeCandidate(t *testing.T) {
	uc := newTestUseCases(t)
	ctx := context.Background()

	raw := []byte(`{
		"secteur": "Boulangerie artisanale",
		"unites_travail": [
			{
				"nom": "Fournil",
				"risques": [
					{
						"danger": "Brûlure au four",
						"situation_exposition": "enfournement manuel",
						"gravite": 3,
						"probabilite": "2",
						"maitrise": "bonne",
						"penibilite": true,
						"effectif_concerne": 4,
						"mesures_existantes": ["gants anti-chaleur", ""],
						"mesures_proposees": [
							{
								"type": "formation",
								"description": "Former les salariés aux gestes d'enfournement",
								"delai": "3 mois",
								"cout": "500-1000€",
								"reference_reglementaire": "R4323-104"
							}
						],
						"suivi": {
							"responsable": "Chef de production",
							"echeance": "2025-06-30",
							"indicateur": "nombre de brûlures déclarées"
						}
					}
				]
			}
		]
	}`)

	doc := uc.SanitizeCandidate(ctx, raw)

	gt.Value(t, doc.Sector).Equal("Boulangerie artisanale")
	gt.Array(t, doc.Units).Length(1).Required()
	gt.Value(t, doc.Units[0].Name).Equal("Fournil")
	gt.Array(t, doc.Units[0].Risks).Length(1).Required()

	risk := doc.Units[0].Risks[0]
	gt.Value(t, risk.Danger).Equal("Brûlure au four")
	gt.Value(t, risk.Situation).Equal("enfournement manuel")
	gt.Number(t, risk.Gravity).Equal(3)
	gt.Number(t, risk.Probability).Equal(2)
	gt.Value(t, risk.Mitigation).Equal(types.MitigationGood)
	gt.B(t, *risk.Hardship).True()
	gt.Number(t, *risk.Workforce).Equal(4)
	gt.Array(t, risk.ExistingMeasures).Equal([]string{"gants anti-chaleur"})

	gt.Array(t, risk.Measures).Length(1).Required()
	m := risk.Measures[0]
	gt.Value(t, m.Type).Equal(types.MeasureTraining)
	gt.Value(t, m.Description).Equal("Former les salariés aux gestes d'enfournement")
	gt.Value(t, m.Delay).Equal("3 mois")
	gt.Value(t, m.Cost).Equal("500-1000€")
	gt.Value(t, m.Reference).Equal("R4323-104")

	gt.Value(t, risk.FollowUp.Responsible).Equal("Chef de production")
	gt.Value(t, risk.FollowUp.DueDate).Equal("2025-06-30")
	gt.Value(t, risk.FollowUp.Indicator).Equal("nombre de brûlures déclarées")
}

func TestSanitizeCandidateSummary(t *testing.T) {
	uc := newTestUseCases(t)

	raw := []byte(`{
		"secteur": "garage",
		"synthese": {
			"points_forts": ["EPI fournis et portés"],
			"points_faibles": ["aucun suivi des contrôles électriques"]
		}
	}`)
	doc := uc.SanitizeCandidate(context.Background(), raw)

	gt.Array(t, doc.Summary.Strengths).Equal([]string{"EPI fournis et portés"})
	gt.Array(t, doc.Summary.Weaknesses).Equal([]string{"aucun suivi des contrôles électriques"})
}

func TestSanitizeCandidateMalformed(t *testing.T) {
	uc := newTestUseCases(t)
	ctx := context.Background()

	t.Run("invalid JSON degrades to empty document", func(t *testing.T) {
		doc := uc.SanitizeCandidate(ctx, []byte("pas du json"))
		gt.Value(t, doc.Sector).Equal("")
		gt.Number(t, doc.RiskCount()).Equal(0)
	})

	t.Run("wrong shapes are dropped, not fatal", func(t *testing.T) {
		raw := []byte(`{
			"secteur": 42,
			"unites_travail": [
				"pas un objet",
				{"nom": "Atelier", "risques": ["pas un objet", {"danger": "Bruit"}]}
			]
		}`)
		doc := uc.SanitizeCandidate(ctx, raw)
		gt.Value(t, doc.Sector).Equal("42")
		gt.Array(t, doc.Units).Length(1).Required()
		gt.Array(t, doc.Units[0].Risks).Length(1)
		gt.Value(t, doc.Units[0].Risks[0].Danger).Equal("Bruit")
	})

	t.Run("ordinals clamp to range", func(t *testing.T) {
		raw := []byte(`{"unites_travail":[{"nom":"A","risques":[
			{"danger":"x","gravite":12,"probabilite":-3},
			{"danger":"y"}
		]}]}`)
		doc := uc.SanitizeCandidate(ctx, raw)
		gt.Number(t, doc.Units[0].Risks[0].Gravity).Equal(4)
		gt.Number(t, doc.Units[0].Risks[0].Probability).Equal(1)
		gt.Number(t, doc.Units[0].Risks[1].Gravity).Equal(1)
	})

	t.Run("unknown mitigation falls back to none", func(t *testing.T) {
		raw := []byte(`{"unites_travail":[{"nom":"A","risques":[{"danger":"x","maitrise":"inconnue"}]}]}`)
		doc := uc.SanitizeCandidate(ctx, raw)
		gt.Value(t, doc.Units[0].Risks[0].Mitigation).Equal(types.MitigationNone)
	})
}

func TestSanitizeCandidateCaps(t *testing.T) {
	uc := newTestUseCases(t)
	ctx := context.Background()

	var units []map[string]any
	for i := 0; i < 60; i++ {
		units = append(units, map[string]any{"nom": fmt.Sprintf("Unité %d", i)})
	}
	raw, err := json.Marshal(map[string]any{"unites_travail": units})
	gt.NoError(t, err).Required()

	doc := uc.SanitizeCandidate(ctx, raw)
	gt.Array(t, doc.Units).Length(50)
}
