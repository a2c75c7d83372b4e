package types_test

import (
	"testing"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

func TestCategorySlugValidate(t *testing.T) {
	tests := []struct {
		name    string
		slug    types.CategorySlug
		wantErr bool
	}{
		{name: "valid simple slug", slug: "incendie"},
		{name: "valid hyphenated slug", slug: "chute-hauteur"},
		{name: "valid with digits", slug: "covid-19"},
		{name: "empty slug", slug: "", wantErr: true},
		{name: "uppercase rejected", slug: "Incendie", wantErr: true},
		{name: "spaces rejected", slug: "chute hauteur", wantErr: true},
		{name: "leading hyphen rejected", slug: "-incendie", wantErr: true},
		{name: "trailing hyphen rejected", slug: "incendie-", wantErr: true},
		{name: "accents rejected", slug: "pénibilité", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slug.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMitigationFactor(t *testing.T) {
	tests := []struct {
		level  types.MitigationLevel
		factor float64
	}{
		{types.MitigationNone, 0},
		{types.MitigationPartial, 0.5},
		{types.MitigationGood, 0.7},
		{types.MitigationVeryGood, 0.9},
		{types.MitigationLevel(""), 0},
		{types.MitigationLevel("unknown"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := tt.level.Factor(); got != tt.factor {
				t.Errorf("Factor() = %v, want %v", got, tt.factor)
			}
		})
	}
}

func TestMitigationIsValid(t *testing.T) {
	valid := []types.MitigationLevel{
		types.MitigationNone,
		types.MitigationPartial,
		types.MitigationGood,
		types.MitigationVeryGood,
	}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("expected %q to be valid", m)
		}
	}
	if types.MitigationLevel("excellent").IsValid() {
		t.Error("expected unknown level to be invalid")
	}
}

func TestRelevanceTierValidate(t *testing.T) {
	for _, r := range []types.RelevanceTier{
		types.RelevanceDirect,
		types.RelevanceIndirect,
		types.RelevanceOutOfScope,
	} {
		if err := r.Validate(); err != nil {
			t.Errorf("unexpected error for %q: %v", r, err)
		}
	}
	if err := types.RelevanceTier("maybe").Validate(); err == nil {
		t.Error("expected error for unknown tier")
	}
}
