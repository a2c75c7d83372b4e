package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/taxonomy"
	"github.com/prevanto-lab/duerpcore/pkg/usecase"
)

// genFunc adapts a plain function to the TextGenerator interface
type genFunc func(ctx context.Context, prompt, systemPrompt string) ([]byte, error)

func (f genFunc) Generate(ctx context.Context, prompt, systemPrompt string) ([]byte, error) {
	return f(ctx, prompt, systemPrompt)
}

func bakeryTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tx, err := taxonomy.New([]model.CategoryDefinition{
		{
			Slug:      "incendie",
			Relevance: types.RelevanceDirect,
			Keywords:  []types.CategorySlug{"four", "extincteur"},
		},
		{
			Slug:      "chimique",
			Relevance: types.RelevanceDirect,
			Keywords:  []types.CategorySlug{"farine", "solvant"},
		},
		{
			Slug:      "manutention-manuelle",
			Aliases:   []types.CategorySlug{"manutention"},
			Relevance: types.RelevanceDirect,
			Keywords:  []types.CategorySlug{"port-de-charges", "sacs"},
		},
	})
	gt.NoError(t, err).Required()
	return tx
}

// seqIDs returns a deterministic ID source: u1, u2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newTestUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	base := []usecase.Option{
		usecase.WithTaxonomy(bakeryTaxonomy(t)),
		usecase.WithClock(fixedClock()),
		usecase.WithIDSource(seqIDs()),
	}
	return usecase.New(append(base, opts...)...)
}
