// Package usecase hosts the three document-level operations of the engine:
// candidate sanitization + normalization, register auditing, and adaptive
// questioning. Each call operates on its own document value; nothing here
// holds mutable cross-call state.
package usecase

import (
	"time"

	"github.com/prevanto-lab/duerpcore/pkg/domain/interfaces"
	"github.com/prevanto-lab/duerpcore/pkg/service/budget"
	"github.com/prevanto-lab/duerpcore/pkg/service/taxonomy"
)

const defaultRewriteCap = 12

type UseCases struct {
	taxonomy   *taxonomy.Taxonomy
	generator  interfaces.TextGenerator
	budgetOpts budget.Options
	rewriteCap int
	now        func() time.Time
	newID      func() string
}

type Option func(*UseCases)

// WithTaxonomy injects the category registry used for coverage analysis
// and question seeding
func WithTaxonomy(tx *taxonomy.Taxonomy) Option {
	return func(uc *UseCases) {
		uc.taxonomy = tx
	}
}

// WithGenerator injects the LLM collaborator. Without it, the AI rewrite
// step is skipped and questioning falls back to heuristic defaults.
func WithGenerator(g interfaces.TextGenerator) Option {
	return func(uc *UseCases) {
		uc.generator = g
	}
}

// WithBudgetOptions overrides tax/subsidy rates for the budget scenarios
func WithBudgetOptions(opts budget.Options) Option {
	return func(uc *UseCases) {
		uc.budgetOpts = opts
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithIDSource overrides the identifier generator
func WithIDSource(newID func() string) Option {
	return func(uc *UseCases) {
		uc.newID = newID
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		rewriteCap: defaultRewriteCap,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}

	if uc.taxonomy == nil {
		// degraded mode: empty vocabulary, Match finds nothing
		uc.taxonomy, _ = taxonomy.New(nil)
	}
	if uc.newID == nil {
		uc.newID = randomID
	}
	return uc
}
