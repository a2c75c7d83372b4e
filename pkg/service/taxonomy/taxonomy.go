package taxonomy

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/prevanto-lab/duerpcore/pkg/domain/interfaces"
	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// DefaultSlug is the catch-all category that unknown names fold into when
// runtime auto-creation is disabled.
const DefaultSlug types.CategorySlug = "organisationnel"

// Taxonomy is the process-wide registry of risk categories. It is built
// once at startup and read-mostly afterwards; Match, Get and All are safe
// for unsynchronized concurrent reads, Register and Ensure take the write
// lock since runtime registration is permitted.
type Taxonomy struct {
	mu    sync.RWMutex
	defs  map[types.CategorySlug]*model.CategoryDefinition
	order []types.CategorySlug

	autoCreate      bool
	includeIndirect bool
	now             func() time.Time
}

// Option configures a Taxonomy
type Option func(*Taxonomy)

// WithAutoCreate allows Ensure to synthesize unknown categories at runtime
func WithAutoCreate() Option {
	return func(tx *Taxonomy) {
		tx.autoCreate = true
	}
}

// WithIndirect includes indirect-tier categories in Match results
func WithIndirect() Option {
	return func(tx *Taxonomy) {
		tx.includeIndirect = true
	}
}

// WithClock overrides the timestamp source for auto-created definitions
func WithClock(now func() time.Time) Option {
	return func(tx *Taxonomy) {
		tx.now = now
	}
}

// New builds a taxonomy from the given definitions. Definitions are
// validated; a duplicate or malformed entry is a config error.
func New(defs []model.CategoryDefinition, opts ...Option) (*Taxonomy, error) {
	tx := &Taxonomy{
		defs: make(map[types.CategorySlug]*model.CategoryDefinition, len(defs)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(tx)
	}

	for i := range defs {
		def := defs[i]
		if err := def.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid category definition", goerr.T(types.ErrTagConfig))
		}
		if _, ok := tx.defs[def.Slug]; ok {
			return nil, goerr.New("duplicate category slug",
				goerr.T(types.ErrTagConfig), goerr.V("slug", def.Slug))
		}
		tx.defs[def.Slug] = &def
		tx.order = append(tx.order, def.Slug)
	}

	return tx, nil
}

// Load builds a taxonomy from a category source. An absent source (nil
// definitions, nil error) yields an empty taxonomy in degraded mode; the
// caller should already have logged a warning. A malformed source is a
// config error.
func Load(ctx context.Context, source interfaces.CategorySource, opts ...Option) (*Taxonomy, error) {
	defs, err := source.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load category definitions", goerr.T(types.ErrTagConfig))
	}
	return New(defs, opts...)
}

// Register inserts a definition, normalizing the name into a slug.
// Insertion is idempotent: an existing definition is returned unchanged.
func (tx *Taxonomy) Register(name string, attrs model.CategoryDefinition) *model.CategoryDefinition {
	slug := SlugOf(name)

	tx.mu.Lock()
	defer tx.mu.Unlock()
	return tx.register(slug, attrs)
}

func (tx *Taxonomy) register(slug types.CategorySlug, attrs model.CategoryDefinition) *model.CategoryDefinition {
	if def, ok := tx.defs[slug]; ok {
		return def
	}

	def := attrs
	def.Slug = slug
	if def.Relevance == "" {
		def.Relevance = types.RelevanceDirect
	}
	tx.defs[slug] = &def
	tx.order = append(tx.order, slug)
	return &def
}

// Ensure returns the definition for name, creating it when auto-creation
// is enabled. When disabled, unknown names fold into the default
// organizational category; callers must not assume the returned slug
// equals the requested name.
func (tx *Taxonomy) Ensure(name string, attrs model.CategoryDefinition) *model.CategoryDefinition {
	slug := SlugOf(name)

	tx.mu.Lock()
	defer tx.mu.Unlock()

	if def, ok := tx.defs[slug]; ok {
		return def
	}

	if tx.autoCreate {
		attrs.AutoCreated = true
		attrs.CreatedAt = tx.now()
		return tx.register(slug, attrs)
	}

	return tx.register(DefaultSlug, model.CategoryDefinition{
		Relevance: types.RelevanceDirect,
	})
}

// Get returns the definition for name, or nil when absent
func (tx *Taxonomy) Get(name string) *model.CategoryDefinition {
	slug := SlugOf(name)

	tx.mu.RLock()
	defer tx.mu.RUnlock()
	return tx.defs[slug]
}

// All returns every definition in registration order
func (tx *Taxonomy) All() []model.CategoryDefinition {
	tx.mu.RLock()
	defer tx.mu.RUnlock()

	out := make([]model.CategoryDefinition, 0, len(tx.order))
	for _, slug := range tx.order {
		out = append(out, *tx.defs[slug])
	}
	return out
}

// Match returns the canonical slugs of every category whose name, alias or
// keyword appears in the slugified text, in registration order without
// duplicates. Matching is substring containment over the slugified corpus:
// deliberately simple and auditable, with tolerated false positives since
// consumers treat matches as candidates. Results are filtered by relevance
// tier: direct always, indirect only behind WithIndirect, out_of_scope never.
func (tx *Taxonomy) Match(text string) []types.CategorySlug {
	corpus := Slugify(text)

	tx.mu.RLock()
	defer tx.mu.RUnlock()

	var found []types.CategorySlug
	for _, slug := range tx.order {
		def := tx.defs[slug]

		switch def.Relevance {
		case types.RelevanceOutOfScope:
			continue
		case types.RelevanceIndirect:
			if !tx.includeIndirect {
				continue
			}
		}

		if tx.matches(corpus, def) {
			found = append(found, slug)
		}
	}
	return found
}

func (tx *Taxonomy) matches(corpus string, def *model.CategoryDefinition) bool {
	if containsTerm(corpus, def.Slug) {
		return true
	}
	for _, a := range def.Aliases {
		if containsTerm(corpus, a) {
			return true
		}
	}
	for _, k := range def.Keywords {
		if containsTerm(corpus, k) {
			return true
		}
	}
	return false
}

// containsTerm is plain substring containment, not token-boundary matching:
// a keyword inside an unrelated longer word will false-positive.
func containsTerm(corpus string, term types.CategorySlug) bool {
	if term == "" {
		return false
	}
	return strings.Contains(corpus, string(term))
}
