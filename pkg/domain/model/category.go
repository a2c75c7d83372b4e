package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// CategoryDefinition is one entry of the controlled risk-domain vocabulary
type CategoryDefinition struct {
	Slug      types.CategorySlug
	Aliases   []types.CategorySlug
	Parent    types.CategorySlug
	Relevance types.RelevanceTier
	Keywords  []types.CategorySlug

	// AutoCreated marks definitions synthesized at runtime via Ensure
	AutoCreated bool
	CreatedAt   time.Time
}

// Validate checks the definition for structural soundness
func (c *CategoryDefinition) Validate() error {
	if err := c.Slug.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category slug", goerr.T(types.ErrTagConfig))
	}
	if err := c.Relevance.Validate(); err != nil {
		return goerr.Wrap(err, "invalid relevance tier", goerr.T(types.ErrTagConfig), goerr.V("slug", c.Slug))
	}
	for _, a := range c.Aliases {
		if err := a.Validate(); err != nil {
			return goerr.Wrap(err, "invalid alias", goerr.T(types.ErrTagConfig), goerr.V("slug", c.Slug))
		}
	}
	for _, k := range c.Keywords {
		if err := k.Validate(); err != nil {
			return goerr.Wrap(err, "invalid keyword", goerr.T(types.ErrTagConfig), goerr.V("slug", c.Slug))
		}
	}
	if c.Parent != "" {
		if err := c.Parent.Validate(); err != nil {
			return goerr.Wrap(err, "invalid parent slug", goerr.T(types.ErrTagConfig), goerr.V("slug", c.Slug))
		}
	}
	return nil
}
