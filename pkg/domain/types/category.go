package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// CategorySlug represents a normalized identifier for a risk category
type CategorySlug string

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the CategorySlug is valid
func (c CategorySlug) Validate() error {
	if c == "" {
		return goerr.New("category slug cannot be empty")
	}
	if !slugPattern.MatchString(string(c)) {
		return goerr.New("category slug must be lowercase alphanumeric with hyphens", goerr.V("slug", c))
	}
	return nil
}

// String returns the string representation of CategorySlug
func (c CategorySlug) String() string {
	return string(c)
}

// RelevanceTier controls whether a category participates in text matching
type RelevanceTier string

const (
	RelevanceDirect     RelevanceTier = "direct"
	RelevanceIndirect   RelevanceTier = "indirect"
	RelevanceOutOfScope RelevanceTier = "out_of_scope"
)

// Validate checks if the RelevanceTier is one of the known tiers
func (r RelevanceTier) Validate() error {
	switch r {
	case RelevanceDirect, RelevanceIndirect, RelevanceOutOfScope:
		return nil
	}
	return goerr.New("invalid relevance tier", goerr.V("tier", r))
}

// String returns the string representation of RelevanceTier
func (r RelevanceTier) String() string {
	return string(r)
}
