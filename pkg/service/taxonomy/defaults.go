package taxonomy

import (
	_ "embed"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

//go:embed defaults.toml
var defaultsTOML []byte

type categoryFile struct {
	Categories []categoryEntry `toml:"category"`
}

type categoryEntry struct {
	Slug      string   `toml:"slug"`
	Aliases   []string `toml:"aliases"`
	Parent    string   `toml:"parent"`
	Relevance string   `toml:"relevance"`
	Keywords  []string `toml:"keywords"`
}

// ParseDefinitions decodes a TOML category listing into definitions.
// Entries are validated later by New; this only handles decoding.
func ParseDefinitions(data []byte) ([]model.CategoryDefinition, error) {
	var file categoryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse category definitions", goerr.T(types.ErrTagConfig))
	}

	defs := make([]model.CategoryDefinition, 0, len(file.Categories))
	for _, e := range file.Categories {
		def := model.CategoryDefinition{
			Slug:      types.CategorySlug(e.Slug),
			Parent:    types.CategorySlug(e.Parent),
			Relevance: types.RelevanceTier(e.Relevance),
		}
		if def.Relevance == "" {
			def.Relevance = types.RelevanceDirect
		}
		for _, a := range e.Aliases {
			def.Aliases = append(def.Aliases, types.CategorySlug(a))
		}
		for _, k := range e.Keywords {
			def.Keywords = append(def.Keywords, types.CategorySlug(k))
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// DefaultDefinitions returns the embedded vocabulary for French workplace
// risk registers
func DefaultDefinitions() ([]model.CategoryDefinition, error) {
	return ParseDefinitions(defaultsTOML)
}
