package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/taxonomy"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
)

// Taxonomy holds configuration for the risk category vocabulary
type Taxonomy struct {
	path            string
	autoCreate      bool
	includeIndirect bool
}

// Flags returns CLI flags for taxonomy configuration
func (t *Taxonomy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "taxonomy",
			Usage:       "Path to a TOML category definition file (defaults to the embedded vocabulary)",
			Sources:     cli.EnvVars("DUERPCORE_TAXONOMY"),
			Destination: &t.path,
		},
		&cli.BoolFlag{
			Name:        "taxonomy-auto-create",
			Usage:       "Create categories on the fly instead of folding unknown ones into the default",
			Sources:     cli.EnvVars("DUERPCORE_TAXONOMY_AUTO_CREATE"),
			Destination: &t.autoCreate,
		},
		&cli.BoolFlag{
			Name:        "taxonomy-include-indirect",
			Usage:       "Include indirect-relevance categories in matching",
			Sources:     cli.EnvVars("DUERPCORE_TAXONOMY_INCLUDE_INDIRECT"),
			Destination: &t.includeIndirect,
		},
	}
}

// Configure builds the taxonomy from the configured source. A missing file
// yields an empty taxonomy in degraded mode; a malformed one is a config
// error.
func (t *Taxonomy) Configure(ctx context.Context) (*taxonomy.Taxonomy, error) {
	var opts []taxonomy.Option
	if t.autoCreate {
		opts = append(opts, taxonomy.WithAutoCreate())
	}
	if t.includeIndirect {
		opts = append(opts, taxonomy.WithIndirect())
	}

	return taxonomy.Load(ctx, &FileSource{Path: t.path}, opts...)
}

// FileSource loads category definitions from a TOML file. An empty path
// falls back to the embedded default vocabulary; a path pointing at a
// missing file degrades to an empty vocabulary with a warning.
type FileSource struct {
	Path string
}

// Load implements interfaces.CategorySource
func (s *FileSource) Load(ctx context.Context) ([]model.CategoryDefinition, error) {
	if s.Path == "" {
		return taxonomy.DefaultDefinitions()
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.From(ctx).Warn("taxonomy file not found, running with empty vocabulary",
				"path", s.Path)
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read taxonomy file",
			goerr.T(types.ErrTagConfig), goerr.V("path", s.Path))
	}

	return taxonomy.ParseDefinitions(data)
}
