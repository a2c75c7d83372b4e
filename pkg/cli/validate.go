package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prevanto-lab/duerpcore/pkg/cli/config"
	"github.com/prevanto-lab/duerpcore/pkg/usecase"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
	"github.com/prevanto-lab/duerpcore/pkg/utils/safe"
)

func cmdValidate() *cli.Command {
	var taxonomyCfg config.Taxonomy
	var inputPath string

	var flags []cli.Flag
	flags = append(flags, taxonomyCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "input",
		Aliases:     []string{"i"},
		Usage:       "Risk document JSON to validate (- for stdin); omit to only check the taxonomy",
		Sources:     cli.EnvVars("DUERPCORE_INPUT"),
		Destination: &inputPath,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the category taxonomy and optionally a risk document",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			tx, err := taxonomyCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "taxonomy validation failed")
			}
			logger.Info("Taxonomy validation passed", "categories", len(tx.All()))

			if inputPath == "" {
				return nil
			}

			raw, err := readInput(ctx, inputPath)
			if err != nil {
				return err
			}

			uc := usecase.New(usecase.WithTaxonomy(tx))
			doc := uc.SanitizeCandidate(ctx, raw)
			uc.Normalize(&doc)
			if err := uc.Validate(&doc); err != nil {
				return goerr.Wrap(err, "document validation failed")
			}

			logger.Info("Document validation passed",
				"units", len(doc.Units),
				"risks", doc.RiskCount(),
			)
			return nil
		},
	}
}

func readInput(ctx context.Context, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read stdin")
		}
		return data, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return data, nil
}
