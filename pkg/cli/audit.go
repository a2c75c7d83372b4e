package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prevanto-lab/duerpcore/pkg/cli/config"
	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
	"github.com/prevanto-lab/duerpcore/pkg/service/genai"
	"github.com/prevanto-lab/duerpcore/pkg/usecase"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
	"github.com/prevanto-lab/duerpcore/pkg/utils/safe"
)

func cmdAudit() *cli.Command {
	var taxonomyCfg config.Taxonomy
	var geminiCfg config.Gemini
	var inputPath string
	var contextClues string
	var asJSON bool

	var flags []cli.Flag
	flags = append(flags, taxonomyCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Risk document JSON to audit (- for stdin)",
			Required:    true,
			Sources:     cli.EnvVars("DUERPCORE_INPUT"),
			Destination: &inputPath,
		},
		&cli.StringFlag{
			Name:        "context",
			Usage:       "Free-text context clues for coverage analysis (sector, activities...)",
			Sources:     cli.EnvVars("DUERPCORE_CONTEXT"),
			Destination: &contextClues,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the full report as JSON instead of the human-readable summary",
			Destination: &asJSON,
		},
	)

	return &cli.Command{
		Name:    "audit",
		Aliases: []string{"a"},
		Usage:   "Audit a risk document: coverage, rule findings and quality score",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			tx, err := taxonomyCfg.Configure(ctx)
			if err != nil {
				return err
			}

			opts := []usecase.Option{usecase.WithTaxonomy(tx)}
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}
			if llmClient != nil {
				gen, err := genai.New(llmClient)
				if err != nil {
					return err
				}
				opts = append(opts, usecase.WithGenerator(gen))
			} else {
				logger.Info("No Gemini project configured, AI rewrite suggestions disabled")
			}

			raw, err := readInput(ctx, inputPath)
			if err != nil {
				return err
			}

			uc := usecase.New(opts...)
			doc := uc.SanitizeCandidate(ctx, raw)

			report, err := uc.Audit(ctx, doc, contextClues)
			if err != nil {
				return goerr.Wrap(err, "audit failed")
			}

			if asJSON {
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to encode report")
				}
				safe.Write(ctx, os.Stdout, append(out, '\n'))
				return nil
			}

			safe.Write(ctx, os.Stdout, []byte(renderReport(report)))
			return nil
		},
	}
}

func renderReport(report *model.AuditReport) string {
	var b strings.Builder

	score := report.Summary.Score
	scoreColor := color.New(color.FgGreen, color.Bold)
	switch {
	case score < 50:
		scoreColor = color.New(color.FgRed, color.Bold)
	case score < 80:
		scoreColor = color.New(color.FgYellow, color.Bold)
	}
	fmt.Fprintf(&b, "Score: %s\n", scoreColor.Sprintf("%d/100", score))

	cov := report.Coverage
	fmt.Fprintf(&b, "Coverage: %.0f%% (%d/%d categories)\n",
		cov.Ratio*100, len(cov.Covered), len(cov.Detected))
	for _, slug := range cov.Missing {
		fmt.Fprintf(&b, "  %s %s\n", color.YellowString("missing"), slug)
	}

	if len(report.Issues) == 0 {
		fmt.Fprintf(&b, "%s\n", color.GreenString("No issues found"))
		return b.String()
	}

	fmt.Fprintf(&b, "Issues (%d):\n", len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Fprintf(&b, "  [%s] %s: %s\n",
			severityColor(issue.Severity), issue.Path.String(), issue.Message)
		if issue.Suggestion != "" {
			fmt.Fprintf(&b, "    %s %s\n", color.CyanString("suggestion:"), issue.Suggestion)
		}
	}

	return b.String()
}

func severityColor(s types.IssueSeverity) string {
	switch s {
	case types.IssueCritical:
		return color.RedString(string(s))
	case types.IssueMajor:
		return color.YellowString(string(s))
	default:
		return color.WhiteString(string(s))
	}
}
