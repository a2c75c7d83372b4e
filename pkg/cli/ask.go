package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/prevanto-lab/duerpcore/pkg/cli/config"
	"github.com/prevanto-lab/duerpcore/pkg/domain/model"
	"github.com/prevanto-lab/duerpcore/pkg/service/genai"
	"github.com/prevanto-lab/duerpcore/pkg/usecase"
	"github.com/prevanto-lab/duerpcore/pkg/utils/logging"
	"github.com/prevanto-lab/duerpcore/pkg/utils/safe"
)

// askInput is the wire format of the accumulated questioning state
type askInput struct {
	Sector         string            `json:"sector"`
	SizeClass      string            `json:"size_class"`
	Units          []string          `json:"units"`
	Notes          []string          `json:"notes"`
	Asked          []string          `json:"asked"`
	Answers        map[string]string `json:"answers"`
	TargetCoverage float64           `json:"target_coverage"`
	MaxNew         int               `json:"max_new"`
}

type askQuestion struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Category string            `json:"category,omitempty"`
	Urgent   bool              `json:"urgent"`
	ShowIf   map[string]string `json:"show_if,omitempty"`
}

type askOutput struct {
	Questions      []askQuestion  `json:"questions"`
	Coverage       float64        `json:"coverage"`
	MissingReasons []string       `json:"missing_reasons,omitempty"`
	Stop           bool           `json:"stop"`
	Meta           map[string]any `json:"meta,omitempty"`
}

func cmdAsk() *cli.Command {
	var taxonomyCfg config.Taxonomy
	var geminiCfg config.Gemini
	var inputPath string

	var flags []cli.Flag
	flags = append(flags, taxonomyCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "input",
		Aliases:     []string{"i"},
		Usage:       "Questioning state JSON (- for stdin)",
		Required:    true,
		Sources:     cli.EnvVars("DUERPCORE_INPUT"),
		Destination: &inputPath,
	})

	return &cli.Command{
		Name:  "ask",
		Usage: "Compute the next batch of clarifying questions from accumulated state",
		Flags: flags,
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
				logger.Info("No Gemini project configured, question generation runs on heuristics")
			}

			raw, err := readInput(ctx, inputPath)
			if err != nil {
				return err
			}

			var in askInput
			if err := json.Unmarshal(raw, &in); err != nil {
				return goerr.Wrap(err, "failed to parse questioning state")
			}

			uc := usecase.New(opts...)
			batch := uc.NextQuestions(ctx, model.QuestionInput{
				Sector:         in.Sector,
				SizeClass:      in.SizeClass,
				Units:          in.Units,
				Notes:          in.Notes,
				Asked:          in.Asked,
				Answers:        in.Answers,
				TargetCoverage: in.TargetCoverage,
				MaxNew:         in.MaxNew,
			})

			out := askOutput{
				Questions:      make([]askQuestion, 0, len(batch.Questions)),
				Coverage:       batch.Coverage,
				MissingReasons: batch.MissingReasons,
				Stop:           batch.Stop,
				Meta:           batch.Meta,
			}
			for _, q := range batch.Questions {
				out.Questions = append(out.Questions, askQuestion{
					ID:       q.ID,
					Text:     q.Text,
					Category: string(q.Category),
					Urgent:   q.Urgent,
					ShowIf:   q.ShowIf,
				})
			}

			encoded, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to encode question batch")
			}
			safe.Write(ctx, os.Stdout, append(encoded, '\n'))
			return nil
		},
	}
}
