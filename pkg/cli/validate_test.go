package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/prevanto-lab/duerpcore/pkg/cli"
)

func TestRunValidateTaxonomy(t *testing.T) {
	tmpDir := t.TempDir()
	taxonomyPath := filepath.Join(tmpDir, "categories.toml")
	content := `
[[category]]
slug = "incendie"
aliases = ["feu"]
keywords = ["four", "extincteur"]

[[category]]
slug = "chimique"
relevance = "direct"
keywords = ["solvant"]
`
	err := os.WriteFile(taxonomyPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(),
		[]string{"duerpcore", "validate", "--taxonomy", taxonomyPath}, "test")
	gt.NoError(t, err)
}

func TestRunValidateTaxonomyMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	taxonomyPath := filepath.Join(tmpDir, "categories.toml")
	content := `
[[category]]
slug = "Pas Un Slug"
`
	err := os.WriteFile(taxonomyPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(),
		[]string{"duerpcore", "validate", "--taxonomy", taxonomyPath}, "test")
	gt.Error(t, err)
}

func TestRunValidateDocument(t *testing.T) {
	tmpDir := t.TempDir()
	docPath := filepath.Join(tmpDir, "doc.json")
	content := `{
		"secteur": "boulangerie",
		"unites_travail": [
			{"nom": "Fournil", "risques": [
				{"danger": "Brûlure au four", "gravite": 3, "probabilite": 2}
			]}
		]
	}`
	err := os.WriteFile(docPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(),
		[]string{"duerpcore", "validate", "--input", docPath}, "test")
	gt.NoError(t, err)
}
