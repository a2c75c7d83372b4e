package interfaces

import "context"

// TextGenerator is the opaque LLM collaborator contract. The returned bytes
// are expected to be JSON but carry no shape guarantee; every consumption
// site must sanitize or validate before use. Implementations may fail on
// network or parse errors; callers recover locally and degrade.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) ([]byte, error)
}
