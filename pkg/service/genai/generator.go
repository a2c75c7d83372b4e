// Package genai adapts a gollem LLM client to the engine's TextGenerator
// contract. Every call opens a fresh JSON-mode session; the engine never
// relies on conversational state.
package genai

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/prevanto-lab/duerpcore/pkg/domain/types"
)

// DefaultTimeout bounds a single generation call
const DefaultTimeout = 30 * time.Second

// Client implements interfaces.TextGenerator over a gollem LLM client
type Client struct {
	llm     gollem.LLMClient
	timeout time.Duration
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout overrides the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a generator backed by the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (*Client, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required", goerr.T(types.ErrTagConfig))
	}

	c := &Client{
		llm:     llmClient,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate runs one structured generation call and returns the raw JSON
// text. The output carries no shape guarantee; callers must sanitize.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	session, err := c.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session", goerr.T(types.ErrTagCollaborator))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM", goerr.T(types.ErrTagCollaborator))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM returned no text", goerr.T(types.ErrTagCollaborator))
	}

	return []byte(resp.Texts[0]), nil
}
