package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultClaudeModel = string(anthropic.ModelClaude3_7SonnetLatest)

// ClaudeProvider implements Provider for Anthropic's Claude.
type ClaudeProvider struct {
	client anthropic.Client
}

// NewClaudeProvider creates a Claude provider from the ANTHROPIC_API_KEY
// environment variable.
func NewClaudeProvider(_ context.Context) (Provider, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}

	return &ClaudeProvider{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Name returns the registry key.
func (p *ClaudeProvider) Name() string { return "anthropic" }

// Complete sends a prompt and returns the raw response text.
func (p *ClaudeProvider) Complete(ctx context.Context, prompt, model, system string) (string, error) {
	if model == "" {
		model = defaultClaudeModel
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
		}},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude completion failed: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.AsText().Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in Claude response")
	}
	return sb.String(), nil
}
