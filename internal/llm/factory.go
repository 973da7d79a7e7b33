package llm

import (
	"context"
	"fmt"
	"strings"
)

// NewClient returns a Client for the named provider.
func NewClient(ctx context.Context, provider, model string) (Client, error) {
	switch strings.ToLower(provider) {
	case "openai", "":
		return NewOpenAIClient(model)
	case "gemini", "google":
		return NewGeminiClient(ctx, model)
	case "anthropic", "claude":
		return NewAnthropicClient(model)
	default:
		return nil, fmt.Errorf("unknown provider: %q (valid options: openai, gemini, anthropic)", provider)
	}
}
