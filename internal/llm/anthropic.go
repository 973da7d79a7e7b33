package llm

import (
	"context"
	"errors"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// defaultAnthropicMaxTokens caps completion length; the Messages API
// requires an explicit limit on every request.
const defaultAnthropicMaxTokens = 4096

// AnthropicClient implements Client using Anthropic's Messages API.
// The API has no JSON response format, so strict-JSON output is enforced
// by the system instruction alone.
type AnthropicClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicClient creates a client for the Anthropic Messages API.
// The API key comes from ANTHROPIC_API_KEY.
func NewAnthropicClient(model string) (*AnthropicClient, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, errors.New("ANTHROPIC_API_KEY environment variable not set")
	}
	cl := anthropic.NewClient(anthropicopt.WithAPIKey(key))
	return &AnthropicClient{client: &cl, model: model, maxTokens: defaultAnthropicMaxTokens}, nil
}

// Model returns the default model identifier.
func (a *AnthropicClient) Model() string {
	return a.model
}

// Complete issues one messages request.
func (a *AnthropicClient) Complete(ctx context.Context, req Request) (*Completion, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(a.maxTokens),
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}

	finish := FinishStop
	if msg.StopReason == "max_tokens" {
		finish = FinishLength
	}

	usage := Usage{
		PromptTokens:     int(msg.Usage.InputTokens),
		CompletionTokens: int(msg.Usage.OutputTokens),
	}
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens

	return &Completion{Content: b.String(), FinishReason: finish, Usage: usage}, nil
}
