// Package llm provides chat-completion clients for the hosted text
// generation services papersum can talk to, plus the usage accounting
// shared by every call.
package llm

import "context"

// FinishReason is the normalized completion status reported by a service.
type FinishReason string

const (
	// FinishStop means the service stopped normally.
	FinishStop FinishReason = "stop"
	// FinishLength means the service stopped because it hit its own
	// output-length limit.
	FinishLength FinishReason = "length"
)

// Request is a single chat-completion request. Model may be empty, in
// which case the client's configured default model is used.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float64
}

// Completion is the decoded response for one request.
type Completion struct {
	Content      string
	FinishReason FinishReason
	Usage        Usage
}

// Client defines the interface for chat-completion backends.
type Client interface {
	// Complete issues exactly one request and returns the completion.
	// Implementations do not retry; retry policy belongs to the caller.
	Complete(ctx context.Context, req Request) (*Completion, error)

	// Model returns the default model identifier for this client.
	Model() string
}

// Usage counts the consumption units billed for one or more calls.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Add returns the componentwise sum of two usage counters.
func (u Usage) Add(v Usage) Usage {
	return Usage{
		PromptTokens:     u.PromptTokens + v.PromptTokens,
		CompletionTokens: u.CompletionTokens + v.CompletionTokens,
		TotalTokens:      u.TotalTokens + v.TotalTokens,
	}
}
