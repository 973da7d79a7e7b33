package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// countingClient numbers its responses so a cache hit is distinguishable
// from a fresh call.
type countingClient struct {
	calls int
	err   error
}

func (c *countingClient) Complete(_ context.Context, _ Request) (*Completion, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &Completion{
		Content:      fmt.Sprintf("response %d", c.calls),
		FinishReason: FinishStop,
		Usage:        Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (c *countingClient) Model() string { return "counting-model" }

func TestCachedClientMemoizes(t *testing.T) {
	inner := &countingClient{}
	cached, err := NewCachedClient(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedClient() error = %v", err)
	}
	req := Request{Model: "m", System: "sys", User: "question", Temperature: 0.5}

	first, err := cached.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}
	if first.Content != "response 1" {
		t.Errorf("first content = %q, want %q", first.Content, "response 1")
	}
	if first.Usage.TotalTokens != 15 {
		t.Errorf("first usage = %+v, want the inner client's usage", first.Usage)
	}

	second, err := cached.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}
	if second.Content != "response 1" {
		t.Errorf("second content = %q, want the cached %q", second.Content, "response 1")
	}
	if second.Usage != (Usage{}) {
		t.Errorf("hit usage = %+v, want zero", second.Usage)
	}
	if inner.calls != 1 {
		t.Errorf("inner client saw %d calls, want 1", inner.calls)
	}
}

func TestCachedClientKeysOnEveryRequestField(t *testing.T) {
	base := Request{Model: "m", System: "sys", User: "question", Temperature: 0.5}

	tests := []struct {
		name   string
		mutate func(Request) Request
	}{
		{"model", func(r Request) Request { r.Model = "other"; return r }},
		{"system prompt", func(r Request) Request { r.System = "other"; return r }},
		{"user prompt", func(r Request) Request { r.User = "other"; return r }},
		{"temperature", func(r Request) Request { r.Temperature = 0.9; return r }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &countingClient{}
			cached, err := NewCachedClient(inner, 8)
			if err != nil {
				t.Fatalf("NewCachedClient() error = %v", err)
			}

			if _, err := cached.Complete(context.Background(), base); err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			got, err := cached.Complete(context.Background(), tt.mutate(base))
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if got.Content != "response 2" {
				t.Errorf("content = %q, want a fresh %q", got.Content, "response 2")
			}
			if inner.calls != 2 {
				t.Errorf("inner client saw %d calls, want 2", inner.calls)
			}
		})
	}
}

func TestCachedClientDoesNotCacheErrors(t *testing.T) {
	inner := &countingClient{err: errors.New("service unavailable")}
	cached, err := NewCachedClient(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedClient() error = %v", err)
	}
	req := Request{User: "question"}

	if _, err := cached.Complete(context.Background(), req); err == nil {
		t.Fatal("want first error to surface")
	}
	if _, err := cached.Complete(context.Background(), req); err == nil {
		t.Fatal("want second error to surface, not a cached failure")
	}
	if inner.calls != 2 {
		t.Errorf("inner client saw %d calls, want 2", inner.calls)
	}

	inner.err = nil
	got, err := cached.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete() after recovery error = %v", err)
	}
	if got.Content != "response 3" {
		t.Errorf("content = %q, want %q", got.Content, "response 3")
	}
}

func TestCachedClientHitIsACopy(t *testing.T) {
	inner := &countingClient{}
	cached, err := NewCachedClient(inner, 8)
	if err != nil {
		t.Fatalf("NewCachedClient() error = %v", err)
	}
	req := Request{User: "question"}

	if _, err := cached.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	hit, err := cached.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	hit.Content = "mutated by caller"

	again, err := cached.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if again.Content != "response 1" {
		t.Errorf("content = %q, want the stored %q", again.Content, "response 1")
	}
}

func TestCachedClientModelPassthrough(t *testing.T) {
	cached, err := NewCachedClient(&countingClient{}, 8)
	if err != nil {
		t.Fatalf("NewCachedClient() error = %v", err)
	}
	if got := cached.Model(); got != "counting-model" {
		t.Errorf("Model() = %q, want %q", got, "counting-model")
	}
}

func TestNewCachedClientRejectsNonPositiveSize(t *testing.T) {
	if _, err := NewCachedClient(&countingClient{}, 0); err == nil {
		t.Error("want error for size 0")
	}
	if _, err := NewCachedClient(&countingClient{}, -1); err == nil {
		t.Error("want error for negative size")
	}
}
