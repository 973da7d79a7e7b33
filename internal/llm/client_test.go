package llm

import "testing"

func TestUsageAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b Usage
		want Usage
	}{
		{
			name: "componentwise sum",
			a:    Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
			b:    Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
			want: Usage{PromptTokens: 13, CompletionTokens: 7, TotalTokens: 20},
		},
		{
			name: "zero is the identity",
			a:    Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
			b:    Usage{},
			want: Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		},
		{
			name: "both zero",
			a:    Usage{},
			b:    Usage{},
			want: Usage{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Add(tt.b); got != tt.want {
				t.Errorf("Add() = %+v, want %+v", got, tt.want)
			}
			if got := tt.b.Add(tt.a); got != tt.want {
				t.Errorf("Add() reversed = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUsageAddDoesNotMutate(t *testing.T) {
	a := Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}
	_ = a.Add(Usage{PromptTokens: 9, CompletionTokens: 9, TotalTokens: 18})
	if a != (Usage{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3}) {
		t.Errorf("receiver changed to %+v", a)
	}
}
