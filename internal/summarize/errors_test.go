package summarize

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsSizeSignal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "context length",
			err:  errors.New("This model's maximum context length is 128000 tokens"),
			want: true,
		},
		{
			name: "too many tokens",
			err:  errors.New("request failed: too many tokens in the input"),
			want: true,
		},
		{
			name: "input is too long",
			err:  errors.New("the input is too long; shorten it and retry"),
			want: true,
		},
		{
			name: "uppercase message",
			err:  errors.New("CONTEXT LENGTH EXCEEDED"),
			want: true,
		},
		{
			name: "wrapped error keeps the signal",
			err:  fmt.Errorf("completion call: %w", errors.New("maximum context exceeded")),
			want: true,
		},
		{
			name: "rate limit is not a size signal",
			err:  errors.New("rate limit exceeded"),
			want: false,
		},
		{
			name: "network error is not a size signal",
			err:  errors.New("connection refused"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSizeSignal(tt.err); got != tt.want {
				t.Errorf("isSizeSignal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
