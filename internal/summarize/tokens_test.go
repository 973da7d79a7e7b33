package summarize

import "testing"

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		min  int
		max  int
	}{
		{
			name: "empty string",
			text: "",
			min:  0,
			max:  0,
		},
		{
			name: "single word",
			text: "hello",
			min:  1,
			max:  3,
		},
		{
			name: "short sentence",
			text: "Hello world!",
			min:  2,
			max:  5,
		},
		{
			name: "full sentence",
			text: "The quick brown fox jumps over the lazy dog.",
			min:  10,
			max:  20,
		},
		{
			name: "punctuation heavy",
			text: "a, b, c, d; e: f.",
			min:  7,
			max:  15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateTokens(tt.text)
			if got < tt.min || got > tt.max {
				t.Errorf("EstimateTokens(%q) = %d, want between %d and %d", tt.text, got, tt.min, tt.max)
			}
		})
	}
}
