package llm

import (
	"reflect"
	"strings"
	"testing"
)

type extractedPaper struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

func TestExtractJSON(t *testing.T) {
	want := extractedPaper{Name: "adaptive summarization", Year: 2024}

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "plain JSON",
			content: `{"name":"adaptive summarization","year":2024}`,
		},
		{
			name:    "json code block",
			content: "```json\n{\"name\":\"adaptive summarization\",\"year\":2024}\n```",
		},
		{
			name:    "generic code block",
			content: "```\n{\"name\":\"adaptive summarization\",\"year\":2024}\n```",
		},
		{
			name:    "prose around the block",
			content: "Here is the summary you asked for:\n```json\n{\"name\":\"adaptive summarization\",\"year\":2024}\n```\nLet me know if you need more.",
		},
		{
			name:    "trailing comma in object",
			content: `{"name":"adaptive summarization","year":2024,}`,
		},
		{
			name:    "surrounding whitespace",
			content: "\n\n  {\"name\":\"adaptive summarization\",\"year\":2024}  \n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON[extractedPaper](tt.content)
			if err != nil {
				t.Fatalf("ExtractJSON() error = %v", err)
			}
			if got != want {
				t.Errorf("ExtractJSON() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestExtractJSONIntoMap(t *testing.T) {
	got, err := ExtractJSON[map[string]any](`{"main_idea":"x","results":null}`)
	if err != nil {
		t.Fatalf("ExtractJSON() error = %v", err)
	}
	want := map[string]any{"main_idea": "x", "results": nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractJSON() = %v, want %v", got, want)
	}
}

func TestExtractJSONRepairsTrailingCommaInArray(t *testing.T) {
	got, err := ExtractJSON[[]int]("[1, 2, 3,]")
	if err != nil {
		t.Fatalf("ExtractJSON() error = %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("ExtractJSON() = %v, want [1 2 3]", got)
	}
}

func TestExtractJSONInvalid(t *testing.T) {
	_, err := ExtractJSON[extractedPaper]("the model refused to answer")
	if err == nil {
		t.Fatal("want error for non-JSON content")
	}
	if !strings.Contains(err.Error(), "failed to parse JSON") {
		t.Errorf("error = %q, want it to mention the parse failure", err)
	}
}

func TestExtractJSONTruncatesLongContentInError(t *testing.T) {
	_, err := ExtractJSON[extractedPaper]("not json " + strings.Repeat("x", 300))
	if err == nil {
		t.Fatal("want error for non-JSON content")
	}
	if !strings.Contains(err.Error(), "...") {
		t.Errorf("error = %q, want the echoed content to be truncated", err)
	}
	if len(err.Error()) > 300 {
		t.Errorf("error is %d bytes long; the echoed content should be capped", len(err.Error()))
	}
}
