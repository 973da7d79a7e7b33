package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"papersum/internal/summarize"
)

// MetaRow is one row of a report's metadata table. Rows render in the
// order given.
type MetaRow struct {
	Key   string
	Value any
}

// renderMetadataHeader renders the title and metadata table that open
// every Markdown report.
func renderMetadataHeader(title string, meta []MetaRow) string {
	lines := []string{"# " + title, "", "| Metric | Value |", "|---|---|"}
	for _, m := range meta {
		lines = append(lines, fmt.Sprintf("| %s | %v |", m.Key, m.Value))
	}
	lines = append(lines, "", "")
	return strings.Join(lines, "\n")
}

// sectionLabels maps schema keys to display labels.
var sectionLabels = map[string]string{
	"main_idea":           "Main idea / summary",
	"objective":           "Objective",
	"design":              "Design",
	"methods":             "Methods",
	"results":             "Results",
	"main_findings":       "Main findings",
	"contextual_citation": "Contextual citation",
}

// FormatSummarySection renders one paper's summary as a Markdown section
// with a labeled line per schema key.
func FormatSummarySection(filename string, summary summarize.Result, keys []string) string {
	lines := []string{"## " + filename, ""}
	for _, k := range keys {
		label := sectionLabels[k]
		if label == "" {
			label = k
		}
		val := summary[k]
		if val == "" {
			val = summarize.NotReported
		}
		lines = append(lines, fmt.Sprintf("**%s:** %s", label, val), "")
	}
	return strings.Join(lines, "\n")
}

// writeFile writes content, creating parent directories as needed.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// writeCitations writes raw citation lines, one per line. An empty list
// produces an empty file.
func writeCitations(path string, lines []string) error {
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	return writeFile(path, content)
}

// markdown renders reports to HTML. GFM is needed for the metadata tables.
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// ExportHTML renders a Markdown report to a sibling .html file and returns
// the path written.
func ExportHTML(mdPath string) (string, error) {
	src, err := os.ReadFile(mdPath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := markdown.Convert(src, &body); err != nil {
		return "", fmt.Errorf("rendering %s: %w", mdPath, err)
	}

	htmlPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
	page := fmt.Sprintf(htmlShell, filepath.Base(mdPath), body.String())
	if err := os.WriteFile(htmlPath, []byte(page), 0o644); err != nil {
		return "", err
	}

	return htmlPath, nil
}

const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
h2 { border-bottom: 1px solid #eee; padding-bottom: 0.25rem; }
</style>
</head>
<body>
%s</body>
</html>
`
