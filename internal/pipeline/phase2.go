package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"papersum/internal/summarize"
)

// buildReviewCorpus renders Phase 1 items as labeled blocks: an index, the
// file name, then the six summary fields. The review prompts reference
// papers by these indices.
func buildReviewCorpus(items []Item) string {
	blocks := make([]string, len(items))
	for i, it := range items {
		s := it.Summary
		blocks[i] = fmt.Sprintf("[%d] %s\n"+
			"- Main idea: %s\n"+
			"- Objective: %s\n"+
			"- Design: %s\n"+
			"- Methods: %s\n"+
			"- Results: %s\n"+
			"- Main findings: %s",
			i+1, it.File,
			s["main_idea"], s["objective"], s["design"],
			s["methods"], s["results"], s["main_findings"])
	}
	return strings.Join(blocks, "\n\n")
}

// runReview executes Phase 2: the combined summaries corpus is synthesized
// into a literature review plus per-paper citation lines, written to
// literature_review.md and citations.md.
func (p *Pipeline) runReview(ctx context.Context, items []Item) error {
	start := time.Now()

	text := buildReviewCorpus(items)
	outcome := p.engine.Summarize(ctx, text, p.opts.Context, p.opts.Mode, p.phase2)
	p.usage = p.usage.Add(outcome.Usage)

	lit := outcome.Summary["literature_review"]
	cits := outcome.Summary["contextual_citations"]

	meta := []MetaRow{
		{"Run ID", p.runID},
		{"Items", len(items)},
		{"Model", p.phase2.Model},
		{"Mode", string(p.opts.Mode)},
		{"Prompt tokens", outcome.Usage.PromptTokens},
		{"Completion tokens", outcome.Usage.CompletionTokens},
		{"Total tokens", outcome.Usage.TotalTokens},
		{"Runtime (s)", fmt.Sprintf("%.2f", time.Since(start).Seconds())},
	}

	var b strings.Builder
	b.WriteString(renderMetadataHeader("Literature Review", meta))
	b.WriteString("## Literature Review\n\n")
	if s := strings.TrimSpace(lit); s != "" {
		b.WriteString(s)
	} else {
		b.WriteString(summarize.NotReported)
	}
	b.WriteString("\n\n## Contextual Citations\n\n")
	if cits != "" {
		for _, ln := range splitLines(cits) {
			b.WriteString("- " + ln + "\n")
		}
	} else {
		b.WriteString("_Not reported_\n")
	}
	b.WriteString("\n")

	reviewPath := filepath.Join(p.opts.OutDir, "literature_review.md")
	if err := writeFile(reviewPath, b.String()); err != nil {
		return err
	}

	citationsPath := filepath.Join(p.opts.OutDir, "citations.md")
	if err := writeCitations(citationsPath, splitLines(cits)); err != nil {
		return err
	}

	p.written = append(p.written, reviewPath, citationsPath)
	return nil
}

// splitLines splits on newlines, dropping the empty tail a trailing
// newline would produce.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
