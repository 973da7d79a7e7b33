package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"papersum/internal/ingest"
	"papersum/internal/llm"
	"papersum/internal/summarize"
)

// Item pairs a file name with its summary. It is both the summaries.jsonl
// row format and the Phase 2 input.
type Item struct {
	File    string           `json:"file"`
	Summary summarize.Result `json:"summary"`
}

// runSummaries executes Phase 1: every corpus document is summarized into
// the paper schema and summaries.md / summaries.jsonl are written. A failed
// paper is recorded with a null summary in the JSONL and carries an
// all-sentinel summary into Phase 2 so the review still lists it.
func (p *Pipeline) runSummaries(ctx context.Context) ([]Item, error) {
	start := time.Now()

	papers, rows, err := ingest.LoadCorpus(p.opts.Papers)
	if err != nil {
		return nil, err
	}

	pagesTotal, charsTotal := 0, 0
	for _, r := range rows {
		if r.Status == "ok" {
			pagesTotal += r.Pages
			charsTotal += r.CharsTotal
		}
	}

	jsonlPath := filepath.Join(p.opts.OutDir, "summaries.jsonl")
	if err := os.MkdirAll(filepath.Dir(jsonlPath), 0o755); err != nil {
		return nil, err
	}
	jf, err := os.Create(jsonlPath)
	if err != nil {
		return nil, err
	}
	defer jf.Close()
	enc := json.NewEncoder(jf)
	enc.SetEscapeHTML(false)

	var (
		usage    llm.Usage
		sections []string
		items    []Item
	)
	processed, success := 0, 0

	for _, paper := range papers {
		processed++
		pages := ingest.DropReferencePages(paper.Pages)
		text := ingest.AnnotatePages(pages)

		FormatPaperStart(p.out, paper.Name, len(pages), utf8.RuneCountInString(text))
		p.logger.Debug("summarizing paper",
			"file", paper.Name,
			"pages", len(pages),
			"tokens_est", summarize.EstimateTokens(text))

		outcome := p.engine.Summarize(ctx, text, "", p.opts.Mode, p.phase1)
		usage = usage.Add(outcome.Usage)

		ok := len(outcome.Summary) > 0
		FormatPaperDone(p.out, paper.Name, outcome.Strategy, outcome.Usage, ok)

		if ok {
			success++
			if err := enc.Encode(Item{File: paper.Name, Summary: outcome.Summary}); err != nil {
				return nil, err
			}
			sections = append(sections, FormatSummarySection(paper.Name, outcome.Summary, p.phase1.SchemaKeys))
			items = append(items, Item{File: paper.Name, Summary: outcome.Summary})
		} else {
			if err := enc.Encode(Item{File: paper.Name}); err != nil {
				return nil, err
			}
			sections = append(sections, fmt.Sprintf("## %s\n\n**Error:** model returned no summary.\n", paper.Name))
			items = append(items, Item{File: paper.Name, Summary: sentinelSummary(p.phase1.SchemaKeys)})
		}
	}

	meta := []MetaRow{
		{"Run ID", p.runID},
		{"Files processed", processed},
		{"Successful", success},
		{"Total pages", pagesTotal},
		{"Total chars", charsTotal},
		{"Model", p.phase1.Model},
		{"Mode", string(p.opts.Mode)},
		{"Prompt tokens", usage.PromptTokens},
		{"Completion tokens", usage.CompletionTokens},
		{"Total tokens", usage.TotalTokens},
		{"Runtime (s)", fmt.Sprintf("%.2f", time.Since(start).Seconds())},
	}

	mdPath := filepath.Join(p.opts.OutDir, "summaries.md")
	content := renderMetadataHeader("Research Paper Summaries", meta) + strings.Join(sections, "\n")
	if err := writeFile(mdPath, content); err != nil {
		return nil, err
	}

	p.usage = p.usage.Add(usage)
	p.written = append(p.written, mdPath, jsonlPath)
	return items, nil
}

// sentinelSummary fills every schema key with the sentinel so a failed
// paper still appears in the review corpus.
func sentinelSummary(keys []string) summarize.Result {
	s := make(summarize.Result, len(keys))
	for _, k := range keys {
		s[k] = summarize.NotReported
	}
	return s
}
