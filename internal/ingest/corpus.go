// Package ingest loads a paper corpus from disk: PDF text extraction via
// poppler's pdftotext, plain-text passthrough, per-file scan statistics,
// and the page annotation applied before summarization.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"papersum/internal/summarize"
)

// Paper is one loaded document: its file name, per-page text, and the
// pages joined with explicit page-break markers.
type Paper struct {
	Name  string
	Pages []string
	Text  string
}

// ScanRow records ingest statistics for one file.
type ScanRow struct {
	File            string
	Pages           int
	CharsTotal      int
	AvgCharsPerPage int
	Status          string
	Err             string
}

// LoadCorpus loads every file matching pattern in lexical order. PDFs are
// split into pages; .txt and .md files load as single-page documents. A
// file that cannot be read produces an error row and is skipped; it never
// aborts the rest of the corpus. The returned error covers only a
// malformed pattern.
func LoadCorpus(pattern string) ([]Paper, []ScanRow, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
	}
	slices.Sort(paths)

	var papers []Paper
	var rows []ScanRow
	for _, path := range paths {
		name := filepath.Base(path)
		pages, err := readPages(path)
		if err != nil {
			rows = append(rows, ScanRow{File: name, Status: "error", Err: err.Error()})
			continue
		}

		text := strings.Join(pages, summarize.PageBreak)
		papers = append(papers, Paper{Name: name, Pages: pages, Text: text})

		row := ScanRow{
			File:       name,
			Pages:      len(pages),
			CharsTotal: utf8.RuneCountInString(text),
			Status:     "ok",
		}
		if len(pages) > 0 {
			row.AvgCharsPerPage = row.CharsTotal / len(pages)
		}
		rows = append(rows, row)
	}

	return papers, rows, nil
}

// LoadPaper loads a single document by path.
func LoadPaper(path string) (Paper, error) {
	pages, err := readPages(path)
	if err != nil {
		return Paper{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return Paper{
		Name:  filepath.Base(path),
		Pages: pages,
		Text:  strings.Join(pages, summarize.PageBreak),
	}, nil
}

// readPages dispatches on file extension.
func readPages(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ReadPDFPages(path)
	case ".txt", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return []string{strings.TrimSpace(string(data))}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// AnnotatePages prefixes each page with an explicit anchor of the form
// <<p=N>> (1-based) and joins the pages with blank lines. Prompts instruct
// the model to cite the matching [p=N] anchor next to extracted facts.
func AnnotatePages(pages []string) string {
	annotated := make([]string, len(pages))
	for i, page := range pages {
		annotated[i] = fmt.Sprintf("<<p=%d>>\n%s", i+1, page)
	}
	return strings.Join(annotated, "\n\n")
}

// DropReferencePages removes the first page opening a reference section and
// every page after it. The heading match is the same one the engine's
// preprocessor applies to joined text.
func DropReferencePages(pages []string) []string {
	for i, p := range pages {
		if summarize.HasReferenceHeading(p) {
			return pages[:i]
		}
	}
	return pages
}

// FormatScanReport renders the corpus statistics table shown by the scan
// command.
func FormatScanReport(rows []ScanRow) string {
	total := len(rows)
	ok := 0
	pagesTotal := 0
	charsTotal := 0
	for _, r := range rows {
		if r.Status == "ok" {
			ok++
			pagesTotal += r.Pages
			charsTotal += r.CharsTotal
		}
	}

	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 80)

	lines := []string{
		rule,
		"Input scan summary",
		thin,
		fmt.Sprintf("Files found: %d", total),
		fmt.Sprintf("Successful:  %d", ok),
		fmt.Sprintf("Errors:      %d", total-ok),
	}
	if ok > 0 {
		lines = append(lines,
			fmt.Sprintf("Total pages: %d", pagesTotal),
			fmt.Sprintf("Total chars: %d", charsTotal),
		)
	}
	lines = append(lines,
		rule,
		fmt.Sprintf("%-50s %4s %10s %7s %8s", "File", "Pg", "Chars", "Avg/pg", "Status"),
		thin,
	)
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-50s %4d %10d %7d %8s",
			clip(r.File, 50), r.Pages, r.CharsTotal, r.AvgCharsPerPage, r.Status))
		if r.Status != "ok" && r.Err != "" {
			lines = append(lines, fmt.Sprintf("  -> %s", r.Err))
		}
	}
	lines = append(lines, rule)

	return strings.Join(lines, "\n")
}

func clip(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
