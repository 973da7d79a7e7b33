// Package pipeline orchestrates the two-phase summarization run: Phase 1
// summarizes every paper in the corpus, Phase 2 synthesizes those summaries
// into a literature review with contextual citations. The pipeline owns
// corpus loading, report writing, and terminal progress output; strategy
// selection belongs to the engine.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"papersum/internal/llm"
	"papersum/internal/summarize"
)

// Pipeline phases.
const (
	PhaseSummaries = "summaries"
	PhaseReview    = "review"
	PhaseBoth      = "both"
)

// ValidatePhase checks that phase names a known pipeline phase.
func ValidatePhase(phase string) error {
	switch phase {
	case PhaseSummaries, PhaseReview, PhaseBoth:
		return nil
	default:
		return fmt.Errorf("unknown phase: %q (valid options: summaries, review, both)", phase)
	}
}

// Options configure a pipeline run.
type Options struct {
	// Papers is the input glob pattern.
	Papers string

	// OutDir receives every report file.
	OutDir string

	// Phase selects what runs: summaries, review, or both.
	Phase string

	// Mode is the engine strategy mode, applied to both phases.
	Mode summarize.Mode

	// Provider and Model identify the completion client; shown in the run
	// header and the metadata tables.
	Provider string
	Model    string

	// Context is an optional research context quoted by the review prompts.
	Context string

	// HTML additionally renders every Markdown report to HTML.
	HTML bool
}

// Pipeline runs the configured phases against one engine.
type Pipeline struct {
	opts    Options
	engine  *summarize.Engine
	phase1  *summarize.Config
	phase2  *summarize.Config
	logger  *slog.Logger
	out     io.Writer
	runID   string
	usage   llm.Usage
	written []string
}

// New builds a Pipeline around client. Progress output goes to out. An
// empty Options.Model falls back to the default paper model.
func New(client llm.Client, opts Options, logger *slog.Logger, out io.Writer) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	runID := uuid.NewString()

	phase1 := summarize.DefaultConfig()
	if opts.Model != "" {
		phase1.Model = opts.Model
	} else {
		opts.Model = phase1.Model
	}

	phase2 := &summarize.Config{
		Model:         opts.Model,
		SchemaKeys:    summarize.ReviewSchemaKeys(),
		Temperature:   1,
		BinaryOverlap: 500,
		Prompts:       summarize.ReviewPrompts(),
	}

	return &Pipeline{
		opts:   opts,
		engine: summarize.New(client, summarize.WithLogger(logger)),
		phase1: phase1,
		phase2: phase2,
		logger: logger.With("run_id", runID),
		out:    out,
		runID:  runID,
	}
}

// Run executes the selected phases and prints the final run summary.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := ValidatePhase(p.opts.Phase); err != nil {
		return err
	}
	if err := p.phase1.Validate(); err != nil {
		return err
	}
	if err := p.phase2.Validate(); err != nil {
		return err
	}

	start := time.Now()
	FormatRunHeader(p.out, RunInfo{
		RunID:    p.runID,
		Provider: p.opts.Provider,
		Model:    p.opts.Model,
		Mode:     string(p.opts.Mode),
		Phase:    p.opts.Phase,
		Pattern:  p.opts.Papers,
	})

	switch p.opts.Phase {
	case PhaseSummaries:
		FormatPhaseBanner(p.out, "PHASE 1: PAPER SUMMARIES")
		if _, err := p.runSummaries(ctx); err != nil {
			return err
		}
	case PhaseReview:
		items, err := p.loadItems()
		if err != nil {
			return err
		}
		FormatPhaseBanner(p.out, "PHASE 2: LITERATURE REVIEW")
		if err := p.runReview(ctx, items); err != nil {
			return err
		}
	default:
		FormatPhaseBanner(p.out, "PHASE 1: PAPER SUMMARIES")
		items, err := p.runSummaries(ctx)
		if err != nil {
			return err
		}
		FormatPhaseBanner(p.out, "PHASE 2: LITERATURE REVIEW")
		if err := p.runReview(ctx, items); err != nil {
			return err
		}
	}

	if p.opts.HTML {
		if err := p.exportHTML(); err != nil {
			return err
		}
	}

	FormatRunSummary(p.out, time.Since(start).Seconds(), p.usage, p.written)
	return nil
}

// loadItems reads Phase 1 items back from summaries.jsonl, skipping rows
// whose summary is null.
func (p *Pipeline) loadItems() ([]Item, error) {
	path := filepath.Join(p.opts.OutDir, "summaries.jsonl")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phase %q needs an existing summaries file: %w", PhaseReview, err)
	}
	defer f.Close()

	var items []Item
	dec := json.NewDecoder(f)
	for {
		var it Item
		if err := dec.Decode(&it); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if len(it.Summary) > 0 {
			items = append(items, it)
		}
	}

	return items, nil
}

// exportHTML renders every written Markdown report to a sibling HTML file.
func (p *Pipeline) exportHTML() error {
	var htmls []string
	for _, f := range p.written {
		if filepath.Ext(f) != ".md" {
			continue
		}
		htmlPath, err := ExportHTML(f)
		if err != nil {
			return err
		}
		htmls = append(htmls, htmlPath)
	}
	p.written = append(p.written, htmls...)
	return nil
}
