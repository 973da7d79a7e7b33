package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"papersum/internal/llm"
)

// Mode selects the orchestration strategy.
type Mode string

const (
	// ModeAuto tries the single pass first and falls back to the chunked
	// strategy on any failure.
	ModeAuto Mode = "auto"
	// ModeAlways runs the chunked strategy unconditionally.
	ModeAlways Mode = "always"
	// ModeNever runs the single pass only, with no fallback.
	ModeNever Mode = "never"
)

// ParseMode checks if the given mode string is valid and returns the Mode.
func ParseMode(mode string) (Mode, error) {
	switch Mode(mode) {
	case ModeAuto:
		return ModeAuto, nil
	case ModeAlways:
		return ModeAlways, nil
	case ModeNever:
		return ModeNever, nil
	default:
		return "", fmt.Errorf("unknown mode: %q (valid options: auto, always, never)", mode)
	}
}

// Strategy labels reported in an Outcome.
const (
	StrategySingle  = "single"
	StrategyChunked = "chunked"
)

// Outcome is what one orchestration returns: the strategy that ran, the
// summary when one was produced (nil otherwise), and the usage total.
type Outcome struct {
	Strategy string
	Summary  Result
	Usage    llm.Usage
}

// Engine runs adaptive summarizations against one completion client.
// Construct with New; the zero value is not usable.
type Engine struct {
	client   llm.Client
	logger   *slog.Logger
	sleep    func(time.Duration)
	tempWarn sync.Once
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine that issues calls through client.
func New(client llm.Client, opts ...Option) *Engine {
	e := &Engine{
		client: client,
		logger: slog.New(slog.DiscardHandler),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Summarize cleans text and runs the strategy the mode selects. It never
// fails: when no summary can be produced, the Outcome carries a nil
// Summary plus whatever usage the mode's contract preserves. cfg must
// have passed Validate. An unrecognized mode behaves as ModeAuto.
func (e *Engine) Summarize(ctx context.Context, text, docContext string, mode Mode, cfg *Config) Outcome {
	cleaned := CleanText(text, cfg.DropRefsAfterPage, cfg.CutAtReferences)

	switch mode {
	case ModeNever:
		summary, status, usage := e.SinglePass(ctx, cleaned, docContext, cfg)
		if status != StatusOK {
			e.logger.Warn("single pass produced no summary", "status", status)
			return Outcome{Strategy: StrategySingle, Usage: usage}
		}
		return Outcome{Strategy: StrategySingle, Summary: summary, Usage: usage}

	case ModeAlways:
		summary, usage, err := e.ChunkedMapReduce(ctx, cleaned, docContext, cfg)
		if err != nil {
			e.logger.Error("chunked strategy failed", "err", err)
			return Outcome{Strategy: StrategyChunked}
		}
		return Outcome{Strategy: StrategyChunked, Summary: summary, Usage: usage}
	}

	summary, status, singleUsage := e.SinglePass(ctx, cleaned, docContext, cfg)
	if status == StatusOK {
		return Outcome{Strategy: StrategySingle, Summary: summary, Usage: singleUsage}
	}
	e.logger.Info("single pass failed; falling back to chunked", "status", status)

	merged, chunkedUsage, err := e.ChunkedMapReduce(ctx, cleaned, docContext, cfg)
	if err != nil {
		e.logger.Error("chunked fallback failed", "err", err)
		return Outcome{Strategy: StrategyChunked, Usage: singleUsage}
	}
	return Outcome{Strategy: StrategyChunked, Summary: merged, Usage: singleUsage.Add(chunkedUsage)}
}

const (
	// tempShimMarker identifies the model family that rejects a zero
	// temperature.
	tempShimMarker = "gpt-5"
	// tempZeroFloor replaces a zero temperature for those models.
	tempZeroFloor = 0.1
)

// normalizeTemperature applies the model-compatibility shim: gpt-5 family
// models reject temperature 0, so zero becomes tempZeroFloor. The warning
// fires once per Engine.
func (e *Engine) normalizeTemperature(model string, temperature float64) float64 {
	if strings.Contains(strings.ToLower(model), tempShimMarker) && temperature == 0 {
		e.tempWarn.Do(func() {
			e.logger.Warn("temperature=0 is not allowed for gpt-5 models; using 0.1 instead")
		})
		return tempZeroFloor
	}
	return temperature
}

// callJSON issues one completion call and decodes the JSON object in the
// response content. Empty content decodes as an empty object.
func (e *Engine) callJSON(ctx context.Context, cfg *Config, user string) (map[string]any, llm.FinishReason, llm.Usage, error) {
	comp, err := e.client.Complete(ctx, llm.Request{
		Model:       cfg.Model,
		System:      cfg.Prompts.System,
		User:        user,
		Temperature: e.normalizeTemperature(cfg.Model, cfg.Temperature),
	})
	if err != nil {
		return nil, "", llm.Usage{}, err
	}

	content := comp.Content
	if strings.TrimSpace(content) == "" {
		content = "{}"
	}
	obj, err := llm.ExtractJSON[map[string]any](content)
	if err != nil {
		return nil, "", llm.Usage{}, err
	}
	return obj, comp.FinishReason, comp.Usage, nil
}
