package summarize

import (
	"context"
	"time"

	"papersum/internal/llm"
)

const (
	// chunkAttempts bounds leaf call attempts per text span.
	chunkAttempts = 2
	// chunkRetryDelay is the pause before the final leaf attempt.
	chunkRetryDelay = 600 * time.Millisecond
)

// summarizeChunk issues the map call for one text span with a bounded
// retry: a transient failure gets one more attempt after a short pause,
// while a size-related error propagates immediately so the caller can
// split instead of retrying a call that cannot succeed.
func (e *Engine) summarizeChunk(ctx context.Context, chunk, docContext string, cfg *Config) (Result, llm.Usage, error) {
	user := renderTemplate(cfg.Prompts.Map, map[string]string{
		"context": docContext,
		"chunk":   chunk,
	})

	var usage llm.Usage
	for attempt := 1; ; attempt++ {
		obj, _, u, err := e.callJSON(ctx, cfg, user)
		if err == nil {
			usage = usage.Add(u)
			return EnsureSchema(obj, cfg.SchemaKeys), usage, nil
		}
		e.logger.Error("chunk call failed", "attempt", attempt, "err", err)
		if isSizeSignal(err) || attempt >= chunkAttempts {
			return nil, usage, err
		}
		e.sleep(chunkRetryDelay)
	}
}

// recursiveBinaryMap produces one summary for a span of any size: it
// tries a leaf call first and, when the span is too large, bisects it
// with overlap, recurses on each half depth-first, and merges the two
// partials. Usage at every level is exactly left + right + merge. Errors
// other than size signals propagate unchanged from any depth. Termination
// holds because each half is strictly shorter than its parent whenever
// the parent is longer than the overlap.
func (e *Engine) recursiveBinaryMap(ctx context.Context, text, docContext string, cfg *Config) (Result, llm.Usage, error) {
	part, usage, err := e.summarizeChunk(ctx, text, docContext, cfg)
	if err == nil {
		return part, usage, nil
	}
	if !isSizeSignal(err) {
		return nil, llm.Usage{}, err
	}

	e.logger.Debug("span too large; splitting", "chars", len(text), "overlap", cfg.BinaryOverlap)
	leftText, rightText := splitInTwo(text, cfg.BinaryOverlap)

	left, usageLeft, err := e.recursiveBinaryMap(ctx, leftText, docContext, cfg)
	if err != nil {
		return nil, llm.Usage{}, err
	}
	right, usageRight, err := e.recursiveBinaryMap(ctx, rightText, docContext, cfg)
	if err != nil {
		return nil, llm.Usage{}, err
	}

	merged, usageMerge := e.reducePartials(ctx, []Result{left, right}, docContext, cfg)
	return merged, usageLeft.Add(usageRight).Add(usageMerge), nil
}

// ChunkedMapReduce summarizes text of arbitrary size via recursive
// bisection and pairwise merging.
func (e *Engine) ChunkedMapReduce(ctx context.Context, text, docContext string, cfg *Config) (Result, llm.Usage, error) {
	return e.recursiveBinaryMap(ctx, text, docContext, cfg)
}
