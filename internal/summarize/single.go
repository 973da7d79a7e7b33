package summarize

import (
	"context"

	"papersum/internal/llm"
)

// Status classifies the outcome of one strategy attempt.
type Status string

const (
	// StatusOK means a normalized summary was produced.
	StatusOK Status = "ok"
	// StatusTruncated means the service stopped at its own output-length
	// limit before completing the summary.
	StatusTruncated Status = "truncated_by_length_limit"
	// StatusTooLarge means the input exceeded the service's context size
	// for one call.
	StatusTooLarge Status = "too_large"
	// StatusTransient marks a retryable failure; the chunked strategy
	// retries these internally and they never surface from SinglePass.
	StatusTransient Status = "transient_error"
	// StatusFatal covers every other failure.
	StatusFatal Status = "fatal_error"
)

// SinglePass attempts to summarize the whole text in one call. It never
// retries: a length-limited response reports StatusTruncated with the
// call's usage, a size-related error reports StatusTooLarge, and any
// other error StatusFatal, the latter two with zero usage.
func (e *Engine) SinglePass(ctx context.Context, text, docContext string, cfg *Config) (Result, Status, llm.Usage) {
	user := renderTemplate(cfg.Prompts.Single, map[string]string{
		"context": docContext,
		"text":    text,
	})

	obj, finish, usage, err := e.callJSON(ctx, cfg, user)
	if err != nil {
		e.logger.Error("single pass failed", "err", err)
		if isSizeSignal(err) {
			return nil, StatusTooLarge, llm.Usage{}
		}
		return nil, StatusFatal, llm.Usage{}
	}
	if finish == llm.FinishLength {
		return nil, StatusTruncated, usage
	}
	return EnsureSchema(obj, cfg.SchemaKeys), StatusOK, usage
}
