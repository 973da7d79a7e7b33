package summarize

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"papersum/internal/llm"
)

const (
	// reduceAttempts bounds merge call attempts.
	reduceAttempts = 2
	// reduceRetryDelay is the pause between merge attempts.
	reduceRetryDelay = 800 * time.Millisecond
)

// reducePartials merges partial summaries with one service call, retrying
// once on any error; when every attempt fails it falls back to the
// deterministic local merge, so the reduce step always returns a result.
func (e *Engine) reducePartials(ctx context.Context, parts []Result, docContext string, cfg *Config) (Result, llm.Usage) {
	serialized, err := json.Marshal(parts)
	if err != nil {
		e.logger.Error("marshal partials failed", "err", err)
		return localMerge(parts, cfg.SchemaKeys), llm.Usage{}
	}
	user := renderTemplate(cfg.Prompts.Reduce, map[string]string{
		"context":  docContext,
		"partials": string(serialized),
	})

	var usage llm.Usage
	for attempt := 1; attempt <= reduceAttempts; attempt++ {
		obj, _, u, err := e.callJSON(ctx, cfg, user)
		if err == nil {
			usage = usage.Add(u)
			return EnsureSchema(obj, cfg.SchemaKeys), usage
		}
		e.logger.Error("reduce call failed", "attempt", attempt, "err", err)
		if attempt < reduceAttempts {
			e.sleep(reduceRetryDelay)
		}
	}

	e.logger.Warn("reduce fell back to local merge", "partials", len(parts))
	return localMerge(parts, cfg.SchemaKeys), usage
}

// localMerge combines partials without the network: for each key, the
// first non-empty value that is not the sentinel wins, scanning partials
// in order; the sentinel comparison is case-insensitive.
func localMerge(parts []Result, keys []string) Result {
	merged := make(Result, len(keys))
	for _, k := range keys {
		val := NotReported
		for _, p := range parts {
			v := strings.TrimSpace(p[k])
			if v != "" && !strings.EqualFold(v, NotReported) {
				val = v
				break
			}
		}
		merged[k] = val
	}
	return merged
}
