// Package summarize implements the adaptive summarization engine: it
// extracts a fixed-schema structured summary from a document by calling a
// text-generation service, falling back to recursive binary chunking when
// the document is too large for a single call.
//
// # Overview
//
// The engine cleans the input text, then picks a strategy per the
// requested mode:
//
//   - single pass: one call over the whole text
//   - chunked map-reduce: recursively halve the text (with character
//     overlap) until each piece fits in one call, then merge the partial
//     summaries pairwise
//
// In auto mode the single pass runs first and any failure triggers the
// chunked fallback. Token usage is accumulated bottom-up through the
// recursion so the returned total is exactly the sum over every call
// issued.
//
// # Key Concepts
//
//   - Size-signal classification: a failed call is treated as "input too
//     large" only when its error message matches known service phrasings;
//     that classification is what drives splitting.
//   - Schema normalization: every summary is coerced to the configured
//     field list, substituting "Not reported" for anything missing.
//   - Local merge fallback: if the merge call fails repeatedly, partials
//     are merged deterministically without the network, so the chunked
//     strategy cannot fail at the reduce step.
//
// # Usage
//
//	cfg := summarize.DefaultConfig()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//	eng := summarize.New(client, summarize.WithLogger(logger))
//	outcome := eng.Summarize(ctx, text, "", summarize.ModeAuto, cfg)
//
// # Architecture
//
//   - config.go: Config record, validation, template rendering
//   - prompts.go: default instruction templates
//   - text.go: preprocessor (newline collapse, reference truncation)
//   - schema.go: result normalization
//   - single.go: single-pass strategy
//   - chunk.go: recursive binary map
//   - reduce.go: merge step with deterministic fallback
//   - engine.go: orchestrator, modes, temperature handling
package summarize
