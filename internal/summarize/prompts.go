package summarize

// Default instruction templates. The paper set extracts one structured
// summary per document; the review set synthesizes a corpus-level
// literature review from those summaries.

// PaperSystemPrompt defines the strict JSON contract for per-paper
// summaries, including the [p=#] page-anchor rule.
const PaperSystemPrompt = `You are an expert scientific summarizer.
Return a STRICT JSON object with EXACT keys:
  main_idea, objective, design, methods, results, main_findings.
For EACH value, write 2–4 ultra-concise bullets (max 25 words each).
The text contains explicit page anchors in the form <<p=#>> before each page.
After each bullet, append the page anchor [p=#] matching the most relevant page (pick one).
Copy numbers/terms exactly; do NOT invent or infer. If nothing is reported, write 'Not reported'.
No extra keys or commentary.`

// PaperSinglePrompt is the single-pass template for one whole paper.
// Paper summaries are context-free, so it carries no {context} placeholder.
const PaperSinglePrompt = `Summarize into the required fields using ONLY the text below.
Prioritize research question(s), sample/population, design/manipulations, measures, statistical methods,
key effect sizes/coefficients, and the main conclusion(s).

TEXT:
{text}`

// PaperMapPrompt is the per-chunk template for one part of a paper.
const PaperMapPrompt = `This is a PART of one paper. Extract ONLY what is present in this chunk.
Return the same strict JSON with bullet style and page anchors.

CHUNK:
{chunk}`

// PaperReducePrompt merges partial summaries of the same paper.
const PaperReducePrompt = `You are given multiple partial JSON summaries from chunks of the SAME paper.
Merge into ONE final JSON with the exact keys. Remove duplicates, keep the most specific bullets,
and preserve page anchors. If a field is never reported, write 'Not reported'.

PARTIALS:
{partials}`

// ReviewSystemPrompt defines the strict JSON contract for the
// corpus-level synthesis, including the citation line format.
const ReviewSystemPrompt = `You are an expert reviewer.
Return a STRICT JSON object with EXACT keys: literature_review, contextual_citations.
literature_review: 1–2 paragraphs synthesizing similarities/differences across papers (methods, samples, results, disagreements).
contextual_citations: newline-separated, ONE line per paper in EXACT format:
[<idx>] <label> — Core: <1 short clause>; Design: <design/sample>; Methods: <method/model>; Key result: <most important quantitative/result phrase> [p=# if known].
<idx> is the paper number from the corpus; <label> is the file name unless an Author (Year) is explicit in the text.
No extra keys or commentary.`

// ReviewSinglePrompt is the single-pass template over all summaries.
const ReviewSinglePrompt = `Context: "{context}"

You are given structured summaries of multiple papers.
Produce the synthesis and the contextual citations in the exact format.

SUMMARIES:
{text}`

// ReviewMapPrompt is the per-chunk template for part of the summaries corpus.
const ReviewMapPrompt = `Context: "{context}"

This is a PART of the summaries corpus. Extract ONLY what is present here and return the same strict JSON.
For contextual_citations, include only items supported by this chunk.

CHUNK:
{chunk}`

// ReviewReducePrompt merges partial synthesis outputs.
const ReviewReducePrompt = `Context: "{context}"

You are given multiple partial JSON outputs for the same task.
Merge into ONE final JSON with the exact keys. Concatenate literature_review coherently;
deduplicate contextual_citations (newline-separated list).

PARTIALS:
{partials}`

// PaperSchemaKeys returns the ordered schema for per-paper summaries.
func PaperSchemaKeys() []string {
	return []string{"main_idea", "objective", "design", "methods", "results", "main_findings"}
}

// ReviewSchemaKeys returns the ordered schema for the corpus synthesis.
func ReviewSchemaKeys() []string {
	return []string{"literature_review", "contextual_citations"}
}

// PaperPrompts returns the per-paper template set.
func PaperPrompts() PromptSet {
	return PromptSet{
		System: PaperSystemPrompt,
		Single: PaperSinglePrompt,
		Map:    PaperMapPrompt,
		Reduce: PaperReducePrompt,
	}
}

// ReviewPrompts returns the literature-review template set.
func ReviewPrompts() PromptSet {
	return PromptSet{
		System: ReviewSystemPrompt,
		Single: ReviewSinglePrompt,
		Map:    ReviewMapPrompt,
		Reduce: ReviewReducePrompt,
	}
}
