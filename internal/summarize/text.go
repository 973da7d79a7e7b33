package summarize

import (
	"regexp"
	"strings"
	"unicode"
)

// PageBreak delimits page texts inside a multi-page document string.
const PageBreak = "\n\n----- PAGE BREAK -----\n\n"

var (
	multiNewlineRe = regexp.MustCompile(`\n{3,}`)

	// refHeadingRe matches a references, bibliography, or literature
	// heading at the start of a line, case-insensitively.
	refHeadingRe = regexp.MustCompile(`(?im)^\s*(references|bibliography|literature)\b`)
)

// CleanText normalizes whitespace and optionally truncates the text at a
// reference-section heading or a fixed page count. dropAfterPage keeps at
// most that many leading pages (0 = disabled) and is applied after the
// heading cut. CleanText never fails; worst case it returns the trimmed
// input unchanged.
func CleanText(text string, dropAfterPage int, cutAtReferences bool) string {
	s := multiNewlineRe.ReplaceAllString(text, "\n\n")
	s = strings.TrimSpace(s)

	if cutAtReferences {
		s = truncateAtReferenceHeading(s)
	}

	if dropAfterPage > 0 {
		pages := strings.Split(s, PageBreak)
		if len(pages) > dropAfterPage {
			s = strings.TrimRightFunc(strings.Join(pages[:dropAfterPage], PageBreak), unicode.IsSpace)
		}
	}

	return s
}

// truncateAtReferenceHeading drops the first page carrying a reference
// heading and every page after it.
func truncateAtReferenceHeading(s string) string {
	pages := strings.Split(s, PageBreak)
	for i, p := range pages {
		if HasReferenceHeading(p) {
			return strings.TrimRightFunc(strings.Join(pages[:i], PageBreak), unicode.IsSpace)
		}
	}
	return s
}

// HasReferenceHeading reports whether text contains a line beginning with a
// references, bibliography, or literature heading.
func HasReferenceHeading(text string) bool {
	return refHeadingRe.MatchString(text)
}
