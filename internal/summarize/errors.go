package summarize

import "strings"

// sizeSignalPhrases are the service phrasings that mark a failed call as
// "input too large for one call". The match is a best-effort heuristic on
// message text; extend this list rather than the control flow around it.
var sizeSignalPhrases = []string{
	"context length",
	"maximum context",
	"too many tokens",
	"input is too long",
}

// isSizeSignal reports whether err indicates the input exceeded the
// service's context size. Wrapped errors keep their message text, so
// wrapping does not hide the signal.
func isSizeSignal(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range sizeSignalPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
