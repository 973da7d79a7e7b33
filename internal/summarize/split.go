package summarize

import "strings"

// splitInTwo halves text at its character midpoint, carrying overlap/2
// characters past the midpoint into each half so content straddling the
// boundary survives in both. Both halves are trimmed of surrounding
// whitespace.
func splitInTwo(text string, overlap int) (string, string) {
	runes := []rune(text)
	n := len(runes)
	mid := n / 2

	hi := min(n, mid+overlap/2)
	lo := max(0, mid-overlap/2)

	left := strings.TrimSpace(string(runes[:hi]))
	right := strings.TrimSpace(string(runes[lo:]))
	return left, right
}
