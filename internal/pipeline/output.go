package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"papersum/internal/llm"
)

var (
	// titleStyle for bold blue headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for summary box with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// headerBoxStyle for the run header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// phaseBannerStyle for phase banners
	phaseBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("33")).
				Padding(0, 2)

	// paperNameStyle for file names in progress output
	paperNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)

	// activeStyle for the in-progress indicator
	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

// RunInfo describes a run for the header box.
type RunInfo struct {
	RunID    string
	Provider string
	Model    string
	Mode     string
	Phase    string
	Pattern  string
}

// FormatRunHeader renders the run header with configuration info.
func FormatRunHeader(w io.Writer, info RunInfo) {
	content := fmt.Sprintf("%s %s  %s %s\n%s %s  %s %s\n%s %s\n%s %s",
		dimStyle.Render("Provider:"), titleStyle.Render(info.Provider),
		dimStyle.Render("Model:"), titleStyle.Render(info.Model),
		dimStyle.Render("Mode:"), info.Mode,
		dimStyle.Render("Phase:"), info.Phase,
		dimStyle.Render("Papers:"), info.Pattern,
		dimStyle.Render("Run:"), dimStyle.Render(info.RunID),
	)

	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatPhaseBanner renders a phase banner.
func FormatPhaseBanner(w io.Writer, label string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, phaseBannerStyle.Render(" "+label+" "))
	fmt.Fprintln(w)
}

// FormatPaperStart writes the progress line shown before a paper is
// summarized.
func FormatPaperStart(w io.Writer, name string, pages, chars int) {
	indicator := activeStyle.Render("●")
	meta := dimStyle.Render(fmt.Sprintf("pages=%d chars=%s", pages, formatNumber(chars)))
	fmt.Fprintf(w, "%s %s %s\n", indicator, paperNameStyle.Render(name), meta)
}

// FormatPaperDone writes the completion line for one paper.
func FormatPaperDone(w io.Writer, name, strategy string, usage llm.Usage, ok bool) {
	indicator := successStyle.Render("✓")
	if !ok {
		indicator = errorStyle.Render("✗")
	}
	meta := dimStyle.Render(fmt.Sprintf("%s tokens=%s", strategy, formatNumber(usage.TotalTokens)))
	fmt.Fprintf(w, "%s %s %s\n", indicator, name, meta)
}

// FormatRunSummary renders the final summary box: runtime, token usage, and
// every file written.
func FormatRunSummary(w io.Writer, runtimeSecs float64, usage llm.Usage, written []string) {
	line := fmt.Sprintf("%s %.1fs  %s %s in %s %s out",
		dimStyle.Render("Runtime:"), runtimeSecs,
		dimStyle.Render("Tokens:"), formatNumber(usage.PromptTokens),
		dimStyle.Render("->"), formatNumber(usage.CompletionTokens),
	)

	lines := []string{titleStyle.Render("Run Complete"), line}
	for _, f := range written {
		lines = append(lines, fmt.Sprintf("%s %s", successStyle.Render("wrote"), f))
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}

// FormatUsage renders the strategy and token usage box for single-document
// output.
func FormatUsage(w io.Writer, strategy string, usage llm.Usage) {
	content := fmt.Sprintf("%s %s  %s %s in %s %s out  %s total",
		dimStyle.Render("Strategy:"), strategy,
		dimStyle.Render("Tokens:"), formatNumber(usage.PromptTokens),
		dimStyle.Render("->"), formatNumber(usage.CompletionTokens),
		formatNumber(usage.TotalTokens),
	)
	fmt.Fprintln(w, boxStyle.Render(content))
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
