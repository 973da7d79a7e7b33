package summarize

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// PromptSet holds the four instruction templates the engine fills per
// call. Placeholders use {name} syntax; each template recognizes only its
// own names and anything else fails validation.
type PromptSet struct {
	// System is sent verbatim as the system instruction on every call.
	System string

	// Single is the single-pass template ({context}, {text}).
	Single string

	// Map is the per-chunk template ({context}, {chunk}).
	Map string

	// Reduce is the merge template ({context}, {partials}).
	Reduce string
}

// Config holds one summarization task's parameters. It is owned by the
// caller, passed unchanged into every engine call, and never mutated by
// the engine; validate once with Validate before use.
type Config struct {
	// Model is the text-generation model identifier (e.g. "gpt-5").
	Model string

	// SchemaKeys is the ordered set of fields every summary must contain.
	SchemaKeys []string

	// Temperature is passed to the service on every call.
	Temperature float64

	// BinaryOverlap is the character count shared by the two halves of a
	// split, so content straddling the midpoint survives in both.
	BinaryOverlap int

	// DropRefsAfterPage truncates cleaned input to this many leading
	// pages (0 = disabled).
	DropRefsAfterPage int

	// CutAtReferences drops the page carrying a references, bibliography,
	// or literature heading and every page after it.
	CutAtReferences bool

	// Prompts holds the instruction templates.
	Prompts PromptSet
}

// DefaultConfig returns a Config with the per-paper summary defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:             "gpt-5",
		SchemaKeys:        PaperSchemaKeys(),
		Temperature:       1,
		BinaryOverlap:     500,
		DropRefsAfterPage: 0,
		CutAtReferences:   true,
		Prompts:           PaperPrompts(),
	}
}

// Validate checks the Config once at construction time.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("config: model is required")
	}
	if len(c.SchemaKeys) == 0 {
		return errors.New("config: at least one schema key is required")
	}
	if c.BinaryOverlap < 0 {
		return errors.New("config: binary overlap must be non-negative")
	}
	if c.DropRefsAfterPage < 0 {
		return errors.New("config: page limit must be non-negative")
	}
	if err := validateTemplate("system", c.Prompts.System); err != nil {
		return err
	}
	if err := validateTemplate("single", c.Prompts.Single, "context", "text"); err != nil {
		return err
	}
	if err := validateTemplate("map", c.Prompts.Map, "context", "chunk"); err != nil {
		return err
	}
	if err := validateTemplate("reduce", c.Prompts.Reduce, "context", "partials"); err != nil {
		return err
	}
	return nil
}

// placeholderRe matches the substitution points a template may carry.
var placeholderRe = regexp.MustCompile(`\{[a-z_]+\}`)

func validateTemplate(name, tpl string, allowed ...string) error {
	if strings.TrimSpace(tpl) == "" {
		return fmt.Errorf("config: prompt template %q is empty", name)
	}
	for _, m := range placeholderRe.FindAllString(tpl, -1) {
		ph := m[1 : len(m)-1]
		if !slices.Contains(allowed, ph) {
			return fmt.Errorf("config: prompt template %q references unknown placeholder {%s}", name, ph)
		}
	}
	return nil
}

// renderTemplate substitutes each {name} placeholder in a single pass, so
// placeholder-like text inside substituted values is left alone.
func renderTemplate(tpl string, vars map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(tpl, func(m string) string {
		if v, ok := vars[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
