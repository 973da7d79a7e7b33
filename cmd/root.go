package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"papersum/internal/version"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "papersum",
	Short: "Adaptive research paper summarization pipeline",
	Long: `Papersum summarizes a corpus of research papers with a language model and
synthesizes the results into a literature review with contextual citations.

Each document is tried in a single pass first; documents that exceed the
model's context window fall back to a recursive map-reduce over binary
splits with character overlap.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real environment variables win
		_ = godotenv.Load()

		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("papersum %s\n", version.String()))

	defaultDebug := os.Getenv("PAPERSUM_DEBUG") != ""
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", defaultDebug, "Enable debug logging")
}

// envOr returns the value of the environment variable name, or def when it
// is unset or empty.
func envOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
