package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"papersum/internal/ingest"
	"papersum/internal/llm"
	"papersum/internal/pipeline"
	"papersum/internal/summarize"
)

var (
	sumMode     string
	sumProvider string
	sumModel    string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize FILE",
	Short: "Summarize a single document and print the result as JSON",
	Long: `Summarize runs the engine once over one document (.pdf, .txt, or .md) and
prints the structured summary as indented JSON, followed by a usage box.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := summarize.ParseMode(sumMode)
		if err != nil {
			return err
		}

		provider := sumProvider
		if provider == "" {
			provider = envOr("PAPERSUM_PROVIDER", "openai")
		}
		model := sumModel
		if model == "" {
			model = os.Getenv("PAPERSUM_MODEL")
		}

		paper, err := ingest.LoadPaper(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		client, err := llm.NewClient(ctx, provider, model)
		if err != nil {
			return err
		}

		cfg := summarize.DefaultConfig()
		if model != "" {
			cfg.Model = model
		}

		engine := summarize.New(client, summarize.WithLogger(slog.Default()))
		pages := ingest.DropReferencePages(paper.Pages)
		text := ingest.AnnotatePages(pages)

		outcome := engine.Summarize(ctx, text, "", mode, cfg)
		if outcome.Summary == nil {
			return fmt.Errorf("model returned no summary for %s", paper.Name)
		}

		data, err := json.MarshalIndent(outcome.Summary, "", "  ")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, string(data))
		pipeline.FormatUsage(out, outcome.Strategy, outcome.Usage)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&sumMode, "mode", "auto", "Summarization strategy (auto, always, never)")
	summarizeCmd.Flags().StringVar(&sumProvider, "provider", "", "Completion provider: openai, gemini, anthropic (env PAPERSUM_PROVIDER)")
	summarizeCmd.Flags().StringVar(&sumModel, "model", "", "Model name; empty uses the provider default (env PAPERSUM_MODEL)")

	rootCmd.AddCommand(summarizeCmd)
}
