package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"papersum/internal/llm"
	"papersum/internal/pipeline"
	"papersum/internal/summarize"
)

var (
	runPapers   string
	runOut      string
	runPhase    string
	runMode     string
	runProvider string
	runModel    string
	runContext  string
	runHTML     bool
	runCache    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Summarize a paper corpus and build a literature review",
	Long: `Run the two-phase pipeline: Phase 1 summarizes every paper matching the
input pattern into a strict field schema; Phase 2 synthesizes the summaries
into a literature review with one contextual citation line per paper.

Phase "review" alone reuses the summaries.jsonl written by a previous run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := summarize.ParseMode(runMode)
		if err != nil {
			return err
		}
		if err := pipeline.ValidatePhase(runPhase); err != nil {
			return err
		}

		// Env var fallbacks resolve here, after .env has loaded
		provider := runProvider
		if provider == "" {
			provider = envOr("PAPERSUM_PROVIDER", "openai")
		}
		model := runModel
		if model == "" {
			model = os.Getenv("PAPERSUM_MODEL")
		}

		ctx := cmd.Context()
		client, err := llm.NewClient(ctx, provider, model)
		if err != nil {
			return err
		}
		if runCache > 0 {
			client, err = llm.NewCachedClient(client, runCache)
			if err != nil {
				return err
			}
		}

		p := pipeline.New(client, pipeline.Options{
			Papers:   runPapers,
			OutDir:   runOut,
			Phase:    runPhase,
			Mode:     mode,
			Provider: provider,
			Model:    model,
			Context:  runContext,
			HTML:     runHTML,
		}, slog.Default(), cmd.OutOrStdout())

		return p.Run(ctx)
	},
}

func init() {
	runCmd.Flags().StringVar(&runPapers, "papers", "input/*.pdf", "Glob pattern for input documents (.pdf, .txt, .md)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "output", "Directory for generated reports")
	runCmd.Flags().StringVar(&runPhase, "phase", pipeline.PhaseBoth, "Pipeline phase to run (summaries, review, both)")
	runCmd.Flags().StringVar(&runMode, "mode", "auto", "Summarization strategy (auto, always, never)")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "Completion provider: openai, gemini, anthropic (env PAPERSUM_PROVIDER)")
	runCmd.Flags().StringVar(&runModel, "model", "", "Model name; empty uses the provider default (env PAPERSUM_MODEL)")
	runCmd.Flags().StringVar(&runContext, "context", "", "Research context quoted in the review prompts")
	runCmd.Flags().BoolVar(&runHTML, "html", false, "Also render each Markdown report to HTML")
	runCmd.Flags().IntVar(&runCache, "cache", 0, "LRU response cache size (0 = disabled)")

	rootCmd.AddCommand(runCmd)
}
