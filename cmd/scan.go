package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"papersum/internal/ingest"
	"papersum/internal/summarize"
)

var scanPapers string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the input corpus and print ingest statistics",
	Long: `Scan loads every document matching the input pattern and prints per-file
statistics (pages, characters, read errors) plus a rough token estimate for
the whole corpus. No model calls are made.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		papers, rows, err := ingest.LoadCorpus(scanPapers)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ingest.FormatScanReport(rows))

		tokens := 0
		for _, p := range papers {
			tokens += summarize.EstimateTokens(p.Text)
		}
		fmt.Fprintf(out, "Estimated tokens: %d\n", tokens)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanPapers, "papers", "input/*.pdf", "Glob pattern for input documents (.pdf, .txt, .md)")
	rootCmd.AddCommand(scanCmd)
}
