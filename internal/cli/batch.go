package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hashmire/serializ3r/internal/model"
	"github.com/hashmire/serializ3r/internal/pipeline"
	"github.com/hashmire/serializ3r/internal/worker"
)

var (
	concurrency        int
	batchMinConfidence float64
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <input-pattern> <output-dir>",
	Short: "Batch normalize multiple credential dump files",
	Long: `Batch expands a glob pattern and normalizes every matching file
concurrently. Each input file produces <stem>_normalized.jsonl in the
output directory; line order within every output file matches its input.

Example:
  serializ3r batch "./dumps/*.txt" ./output/
  serializ3r batch "./dumps/*.txt" ./output/ --concurrency 8 --min-confidence 0.7`,
	Args: cobra.ExactArgs(2),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().Float64Var(&batchMinConfidence, "min-confidence", 0.5, "minimum confidence threshold (0.0-1.0)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	outputDir := args[1]
	ctx := context.Background()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  serializ3r Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Pattern:      %s\n", pattern)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Normalize.MinConfidence = batchMinConfidence
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose

	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	n := pipeline.NewNormalizer(cfg, logger)
	processor := worker.NewBatchProcessor(n, concurrency, batchMinConfidence)

	results, err := processor.ProcessGlob(ctx, pattern, outputDir)
	if err != nil {
		return fmt.Errorf("process glob: %w", err)
	}

	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.InputPath, result.Error)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (%d/%d lines valid)\n",
			result.InputPath, result.Stats.ValidCredentials, result.Stats.TotalLines)
	}

	summary := worker.Summarize(results)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Run ID:    %s\n", summary.RunID)
	fmt.Fprintf(os.Stderr, "  Files:     %d (%d ok, %d failed)\n", summary.Files, summary.Succeeded, summary.Failed)
	fmt.Fprintf(os.Stderr, "  Lines:     %d\n", summary.Stats.TotalLines)
	fmt.Fprintf(os.Stderr, "  Valid:     %d\n", summary.Stats.ValidCredentials)
	fmt.Fprintf(os.Stderr, "  Filtered:  %d\n", summary.Stats.FilteredLowConfidence)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", summary.Stats.Errors)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
