package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hashmire/serializ3r/internal/model"
	"github.com/hashmire/serializ3r/internal/pipeline"
	"github.com/hashmire/serializ3r/internal/worker"
)

var (
	minConfidence float64
	useLM         bool
	noCache       bool
	nfkc          bool
	maxRate       float64
	rateBurst     int
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <input-file> <output-file>",
	Short: "Normalize a credential dump file to JSONL format",
	Long: `Normalize parses a poorly formatted credential dump into normalized
JSONL records. Each line is classified by a fixed heuristic rule set;
lines scoring below the confidence threshold are filtered out.

Example:
  serializ3r normalize dump.txt output.jsonl
  serializ3r normalize dump.txt output.jsonl --min-confidence 0.7
  serializ3r normalize huge.txt out.jsonl --max-rate 50000`,
	Args: cobra.ExactArgs(2),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().Float64Var(&minConfidence, "min-confidence", 0.5, "minimum confidence threshold (0.0-1.0)")
	normalizeCmd.Flags().BoolVar(&useLM, "use-lm", false, "use language model for ambiguous cases (not yet implemented)")
	normalizeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the duplicate-line classification cache")
	normalizeCmd.Flags().BoolVar(&nfkc, "nfkc", false, "apply NFKC unicode normalization during cleaning")
	normalizeCmd.Flags().Float64Var(&maxRate, "max-rate", 0, "max lines per second (0 = unlimited)")
	normalizeCmd.Flags().IntVar(&rateBurst, "burst", 1000, "burst size for --max-rate")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath := args[1]
	ctx := context.Background()

	fmt.Fprintf(os.Stderr, "Processing: %s\n", inputPath)
	fmt.Fprintf(os.Stderr, "Output: %s\n", outputPath)
	fmt.Fprintf(os.Stderr, "Minimum confidence: %.2f\n", minConfidence)

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Normalize.MinConfidence = minConfidence
	cfg.Normalize.UnicodeNFKC = nfkc
	cfg.Cache.Enabled = !noCache
	cfg.RateLimiting.LinesPerSecond = maxRate
	cfg.RateLimiting.BurstSize = rateBurst
	cfg.Output.Verbose = verbose
	cfg.LM.Enabled = useLM

	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	n := pipeline.NewNormalizer(cfg, logger)
	if maxRate > 0 {
		n.SetThrottle(worker.NewLineLimiter(maxRate, rateBurst))
	}

	stats, err := n.NormalizeFile(ctx, inputPath, outputPath, minConfidence)
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\n✓ Processing complete!\n")
	fmt.Fprintf(os.Stderr, "  Total lines processed: %d\n", stats.TotalLines)
	fmt.Fprintf(os.Stderr, "  Valid credentials extracted: %d\n", stats.ValidCredentials)
	fmt.Fprintf(os.Stderr, "  Filtered (low confidence): %d\n", stats.FilteredLowConfidence)
	if stats.Errors > 0 {
		fmt.Fprintf(os.Stderr, "  ⚠ Errors encountered: %d\n", stats.Errors)
	}
	fmt.Fprintf(os.Stderr, "  Success rate: %.1f%%\n", stats.SuccessRate()*100)

	return nil
}
