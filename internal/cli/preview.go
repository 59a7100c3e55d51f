package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hashmire/serializ3r/internal/model"
	"github.com/hashmire/serializ3r/internal/pipeline"
)

var previewLines int

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview <input-file>",
	Short: "Preview the contents of a credential dump file",
	Long: `Preview shows the first N lines of a dump with each line's
classification and confidence, without extracting fields or writing
any output.

Example:
  serializ3r preview dump.txt
  serializ3r preview dump.txt --lines 50`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVar(&previewLines, "lines", 20, "number of lines to preview")
}

func runPreview(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = file.Close() }()

	fmt.Printf("Preview of: %s\n\n", inputPath)

	n := pipeline.NewNormalizer(model.DefaultConfig(), buildLogger())

	shown, err := previewInto(os.Stdout, n, file, previewLines)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Printf("\nShowing first %d lines\n", shown)
	return nil
}

// previewInto writes per-line verdicts for the first maxLines physical
// lines of r. Blank lines consume the line budget but are not displayed.
// Returns the number of physical lines consumed.
func previewInto(w io.Writer, n *pipeline.Normalizer, r io.Reader, maxLines int) (int, error) {
	lineNum := 0
	scanner := bufio.NewScanner(r)
	for lineNum < maxLines && scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		label, confidence := n.ClassifyLine(line)

		marker := "✗"
		if label == model.LabelValidCredential {
			marker = "✓"
		}

		display := line
		if runes := []rune(display); len(runes) > 80 {
			display = string(runes[:80])
		}
		fmt.Fprintf(w, "%3d [%s] %-16s %.2f  %s\n", lineNum, marker, label, confidence, display)
	}
	return lineNum, scanner.Err()
}
