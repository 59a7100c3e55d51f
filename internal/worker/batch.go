package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hashmire/serializ3r/internal/model"
)

// FileNormalizer defines the interface for normalizing a single dump file
type FileNormalizer interface {
	NormalizeFile(ctx context.Context, inputPath, outputPath string, minConfidence float64) (model.RunStats, error)
}

// FileJob represents a single-file normalization job
type FileJob struct {
	Index         int
	InputPath     string
	OutputPath    string
	MinConfidence float64
	Normalizer    FileNormalizer
}

// Execute executes the normalization job
func (j *FileJob) Execute(ctx context.Context) Result {
	stats, err := j.Normalizer.NormalizeFile(ctx, j.InputPath, j.OutputPath, j.MinConfidence)
	return &FileResult{
		Index:      j.Index,
		InputPath:  j.InputPath,
		OutputPath: j.OutputPath,
		Stats:      stats,
		Error:      err,
	}
}

// FileResult represents the result of normalizing one file
type FileResult struct {
	Index      int
	InputPath  string
	OutputPath string
	Stats      model.RunStats
	Error      error
}

// GetError returns the error from the file result
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor normalizes multiple dump files concurrently. Each file is
// processed sequentially by one worker, so line order within every output
// file matches its input; results are returned in input-file order.
type BatchProcessor struct {
	normalizer    FileNormalizer
	concurrency   int
	minConfidence float64
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(n FileNormalizer, concurrency int, minConfidence float64) *BatchProcessor {
	return &BatchProcessor{
		normalizer:    n,
		concurrency:   concurrency,
		minConfidence: minConfidence,
	}
}

// ProcessFiles normalizes the given files into outputDir
func (b *BatchProcessor) ProcessFiles(ctx context.Context, files []string, outputDir string) []*FileResult {
	if len(files) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, inputPath := range files {
		pool.Submit(&FileJob{
			Index:         i,
			InputPath:     inputPath,
			OutputPath:    OutputPath(inputPath, outputDir),
			MinConfidence: b.minConfidence,
			Normalizer:    b.normalizer,
		})
	}

	results := pool.Wait()

	fileResults := make([]*FileResult, len(results))
	for i, result := range results {
		fileResults[i] = result.(*FileResult)
	}

	// Restore input-file order
	sort.Slice(fileResults, func(i, j int) bool {
		return fileResults[i].Index < fileResults[j].Index
	})

	return fileResults
}

// ProcessGlob expands the pattern and normalizes every matching file
func (b *BatchProcessor) ProcessGlob(ctx context.Context, pattern, outputDir string) ([]*FileResult, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expand glob: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found matching pattern: %s", pattern)
	}
	sort.Strings(files)

	return b.ProcessFiles(ctx, files, outputDir), nil
}

// OutputPath derives the output file name for an input dump:
// <output-dir>/<stem>_normalized.jsonl
func OutputPath(inputPath, outputDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+"_normalized.jsonl")
}

// BatchSummary aggregates a batch run
type BatchSummary struct {
	RunID     string         `json:"run_id"`
	Files     int            `json:"files"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Stats     model.RunStats `json:"stats"`
}

// Summarize rolls up per-file results into a batch summary with a run id
func Summarize(results []*FileResult) BatchSummary {
	summary := BatchSummary{
		RunID: uuid.NewString(),
		Files: len(results),
	}
	for _, r := range results {
		if r.Error != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Stats.Add(r.Stats)
	}
	return summary
}
