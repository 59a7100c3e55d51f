// Package pipeline orchestrates the per-line normalization flow:
// clean -> features -> classify -> field roles -> entry -> JSONL.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/hashmire/serializ3r/internal/cache"
	"github.com/hashmire/serializ3r/internal/classify"
	"github.com/hashmire/serializ3r/internal/extract"
	"github.com/hashmire/serializ3r/internal/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Throttle paces the line loop; the worker package provides a
// rate-limited implementation
type Throttle interface {
	Wait(ctx context.Context) error
}

// Normalizer drives the classification-and-extraction pipeline over dump
// lines. All components below it are pure; the only mutable state per run
// is the stats counters local to each NormalizeStream call.
type Normalizer struct {
	features   *extract.FeatureExtractor
	classifier *classify.Classifier
	fields     *extract.FieldExtractor
	verdicts   cache.Cache // nil when caching is disabled
	throttle   Throttle    // nil when rate limiting is disabled
	config     *model.Config
	logger     *zap.Logger
}

// NewNormalizer creates a normalizer with the given configuration
func NewNormalizer(cfg *model.Config, logger *zap.Logger) *Normalizer {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var verdicts cache.Cache
	if cfg.Cache.Enabled {
		verdicts = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
	}

	if cfg.LM.Enabled {
		logger.Warn("language model support not yet implemented, falling back to heuristic classification")
	}

	return &Normalizer{
		features:   extract.NewFeatureExtractor(),
		classifier: classify.NewClassifier(),
		fields:     extract.NewFieldExtractor(),
		verdicts:   verdicts,
		config:     cfg,
		logger:     logger,
	}
}

// SetThrottle installs a pacing limiter for the stream loop
func (n *Normalizer) SetThrottle(t Throttle) {
	n.throttle = t
}

// CleanLine trims surrounding whitespace, strips NUL bytes, collapses
// whitespace runs to a single space, and replaces invalid byte sequences
func (n *Normalizer) CleanLine(line string) string {
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}
	if n.config.Normalize.UnicodeNFKC {
		line = norm.NFKC.String(line)
	}
	line = strings.TrimSpace(line)
	line = strings.ReplaceAll(line, "\x00", "")
	line = whitespaceRun.ReplaceAllString(line, " ")
	return line
}

// ClassifyLine is the diagnostic entry point: it cleans and classifies a
// single line without extracting fields, for preview and inspection
func (n *Normalizer) ClassifyLine(line string) (model.LineLabel, float64) {
	cleaned := n.CleanLine(line)
	label, confidence, _ := n.classifyCached(cleaned)
	return label, confidence
}

// classifyCached computes (or recalls) the verdict for a cleaned line
func (n *Normalizer) classifyCached(cleaned string) (model.LineLabel, float64, model.Features) {
	if n.verdicts != nil {
		if v, ok := n.verdicts.Get(cleaned); ok {
			return v.Label, v.Confidence, v.Features
		}
	}

	features := n.features.Extract(cleaned)
	label, confidence := n.classifier.Classify(cleaned, features)

	if n.verdicts != nil {
		n.verdicts.Set(cleaned, cache.Verdict{
			Label:      label,
			Confidence: confidence,
			Features:   features,
		})
	}
	return label, confidence, features
}

// NormalizeLine normalizes a single dump line. It returns nil for empty
// lines and for lines classified as anything other than a valid credential,
// and for degenerate parses that filled no credential role.
func (n *Normalizer) NormalizeLine(line string, lineNumber int) *model.CredentialEntry {
	cleaned := n.CleanLine(line)
	if cleaned == "" {
		return nil
	}

	label, confidence, features := n.classifyCached(cleaned)
	if label != model.LabelValidCredential {
		return nil
	}

	entry := n.fields.Parse(cleaned, features.Delimiter)

	entry.Confidence = confidence
	entry.LineNumber = lineNumber
	entry.SourceLine = cleaned
	entry.DetectedFormat = detectFormat(entry, features.Delimiter)

	// Guard against parses that passed classification but yielded nothing
	if !entry.HasData() {
		return nil
	}

	return entry
}

// normalizeLineSafe isolates per-line failures so one bad line never
// aborts the run
func (n *Normalizer) normalizeLineSafe(line string, lineNumber int) (entry *model.CredentialEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entry = nil
			err = fmt.Errorf("line %d: %v", lineNumber, r)
		}
	}()
	return n.NormalizeLine(line, lineNumber), nil
}

// NormalizeStream processes lines strictly in input order, emitting
// accepted entries as JSONL and returning the aggregate run statistics.
// Per-line failures are counted and skipped; only resource-level failures
// return an error.
func (n *Normalizer) NormalizeStream(ctx context.Context, r io.Reader, w io.Writer, minConfidence float64) (model.RunStats, error) {
	var stats model.RunStats

	writer := NewWriter(w)
	// No line-length cap: lines are read whole regardless of size
	reader := bufio.NewReader(r)

	for lineNum := 1; ; lineNum++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			_ = writer.Flush()
			return stats, fmt.Errorf("read input: %w", readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}

		if err := ctx.Err(); err != nil {
			_ = writer.Flush()
			return stats, err
		}
		if n.throttle != nil {
			if err := n.throttle.Wait(ctx); err != nil {
				_ = writer.Flush()
				return stats, err
			}
		}

		stats.TotalLines++

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		entry, err := n.normalizeLineSafe(line, lineNum)
		if err != nil {
			stats.Errors++
			n.logger.Debug("line processing failed",
				zap.Int("line", lineNum),
				zap.Error(err))
		} else if entry != nil {
			if entry.Confidence >= minConfidence {
				if werr := writer.Write(entry); werr != nil {
					return stats, fmt.Errorf("write entry: %w", werr)
				}
				stats.ValidCredentials++
			} else {
				stats.FilteredLowConfidence++
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	return stats, nil
}

// NormalizeFile is the per-file entry point used by the CLI and the batch
// processor. Failure to open either path is fatal and aborts the run.
func (n *Normalizer) NormalizeFile(ctx context.Context, inputPath, outputPath string, minConfidence float64) (model.RunStats, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return model.RunStats{}, fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(outputPath)
	if err != nil {
		return model.RunStats{}, fmt.Errorf("create output: %w", err)
	}

	stats, err := n.NormalizeStream(ctx, in, out, minConfidence)
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close output: %w", closeErr)
	}
	if err != nil {
		return stats, err
	}

	n.logger.Debug("file normalized",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("total_lines", stats.TotalLines),
		zap.Int("valid_credentials", stats.ValidCredentials))

	return stats, nil
}

// detectFormat names the roles present in the entry, in fixed order,
// joined by the detected delimiter (":" when none was detected)
func detectFormat(entry *model.CredentialEntry, delimiter string) string {
	var parts []string
	if entry.Email != "" {
		parts = append(parts, "email")
	}
	if entry.Username != "" {
		parts = append(parts, "username")
	}
	if entry.Password != "" {
		parts = append(parts, "password")
	}
	if entry.PasswordHash != "" {
		parts = append(parts, "hash")
	}

	if len(parts) == 0 {
		return "unknown"
	}
	if delimiter == "" {
		delimiter = ":"
	}
	return strings.Join(parts, delimiter)
}
