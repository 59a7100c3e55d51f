// Package extract turns cleaned dump lines into feature records and splits
// credential lines into semantic fields.
package extract

import (
	"math"
	"strings"
	"unicode"

	"github.com/hashmire/serializ3r/internal/model"
	"github.com/hashmire/serializ3r/internal/patterns"
)

// FeatureExtractor computes the per-line feature record
type FeatureExtractor struct{}

// NewFeatureExtractor creates a new feature extractor
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// Extract computes the feature record for one line. Pure and deterministic:
// the same line always yields the same record.
func (e *FeatureExtractor) Extract(line string) model.Features {
	f := model.Features{
		HasEmail:  patterns.HasEmail(line),
		HasMD5:    patterns.HasMD5(line),
		HasSHA1:   patterns.HasSHA1(line),
		HasSHA256: patterns.HasSHA256(line),
	}

	var alpha, digit, special, whitespace, length int
	for _, r := range line {
		length++
		switch {
		case unicode.IsLetter(r):
			alpha++
		case unicode.IsDigit(r):
			digit++
		case unicode.IsSpace(r):
			whitespace++
		default:
			special++
		}
	}
	f.Length = length
	if length > 0 {
		f.AlphaRatio = float64(alpha) / float64(length)
		f.DigitRatio = float64(digit) / float64(length)
		f.SpecialRatio = float64(special) / float64(length)
		f.WhitespaceRatio = float64(whitespace) / float64(length)
	}

	f.Delimiter = DetectDelimiter(line)
	if f.Delimiter != "" {
		f.FieldCount = strings.Count(line, f.Delimiter) + 1
	} else {
		f.FieldCount = 1
	}

	f.Entropy = Entropy(line)
	return f
}

// DetectDelimiter returns the candidate delimiter occurring most often in
// the line, or "" when none occurs. Ties break toward the earlier entry in
// patterns.Delimiters; the tie-break order is load-bearing because it fixes
// the field count seen by the classifier.
func DetectDelimiter(line string) string {
	best := ""
	bestCount := 0
	for _, delim := range patterns.Delimiters {
		if count := strings.Count(line, delim); count > bestCount {
			best = delim
			bestCount = count
		}
	}
	return best
}

// Entropy computes the Shannon entropy of the line's character multiset:
// -sum(p_i * log2(p_i)). The empty line (and any single repeated character)
// has entropy 0.
func Entropy(line string) float64 {
	if line == "" {
		return 0
	}

	counts := make(map[rune]int)
	total := 0
	for _, r := range line {
		counts[r]++
		total++
	}

	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}
