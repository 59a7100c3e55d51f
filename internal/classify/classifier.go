// Package classify labels dump lines with an ordered decision list.
package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/hashmire/serializ3r/internal/model"
	"github.com/hashmire/serializ3r/internal/patterns"
)

// Classifier labels lines and assigns a confidence score. The decision list
// is strictly ordered: the noise check runs only after the credential score
// falls short, so a line that looks like a credential is a credential even
// when it also contains noise vocabulary.
type Classifier struct{}

// NewClassifier creates a new line classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the label and confidence for one line. Pure function of
// (line, features); confidence is always in [0,1].
func (c *Classifier) Classify(line string, f model.Features) (model.LineLabel, float64) {
	// Empty or very short lines
	if utf8.RuneCountInString(strings.TrimSpace(line)) < 3 {
		return model.LabelGarbage, 1.0
	}

	// Separator-only lines, checked before the noise matchers
	if patterns.IsSeparatorLine(line) {
		return model.LabelSeparator, 0.9
	}

	score := c.score(f)

	if score >= 0.6 {
		return model.LabelValidCredential, min(score, 1.0)
	}

	if patterns.IsNoise(line) {
		return model.LabelHeader, 0.8
	}

	return model.LabelGarbage, 1.0 - score
}

// score applies the additive credential heuristics, each at most once
func (c *Classifier) score(f model.Features) float64 {
	score := 0.0

	// Email, or failing that a plausible username-like alpha mix
	if f.HasEmail {
		score += 0.4
	} else if f.AlphaRatio > 0.3 && f.AlphaRatio < 0.9 {
		score += 0.2
	}

	// Hash present
	if f.HasMD5 || f.HasSHA1 || f.HasSHA256 {
		score += 0.3
	}

	// Delimiter present
	if f.Delimiter != "" {
		score += 0.2
	}

	// 2-5 fields is the typical credential shape
	if f.FieldCount >= 2 && f.FieldCount <= 5 {
		score += 0.1
	}

	// Neither too uniform nor too random
	if f.Entropy > 2.0 && f.Entropy < 5.0 {
		score += 0.1
	}

	// Typical credential line length
	if f.Length >= 20 && f.Length <= 200 {
		score += 0.1
	}

	return score
}
