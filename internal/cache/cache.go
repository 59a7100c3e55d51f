// Package cache memoizes classifier verdicts for duplicate lines.
// Credential dumps repeat lines heavily, so caching the (pure) feature
// extraction and classification of a cleaned line skips most of the work on
// repeats without changing observable behavior.
package cache

import (
	"github.com/hashmire/serializ3r/internal/model"
)

// Verdict is a memoized classification of one cleaned line
type Verdict struct {
	Label      model.LineLabel
	Confidence float64
	Features   model.Features
}

// Cache defines the interface for verdict caching
type Cache interface {
	Get(key string) (Verdict, bool)
	Set(key string, v Verdict)
	Flush()
}
