package model

import "time"

// Config holds the complete serializ3r configuration
type Config struct {
	Normalize    NormalizeConfig    `yaml:"normalize"`
	Cache        CacheConfig        `yaml:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
	LM           LMConfig           `yaml:"lm"`
}

// NormalizeConfig controls the per-line normalization behavior
type NormalizeConfig struct {
	// MinConfidence filters entries scoring below this threshold
	MinConfidence float64 `yaml:"min_confidence"`
	// UnicodeNFKC applies NFKC normalization during line cleaning.
	// Off by default: baseline cleaning is trim + NUL strip + whitespace collapse.
	UnicodeNFKC bool `yaml:"unicode_nfkc"`
}

// CacheConfig controls the duplicate-line classification cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// ConcurrencyConfig controls batch-mode parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig throttles line processing for IO-nice runs.
// LinesPerSecond of 0 disables the limiter.
type RateLimitingConfig struct {
	LinesPerSecond float64 `yaml:"lines_per_second"`
	BurstSize      int     `yaml:"burst_size"`
}

// OutputConfig controls diagnostics output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// LMConfig reserves the language-model assist surface.
// Not implemented: enabling it only produces a warning.
type LMConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Normalize: NormalizeConfig{
			MinConfidence: 0.5,
			UnicodeNFKC:   false,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             10 * time.Minute,
			CleanupInterval: 15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			LinesPerSecond: 0,
			BurstSize:      1000,
		},
		Output: OutputConfig{
			Verbose: false,
		},
		LM: LMConfig{
			Enabled: false,
		},
	}
}
