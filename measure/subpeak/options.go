package subpeak

import "math"

// Config defines the dip search settings.
type Config struct {
	// Strikes is the turning-point strike count.
	Strikes int
	// Sigma is the Gaussian smoothing applied to the plateau before the
	// search, in samples. 0 searches the raw plateau.
	Sigma float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the dip search defaults.
func DefaultConfig() Config {
	return Config{Strikes: 2}
}

// WithStrikes sets the turning-point strike count.
func WithStrikes(strikes int) Option {
	return func(cfg *Config) {
		if strikes > 0 {
			cfg.Strikes = strikes
		}
	}
}

// WithSmoothing sets the search smoothing sigma. Measurements always use
// the raw plateau.
func WithSmoothing(sigma float64) Option {
	return func(cfg *Config) {
		if sigma >= 0 && !math.IsInf(sigma, 0) {
			cfg.Sigma = sigma
		}
	}
}

// ApplyOptions applies zero or more options to DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FilterConfig defines which records Filter keeps.
type FilterConfig struct {
	// MaxOffset is the exclusive upper limit on Record.Offset.
	MaxOffset float64
	// ReferenceLevel scales depths for the MinRelDepth test. 0 disables
	// the test.
	ReferenceLevel float64
	// MinRelDepth is the exclusive lower limit on Depth/ReferenceLevel.
	MinRelDepth float64
}

// FilterOption mutates a FilterConfig.
type FilterOption func(*FilterConfig)

// DefaultFilterConfig keeps every record.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{MaxOffset: math.Inf(1)}
}

// WithMaxOffset drops records whose bound offset is not below limit.
func WithMaxOffset(limit float64) FilterOption {
	return func(cfg *FilterConfig) {
		if limit > 0 {
			cfg.MaxOffset = limit
		}
	}
}

// WithReferenceLevel sets the level depths are compared against.
func WithReferenceLevel(level float64) FilterOption {
	return func(cfg *FilterConfig) {
		if !math.IsNaN(level) && !math.IsInf(level, 0) {
			cfg.ReferenceLevel = level
		}
	}
}

// WithMinRelDepth drops records whose depth relative to the reference level
// is not above limit.
func WithMinRelDepth(limit float64) FilterOption {
	return func(cfg *FilterConfig) {
		if !math.IsNaN(limit) {
			cfg.MinRelDepth = limit
		}
	}
}

// ApplyFilterOptions applies zero or more options to DefaultFilterConfig.
func ApplyFilterOptions(opts ...FilterOption) FilterConfig {
	cfg := DefaultFilterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
