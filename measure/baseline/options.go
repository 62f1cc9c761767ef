package baseline

import "github.com/maxearle/nas2/dsp/core"

// Config defines the settings of the baseline analyses.
type Config struct {
	core.HistogramConfig
	// AreaThreshold is the minimum share of the total histogram area a mode
	// must exceed to become a candidate.
	AreaThreshold float64
	// Strikes is the turning-point strike count used to bound histogram
	// modes.
	Strikes int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults of MostPersistent.
func DefaultConfig() Config {
	return Config{
		HistogramConfig: core.DefaultHistogramConfig(),
		AreaThreshold:   0.05,
		Strikes:         1,
	}
}

// DefaultCorrectorConfig returns the defaults of Correct, which considers
// every mode with non-zero area.
func DefaultCorrectorConfig() Config {
	cfg := DefaultConfig()
	cfg.AreaThreshold = 0
	return cfg
}

// WithBins sets the number of histogram bins.
func WithBins(bins int) Option {
	return func(cfg *Config) {
		core.WithBins(bins)(&cfg.HistogramConfig)
	}
}

// WithSmoothing sets the Gaussian smoothing sigma, in bins, applied to the
// histogram counts before peak extraction.
func WithSmoothing(sigma float64) Option {
	return func(cfg *Config) {
		core.WithSmoothing(sigma)(&cfg.HistogramConfig)
	}
}

// WithAreaThreshold sets the minimum area share in [0, 1).
func WithAreaThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if threshold >= 0 && threshold < 1 {
			cfg.AreaThreshold = threshold
		}
	}
}

// WithStrikes sets the turning-point strike count for histogram modes.
func WithStrikes(strikes int) Option {
	return func(cfg *Config) {
		if strikes > 0 {
			cfg.Strikes = strikes
		}
	}
}

// ApplyOptions applies zero or more options to the MostPersistent defaults.
func ApplyOptions(opts ...Option) Config {
	return applyTo(DefaultConfig(), opts)
}

func applyTo(cfg Config, opts []Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
