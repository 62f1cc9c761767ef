package core

// HistogramConfig defines the value-histogram settings shared by the
// baseline analyses.
type HistogramConfig struct {
	// Bins is the number of equal-width histogram bins.
	Bins int
	// Sigma is the standard deviation, in bins, of the Gaussian kernel used to
	// smooth histogram counts. Zero disables smoothing.
	Sigma float64
}

// HistogramOption mutates a HistogramConfig.
type HistogramOption func(*HistogramConfig)

// DefaultHistogramConfig returns the settings used for current traces.
func DefaultHistogramConfig() HistogramConfig {
	return HistogramConfig{
		Bins:  50,
		Sigma: 1,
	}
}

// WithBins sets the number of histogram bins.
func WithBins(bins int) HistogramOption {
	return func(cfg *HistogramConfig) {
		if bins > 0 {
			cfg.Bins = bins
		}
	}
}

// WithSmoothing sets the histogram smoothing sigma in bins.
func WithSmoothing(sigma float64) HistogramOption {
	return func(cfg *HistogramConfig) {
		if sigma >= 0 {
			cfg.Sigma = sigma
		}
	}
}

// ApplyHistogramOptions applies zero or more options to the default config.
func ApplyHistogramOptions(opts ...HistogramOption) HistogramConfig {
	cfg := DefaultHistogramConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
