package trace

import (
	"math"

	"github.com/maxearle/nas2/dsp/core"
)

// Config defines the settings of Analyze.
type Config struct {
	// HistogramConfig configures the baseline value histogram.
	core.HistogramConfig
	// AreaThreshold is the minimum area share of a baseline candidate.
	AreaThreshold float64
	// BaselineStrikes is the turning-point strike count for histogram modes.
	BaselineStrikes int

	// Threshold is the event threshold in signal units, used when
	// AbsoluteThreshold is set. Otherwise the threshold is
	// -ThresholdSigma times the baseline noise.
	Threshold         float64
	AbsoluteThreshold bool
	ThresholdSigma    float64

	// GapTolerance is the largest gap, in samples, merged into one event.
	GapTolerance int
	// Berth is the number of baseline samples kept on each side of an event.
	Berth int

	// Strikes is the turning-point strike count for plateau dips.
	Strikes int
	// PlateauSigma smooths plateaus before the dip search. 0 disables it.
	PlateauSigma float64

	// SampleRate is the sampling rate in samples per second.
	SampleRate float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the Analyze defaults.
func DefaultConfig() Config {
	return Config{
		HistogramConfig: core.DefaultHistogramConfig(),
		AreaThreshold:   0,
		BaselineStrikes: 1,
		ThresholdSigma:  5,
		GapTolerance:    100,
		Berth:           0,
		Strikes:         2,
		PlateauSigma:    0,
		SampleRate:      1,
	}
}

// WithBins sets the number of baseline histogram bins.
func WithBins(bins int) Option {
	return func(cfg *Config) {
		core.WithBins(bins)(&cfg.HistogramConfig)
	}
}

// WithSmoothing sets the baseline histogram smoothing sigma, in bins.
func WithSmoothing(sigma float64) Option {
	return func(cfg *Config) {
		core.WithSmoothing(sigma)(&cfg.HistogramConfig)
	}
}

// WithAreaThreshold sets the minimum area share of a baseline candidate,
// in [0, 1).
func WithAreaThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if threshold >= 0 && threshold < 1 {
			cfg.AreaThreshold = threshold
		}
	}
}

// WithBaselineStrikes sets the strike count used to bound histogram modes.
func WithBaselineStrikes(strikes int) Option {
	return func(cfg *Config) {
		if strikes > 0 {
			cfg.BaselineStrikes = strikes
		}
	}
}

// WithThreshold sets an absolute event threshold in signal units.
func WithThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if core.IsFinite(threshold) {
			cfg.Threshold = threshold
			cfg.AbsoluteThreshold = true
		}
	}
}

// WithThresholdSigma sets the event threshold to -k times the baseline
// noise and clears any absolute threshold.
func WithThresholdSigma(k float64) Option {
	return func(cfg *Config) {
		if k > 0 && !math.IsInf(k, 0) {
			cfg.ThresholdSigma = k
			cfg.AbsoluteThreshold = false
		}
	}
}

// WithGapTolerance sets the largest gap merged into one event.
func WithGapTolerance(gap int) Option {
	return func(cfg *Config) {
		if gap >= 0 {
			cfg.GapTolerance = gap
		}
	}
}

// WithBerth sets the number of samples kept around each event.
func WithBerth(berth int) Option {
	return func(cfg *Config) {
		if berth >= 0 {
			cfg.Berth = berth
		}
	}
}

// WithStrikes sets the strike count of the plateau dip search.
func WithStrikes(strikes int) Option {
	return func(cfg *Config) {
		if strikes > 0 {
			cfg.Strikes = strikes
		}
	}
}

// WithPlateauSmoothing sets the plateau smoothing sigma, in samples.
func WithPlateauSmoothing(sigma float64) Option {
	return func(cfg *Config) {
		if sigma >= 0 && !math.IsInf(sigma, 0) {
			cfg.PlateauSigma = sigma
		}
	}
}

// WithSampleRate sets the sampling rate in samples per second.
func WithSampleRate(rate float64) Option {
	return func(cfg *Config) {
		if rate > 0 && !math.IsInf(rate, 0) {
			cfg.SampleRate = rate
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

// EventThreshold returns the threshold Analyze uses for a baseline with the
// given noise.
func (c Config) EventThreshold(noise float64) float64 {
	if c.AbsoluteThreshold {
		return c.Threshold
	}
	return -c.ThresholdSigma * noise
}
