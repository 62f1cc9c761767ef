package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/maxearle/nas2/measure/baseline"
	"github.com/maxearle/nas2/measure/subpeak"
	"github.com/maxearle/nas2/measure/trace"
)

var errInvalidParams = errors.New("npanalyze: invalid parameters")

// Params are the analysis parameters, as read from a YAML parameter file or
// from flags.
type Params struct {
	Bins             int       `yaml:"nbins"`
	Smoothing        float64   `yaml:"smoothing_sigma"`
	AreaThreshold    float64   `yaml:"area_threshold"`
	BaselineStrikes  int       `yaml:"baseline_strikes"`
	EventThreshold   *float64  `yaml:"event_threshold,omitempty"`
	ThresholdSigma   float64   `yaml:"threshold_sigma"`
	GapTolerance     int       `yaml:"gap_tolerance"`
	Berth            int       `yaml:"berth"`
	Strikes          int       `yaml:"strikes"`
	PlateauSmoothing float64   `yaml:"plateau_smoothing"`
	SampleRate       float64   `yaml:"sample_rate"`
	MaxOffset        float64   `yaml:"max_offset"`
	MinRelDepth      float64   `yaml:"min_rel_depth"`
	Barcode          []float64 `yaml:"barcode,omitempty"`
}

// DefaultParams mirrors the analysis defaults.
func DefaultParams() Params {
	cfg := trace.DefaultConfig()
	return Params{
		Bins:             cfg.Bins,
		Smoothing:        cfg.Sigma,
		AreaThreshold:    cfg.AreaThreshold,
		BaselineStrikes:  cfg.BaselineStrikes,
		ThresholdSigma:   cfg.ThresholdSigma,
		GapTolerance:     cfg.GapTolerance,
		Berth:            cfg.Berth,
		Strikes:          cfg.Strikes,
		PlateauSmoothing: cfg.PlateauSigma,
		SampleRate:       cfg.SampleRate,
	}
}

// LoadParams reads a YAML parameter file. Keys missing from the file keep
// their defaults; unknown keys are an error.
func LoadParams(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, err
	}
	defer f.Close()

	params := DefaultParams()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&params); err != nil {
		return Params{}, fmt.Errorf("%w: %s: %w", errInvalidParams, path, err)
	}
	return params, nil
}

// Validate rejects values the analysis options would silently ignore.
func (p Params) Validate() error {
	switch {
	case p.Bins < 1:
		return fmt.Errorf("%w: nbins %d < 1", errInvalidParams, p.Bins)
	case p.Smoothing < 0:
		return fmt.Errorf("%w: smoothing_sigma %g < 0", errInvalidParams, p.Smoothing)
	case p.AreaThreshold < 0 || p.AreaThreshold >= 1:
		return fmt.Errorf("%w: area_threshold %g outside [0, 1)", errInvalidParams, p.AreaThreshold)
	case p.BaselineStrikes < 1 || p.Strikes < 1:
		return fmt.Errorf("%w: strikes must be positive", errInvalidParams)
	case p.EventThreshold == nil && p.ThresholdSigma <= 0:
		return fmt.Errorf("%w: threshold_sigma %g <= 0", errInvalidParams, p.ThresholdSigma)
	case p.GapTolerance < 0:
		return fmt.Errorf("%w: gap_tolerance %d < 0", errInvalidParams, p.GapTolerance)
	case p.Berth < 0:
		return fmt.Errorf("%w: berth %d < 0", errInvalidParams, p.Berth)
	case p.PlateauSmoothing < 0:
		return fmt.Errorf("%w: plateau_smoothing %g < 0", errInvalidParams, p.PlateauSmoothing)
	case p.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %g <= 0", errInvalidParams, p.SampleRate)
	}
	return nil
}

// TraceOptions converts p to trace.Analyze options.
func (p Params) TraceOptions() []trace.Option {
	opts := []trace.Option{
		trace.WithBins(p.Bins),
		trace.WithSmoothing(p.Smoothing),
		trace.WithAreaThreshold(p.AreaThreshold),
		trace.WithBaselineStrikes(p.BaselineStrikes),
		trace.WithThresholdSigma(p.ThresholdSigma),
		trace.WithGapTolerance(p.GapTolerance),
		trace.WithBerth(p.Berth),
		trace.WithStrikes(p.Strikes),
		trace.WithPlateauSmoothing(p.PlateauSmoothing),
		trace.WithSampleRate(p.SampleRate),
	}
	if p.EventThreshold != nil {
		opts = append(opts, trace.WithThreshold(*p.EventThreshold))
	}
	return opts
}

// BaselineOptions converts p to baseline options.
func (p Params) BaselineOptions() []baseline.Option {
	return []baseline.Option{
		baseline.WithBins(p.Bins),
		baseline.WithSmoothing(p.Smoothing),
		baseline.WithAreaThreshold(p.AreaThreshold),
		baseline.WithStrikes(p.BaselineStrikes),
	}
}

// FilterOptions converts p to sub-peak filter options for a plateau at
// level.
func (p Params) FilterOptions(level float64) []subpeak.FilterOption {
	opts := []subpeak.FilterOption{subpeak.WithMaxOffset(p.MaxOffset)}
	if p.MinRelDepth != 0 {
		opts = append(opts,
			subpeak.WithReferenceLevel(level),
			subpeak.WithMinRelDepth(p.MinRelDepth),
		)
	}
	return opts
}

// paramFlags maps flag names to the Params field they set.
var paramFlags = map[string]func(dst, src *Params){
	"bins":              func(dst, src *Params) { dst.Bins = src.Bins },
	"smoothing":         func(dst, src *Params) { dst.Smoothing = src.Smoothing },
	"area-threshold":    func(dst, src *Params) { dst.AreaThreshold = src.AreaThreshold },
	"baseline-strikes":  func(dst, src *Params) { dst.BaselineStrikes = src.BaselineStrikes },
	"threshold":         func(dst, src *Params) { dst.EventThreshold = src.EventThreshold },
	"threshold-sigma":   func(dst, src *Params) { dst.ThresholdSigma = src.ThresholdSigma },
	"gap":               func(dst, src *Params) { dst.GapTolerance = src.GapTolerance },
	"berth":             func(dst, src *Params) { dst.Berth = src.Berth },
	"strikes":           func(dst, src *Params) { dst.Strikes = src.Strikes },
	"plateau-smoothing": func(dst, src *Params) { dst.PlateauSmoothing = src.PlateauSmoothing },
	"sample-rate":       func(dst, src *Params) { dst.SampleRate = src.SampleRate },
	"max-offset":        func(dst, src *Params) { dst.MaxOffset = src.MaxOffset },
	"min-rel-depth":     func(dst, src *Params) { dst.MinRelDepth = src.MinRelDepth },
	"barcode":           func(dst, src *Params) { dst.Barcode = src.Barcode },
}

// thresholdValue adapts the optional event threshold to a pflag.Value.
type thresholdValue struct{ p **float64 }

func (v thresholdValue) String() string {
	if *v.p == nil {
		return ""
	}
	return strconv.FormatFloat(**v.p, 'g', -1, 64)
}

func (v thresholdValue) Set(s string) error {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v.p = &x
	return nil
}

func (v thresholdValue) Type() string { return "float" }

func bindParamFlags(fs *pflag.FlagSet, p *Params) {
	def := DefaultParams()
	*p = def

	fs.IntVarP(&p.Bins, "bins", "b", def.Bins, "histogram bins for the baseline search")
	fs.Float64Var(&p.Smoothing, "smoothing", def.Smoothing, "Gaussian smoothing of the histogram, in bins")
	fs.Float64Var(&p.AreaThreshold, "area-threshold", def.AreaThreshold, "minimum area share of a baseline candidate")
	fs.IntVar(&p.BaselineStrikes, "baseline-strikes", def.BaselineStrikes, "turning-point strikes for histogram modes")
	fs.VarP(thresholdValue{&p.EventThreshold}, "threshold", "t", "absolute event threshold (default -threshold-sigma x noise)")
	fs.Float64Var(&p.ThresholdSigma, "threshold-sigma", def.ThresholdSigma, "event threshold in baseline noise units")
	fs.IntVarP(&p.GapTolerance, "gap", "g", def.GapTolerance, "largest gap in samples merged into one event")
	fs.IntVar(&p.Berth, "berth", def.Berth, "baseline samples kept on each side of an event")
	fs.IntVar(&p.Strikes, "strikes", def.Strikes, "turning-point strikes for plateau dips")
	fs.Float64Var(&p.PlateauSmoothing, "plateau-smoothing", def.PlateauSmoothing, "Gaussian smoothing of plateaus before the dip search, in samples")
	fs.Float64VarP(&p.SampleRate, "sample-rate", "r", def.SampleRate, "sample rate in samples per second")
	fs.Float64Var(&p.MaxOffset, "max-offset", def.MaxOffset, "drop dips whose bounds differ by at least this much (0 keeps all)")
	fs.Float64Var(&p.MinRelDepth, "min-rel-depth", def.MinRelDepth, "drop dips not deeper than this fraction of the plateau level (0 keeps all)")
	fs.Float64SliceVar(&p.Barcode, "barcode", def.Barcode, "ideal dip positions as fractions of the event length")
}

// overrideParams copies the explicitly set parameter flags from src into dst.
func overrideParams(dst, src *Params, fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := paramFlags[f.Name]; ok {
			set(dst, src)
		}
	})
	// A noise-relative threshold on the command line replaces an absolute
	// one from the parameter file.
	if fs.Changed("threshold-sigma") && !fs.Changed("threshold") {
		dst.EventThreshold = nil
	}
}
