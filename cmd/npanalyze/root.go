package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var errAllFailed = errors.New("npanalyze: every trace failed")

// app holds the state shared by the commands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger

	// params is the effective configuration: defaults, then the parameter
	// file, then explicitly set flags.
	params Params
	flags  Params

	paramsFile  string
	logLevel    string
	format      string
	inputFormat string
	column      int
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		log:    zerolog.Nop(),
		params: DefaultParams(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "npanalyze",
		Short:        "Baseline, event and sub-peak analysis of nanopore current traces",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	pf.StringVar(&a.paramsFile, "params", "", "YAML parameter file; flags set explicitly override it")
	pf.StringVarP(&a.format, "format", "f", formatTable, "output format: table, csv or json")
	pf.StringVar(&a.inputFormat, "input", formatAuto, "input format: auto, text, f32 or f64")
	pf.IntVar(&a.column, "column", 0, "zero-based column of text/CSV input")
	bindParamFlags(pf, &a.flags)

	root.AddCommand(a.analyzeCmd(), a.eventsCmd(), a.baselineCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr}).
		Level(level).
		With().
		Timestamp().
		Str("component", cmd.Name()).
		Logger()

	switch a.format {
	case formatTable, formatCSV, formatJSON:
	default:
		return fmt.Errorf("unknown --format %q", a.format)
	}

	params := DefaultParams()
	if a.paramsFile != "" {
		params, err = LoadParams(a.paramsFile)
		if err != nil {
			return err
		}
		a.log.Debug().Str("file", a.paramsFile).Msg("loaded parameters")
	}
	overrideParams(&params, &a.flags, cmd.Flags())
	if err := params.Validate(); err != nil {
		return err
	}
	a.params = params

	return nil
}

// run reads and processes every trace, logging and skipping those that
// fail. It returns errAllFailed when none succeeded.
func (a *app) run(paths []string, process func(path string, samples []float64) error) error {
	failed := 0
	for _, path := range paths {
		samples, err := ReadTrace(path, a.inputFormat, a.column)
		if err == nil {
			a.log.Debug().Str("file", path).Int("samples", len(samples)).Msg("trace loaded")
			err = process(path, samples)
		}
		if err != nil {
			failed++
			a.log.Error().Err(err).Str("file", path).Msg("skipping trace")
		}
	}

	if failed == len(paths) {
		return fmt.Errorf("%w: %d of %d", errAllFailed, failed, len(paths))
	}
	return nil
}

func (a *app) analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze trace-file ...",
		Short: "Run the full analysis and report every event sub-peak",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]TraceReport, 0, len(args))
			runErr := a.run(args, func(path string, samples []float64) error {
				rep, err := analyzeTrace(path, samples, a.params)
				if err != nil {
					return err
				}
				a.log.Info().
					Str("file", path).
					Int("samples", rep.Samples).
					Int("events", len(rep.Events)).
					Float64("baseline", rep.Baseline.Mean).
					Msg("trace analyzed")
				reports = append(reports, rep)
				return nil
			})
			if err := writeOutput(a.stdout, a.format, reports, peakTable(reports)); err != nil {
				return err
			}
			return runErr
		},
	}
}

func (a *app) eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events trace-file ...",
		Short: "Report event windows and summaries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]TraceReport, 0, len(args))
			runErr := a.run(args, func(path string, samples []float64) error {
				rep, err := analyzeTrace(path, samples, a.params)
				if err != nil {
					return err
				}
				for i := range rep.Events {
					rep.Events[i].Peaks = nil
				}
				a.log.Info().
					Str("file", path).
					Int("samples", rep.Samples).
					Int("events", len(rep.Events)).
					Float64("threshold", rep.Threshold).
					Msg("events detected")
				reports = append(reports, rep)
				return nil
			})
			if err := writeOutput(a.stdout, a.format, reports, eventTable(reports)); err != nil {
				return err
			}
			return runErr
		},
	}
}

func (a *app) baselineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "baseline trace-file ...",
		Short: "Report the baseline candidates of each trace",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]BaselineReport, 0, len(args))
			runErr := a.run(args, func(path string, samples []float64) error {
				rep, err := baselineTrace(path, samples, a.params)
				if err != nil {
					return err
				}
				a.log.Info().
					Str("file", path).
					Int("candidates", len(rep.Candidates)).
					Float64("baseline", rep.Baseline.Mean).
					Float64("noise", rep.Baseline.Noise).
					Msg("baseline estimated")
				reports = append(reports, rep)
				return nil
			})
			if err := writeOutput(a.stdout, a.format, reports, candidateTable(reports)); err != nil {
				return err
			}
			return runErr
		},
	}
}
