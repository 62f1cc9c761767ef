// Command npanalyze analyzes nanopore current traces.
//
// Usage:
//
//	npanalyze <command> [flags] trace-file ...
//
// Commands:
//
//	analyze   baseline, events and event sub-peaks of each trace
//	events    event windows and summaries
//	baseline  baseline candidates and the chosen baseline
//
// Traces are read as text (one value per line, or one CSV column) or as
// raw little-endian float32/float64 files. Traces that fail are logged and
// skipped; the exit status is 1 only when every trace failed.
//
// Examples:
//
//	npanalyze analyze --sample-rate 250000 --berth 200 run1.f64
//	npanalyze events --format csv --threshold -0.4 trace.txt
//	npanalyze analyze --params params.yaml --barcode 0.15,0.23,0.33 *.f32
//	npanalyze baseline --bins 100 --log-level debug trace.csv --column 2
package main

import "os"

func main() {
	if err := newApp(os.Stdout, os.Stderr).rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
