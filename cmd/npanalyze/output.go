package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

// table is the flat form of a report used by the table and csv formats.
type table struct {
	header []string
	rows   [][]string
}

// writeOutput writes v as JSON, or t as CSV or an aligned text table.
func writeOutput(w io.Writer, format string, v any, t table) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(t.header); err != nil {
			return err
		}
		if err := cw.WriteAll(t.rows); err != nil {
			return err
		}
		return cw.Error()
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(tw, strings.Join(t.header, "\t")); err != nil {
			return fmt.Errorf("failed to write output header: %w", err)
		}
		for _, row := range t.rows {
			if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
				return fmt.Errorf("failed to write output row: %w", err)
			}
		}
		return tw.Flush()
	}
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

func itoa(x int) string {
	return strconv.Itoa(x)
}

func peakTable(reports []TraceReport) table {
	t := table{header: []string{
		"file", "event", "event_start", "event_end",
		"peak_start", "peak_end", "width", "position", "area", "depth", "offset", "site",
	}}
	for _, rep := range reports {
		for _, ev := range rep.Events {
			for _, pk := range ev.Peaks {
				t.rows = append(t.rows, []string{
					rep.File, itoa(ev.Index), itoa(ev.Start), itoa(ev.End),
					itoa(pk.Start), itoa(pk.End), itoa(pk.Width), ftoa(pk.Position),
					ftoa(pk.Area), ftoa(pk.Depth), ftoa(pk.Offset), itoa(pk.Site),
				})
			}
		}
	}
	return t
}

func eventTable(reports []TraceReport) table {
	t := table{header: []string{
		"file", "event", "start", "end", "samples", "duration_s",
		"ecd", "mean", "ffap", "lfap", "skew", "baseline", "threshold",
	}}
	for _, rep := range reports {
		for _, ev := range rep.Events {
			t.rows = append(t.rows, []string{
				rep.File, itoa(ev.Index), itoa(ev.Start), itoa(ev.End), itoa(ev.Samples),
				ftoa(ev.DurationS), ftoa(ev.ECD), ftoa(ev.Mean), ftoa(ev.FFAP),
				ftoa(ev.LFAP), ftoa(ev.Skew), ftoa(rep.Baseline.Mean), ftoa(rep.Threshold),
			})
		}
	}
	return t
}

func candidateTable(reports []BaselineReport) table {
	t := table{header: []string{
		"file", "low", "high", "level", "area", "fraction", "max_run", "chosen",
	}}
	for _, rep := range reports {
		for _, c := range rep.Candidates {
			t.rows = append(t.rows, []string{
				rep.File, ftoa(c.Low), ftoa(c.High), ftoa(c.Level), ftoa(c.Area),
				ftoa(c.Fraction), itoa(c.MaxRun), strconv.FormatBool(c.Chosen),
			})
		}
	}
	return t
}
