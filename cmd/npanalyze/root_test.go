package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// dipTraceText is a noiseless trace at 1 with one event at 0 covering
// samples [50, 79].
func dipTraceText() string {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		v := 1.0
		if i >= 50 && i < 80 {
			v = 0
		}
		fmt.Fprintln(&b, v)
	}
	return b.String()
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newApp(&stdout, &stderr).rootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeFile(t, "trace.txt", []byte(dipTraceText()))

	out, _, err := execute(t, "analyze", "--format", "json", "--sample-rate", "10", path)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	var reports []TraceReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(reports) != 1 || len(reports[0].Events) != 1 {
		t.Fatalf("reports = %+v", reports)
	}

	ev := reports[0].Events[0]
	if ev.Start != 50 || ev.End != 79 || ev.Samples != 30 {
		t.Fatalf("event = %+v", ev)
	}
	if ev.DurationS != 3 || ev.Mean != -1 {
		t.Fatalf("duration %g mean %g", ev.DurationS, ev.Mean)
	}
	if len(ev.Peaks) != 1 || ev.Peaks[0].Start != 50 || ev.Peaks[0].End != 79 || ev.Peaks[0].Site != -1 {
		t.Fatalf("peaks = %+v", ev.Peaks)
	}
	if reports[0].Baseline.Mean != 1 || reports[0].Baseline.Noise != 0 {
		t.Fatalf("baseline = %+v", reports[0].Baseline)
	}
}

func TestEventsCSV(t *testing.T) {
	path := writeFile(t, "trace.txt", []byte(dipTraceText()))

	out, _, err := execute(t, "events", "-f", "csv", path)
	if err != nil {
		t.Fatalf("events error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header and one event:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "file,event,start,end,samples") {
		t.Fatalf("header = %q", lines[0])
	}
	fields := strings.Split(lines[1], ",")
	if diff := cmp.Diff([]string{path, "0", "50", "79", "30"}, fields[:5]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestBaselineTable(t *testing.T) {
	path := writeFile(t, "trace.txt", []byte(dipTraceText()))

	out, _, err := execute(t, "baseline", path)
	if err != nil {
		t.Fatalf("baseline error = %v", err)
	}
	if !strings.Contains(out, "max_run") || strings.Count(out, "true") != 1 {
		t.Fatalf("unexpected table:\n%s", out)
	}
}

func TestSkipsFailingTraces(t *testing.T) {
	good := writeFile(t, "good.txt", []byte(dipTraceText()))
	flat := writeFile(t, "flat.txt", []byte("1\n1\n1\n1\n"))

	out, logs, err := execute(t, "events", "--format", "json", flat, good)
	if err != nil {
		t.Fatalf("one good trace must succeed, error = %v", err)
	}
	if !strings.Contains(logs, "skipping trace") {
		t.Fatalf("skipped trace not logged:\n%s", logs)
	}

	var reports []TraceReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(reports) != 1 || reports[0].File != good {
		t.Fatalf("reports = %+v", reports)
	}

	if _, _, err := execute(t, "events", flat); !errors.Is(err, errAllFailed) {
		t.Fatalf("all failed error = %v, want errAllFailed", err)
	}
}

func TestBarcodeAssignment(t *testing.T) {
	// Plateau at -1 with dips at 25% and 75% of the event.
	var b strings.Builder
	for i := 0; i < 400; i++ {
		v := 1.0
		if i >= 100 && i < 300 {
			v = 0
			for _, c := range []int{150, 250} {
				if d := i - c; d > -10 && d < 10 {
					v -= 0.05 * float64(10-max(d, -d))
				}
			}
		}
		fmt.Fprintln(&b, v)
	}
	path := writeFile(t, "barcode.txt", []byte(b.String()))

	out, _, err := execute(t, "analyze", "--format", "json", "--barcode", "0.25,0.75", "--max-offset", "0.01", path)
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	var reports []TraceReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	ev := reports[0].Events[0]
	if ev.BarcodeLoss == nil {
		t.Fatal("barcode loss missing")
	}

	sites := map[int]int{}
	for _, pk := range ev.Peaks {
		if pk.Site >= 0 {
			sites[pk.Site] = (pk.Start + pk.End) / 2
		}
	}
	// Two sites cannot tell the reading direction apart, so only check
	// that both were assigned to different dips.
	if len(sites) != 2 || sites[0] == sites[1] {
		t.Fatalf("sites = %v, peaks = %+v", sites, ev.Peaks)
	}
}

func TestInvalidFlags(t *testing.T) {
	path := writeFile(t, "trace.txt", []byte(dipTraceText()))

	if _, _, err := execute(t, "events", "--format", "xml", path); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if _, _, err := execute(t, "events", "--log-level", "loud", path); err == nil {
		t.Fatal("expected error for unknown log level")
	}
	if _, _, err := execute(t, "events", "--bins", "0", path); !errors.Is(err, errInvalidParams) {
		t.Fatalf("error = %v, want errInvalidParams", err)
	}
	if _, _, err := execute(t, "events"); err == nil {
		t.Fatal("expected error without trace files")
	}
}
