package main

import (
	"bufio"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	formatAuto = "auto"
	formatText = "text"
	formatF32  = "f32"
	formatF64  = "f64"
)

var (
	errUnknownInput = errors.New("npanalyze: unknown input format")
	errTruncated    = errors.New("npanalyze: truncated binary trace")
	errEmptyTrace   = errors.New("npanalyze: trace has no samples")
	errBadColumn    = errors.New("npanalyze: column out of range")
)

// ReadTrace reads the samples of one trace file.
func ReadTrace(path, format string, column int) ([]float64, error) {
	if format == formatAuto {
		format = detectFormat(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []float64
	switch format {
	case formatText:
		samples, err = readText(f, column)
	case formatF32:
		samples, err = readBinary(f, 4)
	case formatF64:
		samples, err = readBinary(f, 8)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s", errEmptyTrace, path)
	}
	return samples, nil
}

// detectFormat picks the input format from the file extension.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".f32", ".float32":
		return formatF32
	case ".f64", ".float64", ".bin", ".dat":
		return formatF64
	default:
		return formatText
	}
}

// readText reads one column of a comma separated file. Lines starting with
// '#' are comments. A first record whose column is not a number is taken as
// a header.
func readText(r io.Reader, column int) ([]float64, error) {
	if column < 0 {
		return nil, fmt.Errorf("%w: %d", errBadColumn, column)
	}

	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var out []float64
	for record := 1; ; record++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if column >= len(rec) {
			return nil, fmt.Errorf("%w: record %d has %d columns", errBadColumn, record, len(rec))
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(rec[column]), 64)
		if err != nil {
			if record == 1 {
				continue
			}
			return nil, fmt.Errorf("record %d: %w", record, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// readBinary reads little-endian IEEE-754 samples of size 4 or 8 bytes.
func readBinary(r io.Reader, size int) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", errTruncated, len(data), size)
	}

	out := make([]float64, len(data)/size)
	for i := range out {
		chunk := data[i*size : (i+1)*size]
		if size == 4 {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(chunk)))
		} else {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(chunk))
		}
	}
	return out, nil
}
