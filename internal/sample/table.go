// Package sample loads 3-axis sensor recordings and derives their magnitude series.
//
// Input files are headerless CSV with exactly three numeric columns per row,
// bound positionally to the X, Y and Z axes.
package sample

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/magplot/internal/fsutil"
)

// NumColumns is the fixed number of fields in every record.
const NumColumns = 3

// Sample is one 3-axis reading.
type Sample struct {
	X float64
	Y float64
	Z float64
}

// Table is an ordered recording of samples read from a single source.
type Table struct {
	Source  string
	Samples []Sample
}

// Len returns the number of samples.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Samples)
}

// Columns splits the table into per-axis slices.
func (t *Table) Columns() (xs, ys, zs []float64) {
	n := t.Len()
	xs, ys, zs = make([]float64, n), make([]float64, n), make([]float64, n)
	if t == nil {
		return xs, ys, zs
	}
	for i, s := range t.Samples {
		xs[i], ys[i], zs[i] = s.X, s.Y, s.Z
	}
	return xs, ys, zs
}

// Options controls how a recording is read.
type Options struct {
	// SkipHeader drops the first record before parsing.
	SkipHeader bool
	// Comma is the field delimiter (default ',').
	Comma rune
}

// Load reads the recording at path from the OS filesystem with default options.
func Load(path string) (*Table, error) {
	return LoadFS(fsutil.OSFileSystem{}, path, Options{})
}

// LoadFS reads the recording at path from fsys.
func LoadFS(fsys fsutil.FileSystem, path string, opts Options) (*Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := Read(f, path, opts)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Read parses a recording from r. source is used for error messages and
// recorded as Table.Source.
func Read(r io.Reader, source string, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ','
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	// Field counts are checked below so the error carries the line number.
	reader.FieldsPerRecord = -1

	t := &Table{Source: source}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Path: source, Line: csvErr.Line, Column: csvErr.Column, Err: csvErr.Err}
			}
			return nil, &FileAccessError{Path: source, Err: err}
		}
		if first {
			first = false
			if opts.SkipHeader {
				continue
			}
		}

		s, perr := parseRecord(record)
		if perr != nil {
			perr.Path = source
			perr.Line, _ = reader.FieldPos(0)
			return nil, perr
		}
		t.Samples = append(t.Samples, s)
	}
	return t, nil
}

func parseRecord(record []string) (Sample, *ParseError) {
	if len(record) != NumColumns {
		return Sample{}, &ParseError{Err: fmt.Errorf("expected %d fields, got %d", NumColumns, len(record))}
	}
	var v [NumColumns]float64
	for i, field := range record {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return Sample{}, &ParseError{Column: i + 1, Err: err}
		}
		v[i] = f
	}
	return Sample{X: v[0], Y: v[1], Z: v[2]}, nil
}
