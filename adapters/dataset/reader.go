// Package dataset reads labeled waveform tables from CSV or Excel files
// into the domain dataset shape. Expected layout: a header row of
// "dataset,sampling_rate,pick,s0,s1,..." followed by one trace per row.
// An empty pick cell means the analyst declared no arrival.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"pickbench/domain/core"
	"pickbench/domain/pick"
	"pickbench/internal"
	"pickbench/ports"
)

const (
	colLabel        = "dataset"
	colSamplingRate = "sampling_rate"
	colPick         = "pick"
)

// Reader handles reading Excel and CSV waveform tables.
type Reader struct{}

var _ ports.DatasetSource = (*Reader)(nil)

// NewReader creates a new data reader that handles both Excel and CSV files.
func NewReader() *Reader {
	return &Reader{}
}

// Load reads the dataset at path. When label is non-empty only rows whose
// dataset column matches are kept. All kept rows must agree on sampling
// rate; the core treats one dataset as one rate.
func (r *Reader) Load(path string, label string) (pick.Dataset, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return pick.Dataset{}, core.NewNotFoundError(path)
	}

	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readExcel(path)
	default:
		return pick.Dataset{}, core.NewConfigError("data_file",
			"must be a '.csv' or '.xlsx' file, got "+path)
	}
	if err != nil {
		return pick.Dataset{}, err
	}
	if len(rows) < 2 {
		return pick.Dataset{}, core.NewParseError(path,
			fmt.Errorf("need a header row and at least one data row"))
	}

	ds, err := parseRows(rows, label, path)
	if err != nil {
		return pick.Dataset{}, err
	}
	internal.DefaultLogger.Info("loaded %d rows from %s (label %q, %.0f Hz)",
		ds.Len(), path, label, ds.SamplingRate)
	return ds, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, core.NewParseError(path, err)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, core.NewParseError(path, err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, core.NewParseError(path, err)
	}
	return rows, nil
}

func parseRows(rows [][]string, label, path string) (pick.Dataset, error) {
	header := map[string]int{}
	for i, h := range rows[0] {
		header[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, required := range []string{colLabel, colSamplingRate, colPick} {
		if _, ok := header[required]; !ok {
			return pick.Dataset{}, core.NewParseError(path,
				fmt.Errorf("missing required column %q", required))
		}
	}
	// Waveform samples follow the pick column (s0, s1, ...).
	sampleStart, ok := header["s0"]
	if !ok {
		sampleStart = header[colPick] + 1
	}
	ds := pick.Dataset{Label: label}

	for rowIdx, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		if len(row) <= sampleStart {
			return pick.Dataset{}, core.NewRowShapeError(rowIdx, "row has no waveform samples")
		}
		if label != "" && strings.TrimSpace(row[header[colLabel]]) != label {
			continue
		}

		sr, err := strconv.ParseFloat(strings.TrimSpace(row[header[colSamplingRate]]), 64)
		if err != nil {
			return pick.Dataset{}, core.NewParseError(path,
				fmt.Errorf("row %d: bad sampling_rate: %v", rowIdx, err))
		}
		if ds.SamplingRate == 0 {
			ds.SamplingRate = sr
		} else if ds.SamplingRate != sr {
			return pick.Dataset{}, core.NewParseError(path,
				fmt.Errorf("row %d: sampling_rate %g differs from dataset rate %g", rowIdx, sr, ds.SamplingRate))
		}

		p := pick.None()
		if cell := strings.TrimSpace(row[header[colPick]]); cell != "" {
			offset, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return pick.Dataset{}, core.NewParseError(path,
					fmt.Errorf("row %d: bad pick: %v", rowIdx, err))
			}
			p = pick.Some(offset)
		}

		samples := make([]float64, 0, len(row)-sampleStart)
		for _, cell := range row[sampleStart:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				break // trailing blanks from ragged sheets
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return pick.Dataset{}, core.NewParseError(path,
					fmt.Errorf("row %d: bad sample value %q: %v", rowIdx, cell, err))
			}
			samples = append(samples, v)
		}

		ds.Traces = append(ds.Traces, samples)
		ds.Picks = append(ds.Picks, p)
	}

	if err := ds.Validate(); err != nil {
		return pick.Dataset{}, err
	}
	return ds, nil
}
