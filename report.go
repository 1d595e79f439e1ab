package bench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Sample is a single raw observation of a benchmark.
type Sample struct {
	Name  string
	Value float64
}

// Table is a named measurement table.
type Table struct {
	Name         string
	Measurements []Measurement
}

// ReadMeasurements reads a CSV table with a header row containing at least
// the columns Name, Mean and Stddev. Column names are matched case-insensitively
// and other columns are ignored.
func ReadMeasurements(r io.Reader) ([]Measurement, error) {
	cr := newReader(r)
	cols, err := readHeader(cr, "name", "mean", "stddev")
	if err != nil {
		return nil, err
	}
	var ms []Measurement
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return ms, err
		}
		line, _ := cr.FieldPos(0)
		m := Measurement{Name: rec[cols[0]]}
		if m.Mean, err = parseValue(rec[cols[1]]); err != nil {
			return ms, fmt.Errorf("line %d: mean: %v", line, err)
		}
		if m.Stddev, err = parseValue(rec[cols[2]]); err != nil {
			return ms, fmt.Errorf("line %d: stddev: %v", line, err)
		}
		ms = append(ms, m)
	}
	return ms, nil
}

// ReadSamples reads a CSV table of raw samples with columns Name and Value.
func ReadSamples(r io.Reader) ([]Sample, error) {
	cr := newReader(r)
	cols, err := readHeader(cr, "name", "value")
	if err != nil {
		return nil, err
	}
	var ss []Sample
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return ss, err
		}
		line, _ := cr.FieldPos(0)
		v, err := parseValue(rec[cols[1]])
		if err != nil {
			return ss, fmt.Errorf("line %d: value: %v", line, err)
		}
		ss = append(ss, Sample{Name: rec[cols[0]], Value: v})
	}
	return ss, nil
}

// ReadMeasurementsFile reads a measurement table from a CSV file.
func ReadMeasurementsFile(file string) ([]Measurement, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	ms, err := ReadMeasurements(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return ms, nil
}

// ReadSamplesFile reads raw samples from a CSV file.
func ReadSamplesFile(file string) ([]Sample, error) {
	fd, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	ss, err := ReadSamples(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return ss, nil
}

// TableName returns the name of the table stored in file.
func TableName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

// MustReadTables reads all given measurement files.
func MustReadTables(files []string) []Table {
	var tables []Table
	for _, file := range files {
		ms, err := ReadMeasurementsFile(file)
		if err != nil {
			log.Fatal(err)
		}
		tables = append(tables, Table{Name: TableName(file), Measurements: ms})
	}
	return tables
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

// readHeader reads the header record and returns the index of each
// wanted column.
func readHeader(cr *csv.Reader, want ...string) ([]int, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty table")
	} else if err != nil {
		return nil, err
	}
	cols := make([]int, len(want))
	for i, name := range want {
		cols[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}

func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, fmt.Errorf("value %v out of range", v)
	}
	return v, nil
}

// WriteMeasurements writes ms as a CSV table readable by ReadMeasurements.
func WriteMeasurements(w io.Writer, ms []Measurement) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"Name", "Mean", "Stddev"})
	for _, m := range ms {
		cw.Write([]string{
			m.Name,
			strconv.FormatFloat(m.Mean, 'g', -1, 64),
			strconv.FormatFloat(m.Stddev, 'g', -1, 64),
		})
	}
	cw.Flush()
	return cw.Error()
}
