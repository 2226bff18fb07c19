// Package csvloader reads battery coefficient tables and measured sample
// files from CSV. The core trusts these records; all parsing and schema
// validation happens here.
package csvloader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kilianp07/ocv/core/model"
)

var coefficientColumns = []string{"c0", "c1", "c2", "c3", "c4", "c5"}

// Load reads the coefficient table at path. The expected header is
// label,soh,c0,c1,c2,c3,c4,c5; column order is taken from the header, not
// assumed.
func Load(path string) ([]model.BatteryStateRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()
	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return recs, nil
}

// Read parses a coefficient table from r.
func Read(r io.Reader) ([]model.BatteryStateRecord, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header, append([]string{"label", "soh"}, coefficientColumns...))
	if err != nil {
		return nil, err
	}

	var records []model.BatteryStateRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		soh, err := strconv.ParseFloat(row[cols["soh"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: soh: %w", line, err)
		}
		coeffs := make([]float64, 0, model.CoefficientCount)
		for _, name := range coefficientColumns {
			v, err := strconv.ParseFloat(row[cols[name]], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			coeffs = append(coeffs, v)
		}
		rec := model.BatteryStateRecord{Label: row[cols["label"]], Coefficients: coeffs, SoH: soh}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadSamples reads measured (soc,voltage) pairs used for fitting.
func LoadSamples(path string) ([]model.CurveSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open samples: %w", err)
	}
	defer f.Close()
	samples, err := ReadSamples(f)
	if err != nil {
		return nil, fmt.Errorf("read samples %s: %w", path, err)
	}
	return samples, nil
}

// ReadSamples parses a soc,voltage table from r.
func ReadSamples(r io.Reader) ([]model.CurveSample, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols, err := indexColumns(header, []string{"soc", "voltage"})
	if err != nil {
		return nil, err
	}

	var samples []model.CurveSample
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		soc, err := strconv.ParseFloat(row[cols["soc"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: soc: %w", line, err)
		}
		voltage, err := strconv.ParseFloat(row[cols["voltage"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: voltage: %w", line, err)
		}
		samples = append(samples, model.CurveSample{SoC: soc, Voltage: voltage})
	}
	return samples, nil
}

func indexColumns(header, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return cols, nil
}
