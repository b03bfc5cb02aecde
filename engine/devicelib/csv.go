package devicelib

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvColumns is the required header order for device CSV files.
var csvColumns = []string{
	"name", "manufacturer", "technology", "vds_max", "id_max",
	"rds_on_25c", "rds_on_125c", "qg_total", "eon", "eoff",
	"vf_diode", "trr", "qrr", "tj_max", "rth_jc", "rth_ja",
	"coss", "package",
}

// LoadCSV merges device records from a CSV file into the library. The file
// must carry the exact header produced by csvColumns; rows with malformed
// numbers abort the load.
func (l *Library) LoadCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open device csv: %w", err)
	}
	defer f.Close()
	return l.loadCSV(f)
}

func (l *Library) loadCSV(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read device csv header: %w", err)
	}
	if len(header) < len(csvColumns) {
		return fmt.Errorf("device csv: expected %d columns, got %d", len(csvColumns), len(header))
	}
	for i, want := range csvColumns {
		if header[i] != want {
			return fmt.Errorf("device csv: column %d is %q, want %q", i, header[i], want)
		}
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read device csv: %w", err)
		}
		line++

		d, err := deviceFromRecord(record)
		if err != nil {
			return fmt.Errorf("device csv line %d: %w", line, err)
		}
		l.Add(d)
	}
}

func deviceFromRecord(rec []string) (DeviceSpec, error) {
	nums := make([]float64, 14)
	for i := range nums {
		v, err := strconv.ParseFloat(rec[3+i], 64)
		if err != nil {
			return DeviceSpec{}, fmt.Errorf("column %q: %w", csvColumns[3+i], err)
		}
		nums[i] = v
	}

	return DeviceSpec{
		Name:         rec[0],
		Manufacturer: rec[1],
		Technology:   rec[2],
		VdsMax:       nums[0],
		IdMax:        nums[1],
		RdsOn25C:     nums[2],
		RdsOn125C:    nums[3],
		QgTotal:      nums[4],
		Eon:          nums[5],
		Eoff:         nums[6],
		VfDiode:      nums[7],
		Trr:          nums[8],
		Qrr:          nums[9],
		TjMax:        nums[10],
		RthJC:        nums[11],
		RthJA:        nums[12],
		Coss:         nums[13],
		Package:      rec[17],
	}, nil
}
