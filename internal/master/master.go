// Package master reads and writes the pipeline's tabular artifacts: the
// authoritative school-board table, the CCD cross-reference directory, the
// staged new-rows table, and the match log. The authoritative table is
// read-only input everywhere in this package except the explicit winner
// population path, which writes to a caller-chosen output.
package master

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmfreder123/az-boards/internal/model"
)

// Table is a header-ordered CSV table with rows keyed by column name.
// Mirrors the shape of the authoritative file: one row per candidate per
// race per year, schema extended over time by downstream merges.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Load reads a CSV table. A missing or unreadable file is a precondition
// failure and should abort the run before any processing begins.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read table header: %w", err)
	}

	t := &Table{Columns: header}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table rows: %w", err)
	}
	for _, raw := range records {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(raw) {
				row[col] = raw[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Write stores the table at path, preserving column order. Unknown row keys
// are dropped, missing ones written empty.
func (t *Table) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// FilledPairs returns the set of (CTDS, year) pairs already present. This
// set defines "filled"; the pipeline must never emit a row whose pair is in
// it.
func (t *Table) FilledPairs() map[model.DistrictYear]bool {
	pairs := make(map[model.DistrictYear]bool)
	for _, row := range t.Rows {
		ctds := NormalizeID(row[model.ColCTDSID])
		year, ok := parseYear(row[model.ColYear])
		if ctds == "" || !ok {
			continue
		}
		pairs[model.DistrictYear{CTDS: ctds, Year: year}] = true
	}
	return pairs
}

// Districts accumulates the canonical reference data the table implies:
// each CTDS code's county and every display name the table has used for it.
func (t *Table) Districts() map[string]*model.CanonicalDistrict {
	districts := make(map[string]*model.CanonicalDistrict)
	for _, row := range t.Rows {
		ctds := NormalizeID(row[model.ColCTDSID])
		county := strings.TrimSpace(row[model.ColCounty])
		if ctds == "" || county == "" {
			continue
		}
		d := districts[ctds]
		if d == nil {
			d = &model.CanonicalDistrict{CTDS: ctds, County: county, Names: make(map[string]bool)}
			districts[ctds] = d
		}
		if name := row[model.ColSchoolDistrict]; name != "" {
			d.Names[name] = true
		}
	}
	return districts
}

// NormalizeID strips the legacy float formatting from an identifier column
// ("4470.0" -> "4470"). Returns "" for blank or non-numeric input.
func NormalizeID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}
	return strconv.Itoa(int(f))
}

func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
