package master

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmfreder123/az-boards/internal/model"
)

func TestWriteStagingEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.csv")
	columns := []string{model.ColYear, model.ColCounty, model.ColCandidate}

	// A run that filled nothing still writes a header-only file.
	if err := WriteStaging(path, columns, nil); err != nil {
		t.Fatalf("WriteStaging: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
	if len(table.Columns) != len(columns) {
		t.Errorf("columns = %v, want %v", table.Columns, columns)
	}
}

func TestWriteStagingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.csv")
	columns := []string{model.ColYear, model.ColCounty, model.ColCandidate}
	rows := []map[string]string{
		{model.ColYear: "2018.0", model.ColCounty: "Yavapai", model.ColCandidate: "JANE DOE"},
	}

	if err := WriteStaging(path, columns, rows); err != nil {
		t.Fatalf("WriteStaging: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(table.Rows))
	}
	if table.Rows[0][model.ColCandidate] != "JANE DOE" {
		t.Errorf("candidate = %q", table.Rows[0][model.ColCandidate])
	}
}

func TestWriteMatchLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_log.json")
	log := RunLog{
		RunID:       "test-run",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Entries: []model.MatchLogEntry{
			{CTDS: "4470", Year: 2018, County: "Yavapai", LEAName: "Camp Verde Unified District", Candidates: 2},
		},
	}

	if err := WriteMatchLog(path, log); err != nil {
		t.Fatalf("WriteMatchLog: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got RunLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.RunID != "test-run" || len(got.Entries) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Entries[0].CTDS != "4470" || got.Entries[0].Candidates != 2 {
		t.Errorf("entry = %+v", got.Entries[0])
	}
}
