package master

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jmfreder123/az-boards/internal/model"
)

// WriteStaging writes synthesized rows to the staging table using the
// authoritative table's column schema. The staging file is the pipeline's
// only row output; the authoritative table is never written here.
func WriteStaging(path string, columns []string, rows []map[string]string) error {
	t := &Table{Columns: columns, Rows: rows}
	if err := t.Write(path); err != nil {
		return fmt.Errorf("write staging table: %w", err)
	}
	return nil
}

// RunLog is the persisted match log: one entry per filled (district, year)
// pair, stamped with the run that produced it. Written for human review,
// never consumed by the pipeline.
type RunLog struct {
	RunID       string                `json:"run_id"`
	GeneratedAt time.Time             `json:"generated_at"`
	Entries     []model.MatchLogEntry `json:"entries"`
}

// WriteMatchLog persists the run log as indented JSON.
func WriteMatchLog(path string, log RunLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal match log: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write match log: %w", err)
	}
	return nil
}
