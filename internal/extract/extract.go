// Package extract turns raw county-year CSV text into a uniform stream of
// precinct vote records. County election offices produced at least six
// materially different layouts over the covered decade; a registry of
// data-described schemas picks the column mapping by header fingerprint.
package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jmfreder123/az-boards/internal/classify"
	"github.com/jmfreder123/az-boards/internal/model"
)

// UnknownSchemaError reports a file whose header matched no known dialect.
// Recoverable: the caller logs the column set for triage and moves on.
type UnknownSchemaError struct {
	Columns []string
}

func (e *UnknownSchemaError) Error() string {
	return fmt.Sprintf("unrecognized source schema, columns: %s", strings.Join(e.Columns, ", "))
}

// Extractor extracts governing-board precinct records from raw CSV text.
type Extractor struct {
	registry   *Registry
	classifier *classify.Classifier
}

// NewExtractor builds an extractor over the built-in dialect registry.
func NewExtractor(classifier *classify.Classifier) *Extractor {
	return &Extractor{
		registry:   NewRegistry(),
		classifier: classifier,
	}
}

// Extract parses one county-year file. Per-row problems skip the row; an
// unrecognized header returns an UnknownSchemaError; an empty file yields
// no records and no error. The returned sequence is finite and one-shot.
func (e *Extractor) Extract(csvText, county string, year int) ([]model.PrecinctVoteRecord, error) {
	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	schema := e.registry.Detect(header)
	if schema == nil {
		return nil, &UnknownSchemaError{Columns: header}
	}

	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	ctx := Context{County: county, Year: year}
	var records []model.PrecinctVoteRecord

	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line: per-row skip, never fatal.
			continue
		}

		row := make(Row, len(keys))
		for i, key := range keys {
			if i < len(raw) {
				row[key] = raw[i]
			}
		}

		rec, ok := schema.Map(row, ctx)
		if !ok {
			continue
		}
		if !e.classifier.IsSchoolBoardRace(rec.Office, rec.District) {
			continue
		}
		if IsMetadataRow(rec.Candidate) {
			continue
		}
		// Zero-vote precinct rows carry no information; drop, never
		// zero-fill.
		if rec.TotalVotes <= 0 {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
