package master

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmfreder123/az-boards/internal/model"
)

// CCD column names for the slices of the national directory we read.
const (
	ccdColFIPST   = "FIPST"
	ccdColLEAType = "LEA_TYPE"
	ccdColSTLEAID = "ST_LEAID"
	ccdColLEAName = "LEA_NAME"
	ccdColLEAID   = "LEAID"

	arizonaFIPS     = "04"
	regularDistrict = "1"
	statePrefix     = "AZ-"
)

// LoadDirectory reads the CCD local-education-agency file and returns the
// Arizona regular school districts keyed by CTDS code. A missing file is a
// precondition failure.
func LoadDirectory(path string) (map[string]model.DirectoryEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CCD directory: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CCD header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{ccdColFIPST, ccdColLEAType, ccdColSTLEAID, ccdColLEAName, ccdColLEAID} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("CCD directory missing column %q", col)
		}
	}

	get := func(raw []string, col string) string {
		i := idx[col]
		if i < len(raw) {
			return raw[i]
		}
		return ""
	}

	entries := make(map[string]model.DirectoryEntry)
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if get(raw, ccdColFIPST) != arizonaFIPS || get(raw, ccdColLEAType) != regularDistrict {
			continue
		}
		ctds := strings.TrimPrefix(get(raw, ccdColSTLEAID), statePrefix)
		if ctds == "" {
			continue
		}
		entries[ctds] = model.DirectoryEntry{
			CTDS:    ctds,
			LEAName: get(raw, ccdColLEAName),
			LEAID:   get(raw, ccdColLEAID),
		}
	}
	return entries, nil
}
