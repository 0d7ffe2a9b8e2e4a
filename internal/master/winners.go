package master

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmfreder123/az-boards/internal/model"
)

// Rows matching these are ballot artifacts, not people; they never win or
// lose and their winner cell stays blank.
var nonCandidateRe = regexp.MustCompile(`(?i)` + strings.Join([]string{
	`WRITE.?IN`,
	`NO CANDIDATE`,
	`OVER\s?VOTE`,
	`UNDER\s?VOTE`,
	`BUDGET INCREASE`,
	`BUDGET OVERRIDE`,
	`BOND ELECTION`,
	`BOND APPROVAL`,
	`TIMES COUNTED`,
	`TIMES BLANK`,
	`^TOTAL VOTE`,
	`^TOTALVOTE`,
	`^NOT ASSIGNED$`,
}, "|"))

// IsRealCandidate reports whether a candidate label names an actual person
// rather than a write-in bucket, over/under vote count, or ballot measure.
func IsRealCandidate(name string) bool {
	return !nonCandidateRe.MatchString(name)
}

// SeatKey identifies one district-year in the seat summary. Year is the raw
// table string so grouping matches the master's own formatting.
type SeatKey struct {
	Year     string
	District string
}

// LoadSeatSummary reads num_seats per district-year from the summary CSV.
func LoadSeatSummary(path string) (map[SeatKey]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seat summary: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read seat summary: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("seat summary is empty")
	}

	idx := make(map[string]int)
	for i, col := range records[0] {
		idx[strings.TrimSpace(col)] = i
	}
	get := func(raw []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(raw) {
			return ""
		}
		return raw[i]
	}

	seats := make(map[SeatKey]int)
	for _, raw := range records[1:] {
		ns := strings.TrimSpace(get(raw, "num_seats"))
		if ns == "" {
			continue
		}
		n, err := strconv.ParseFloat(ns, 64)
		if err != nil {
			continue
		}
		key := SeatKey{Year: get(raw, "year"), District: get(raw, "school_district")}
		seats[key] = int(n)
	}
	return seats, nil
}

// WinnerStats summarizes a winner-population pass.
type WinnerStats struct {
	AlreadyComplete int
	LosersFilled    int
	LoserGroups     int
	InferredRows    int
	InferredGroups  int
	NoSeatsInfo     int
}

// PopulateWinners fills the winner column in two passes. Pass 1: for
// district-years where some rows already carry YES, unmarked real
// candidates become NO. Pass 2: for district-years with no markings and a
// known seat count, the top-N real candidates by votes become YES and the
// rest NO. Non-candidate rows always stay blank. Mutates t in memory; the
// caller decides where the result is written.
func PopulateWinners(t *Table, seats map[SeatKey]int) WinnerStats {
	groups := make(map[SeatKey][]int)
	var order []SeatKey
	for i, row := range t.Rows {
		key := SeatKey{Year: row[model.ColYear], District: row[model.ColSchoolDistrict]}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	var stats WinnerStats
	for _, key := range order {
		indices := groups[key]

		var marked, empty []int
		for _, i := range indices {
			if strings.TrimSpace(t.Rows[i][model.ColWinner]) != "" {
				marked = append(marked, i)
			} else {
				empty = append(empty, i)
			}
		}

		if len(empty) == 0 {
			stats.AlreadyComplete += len(indices)
			continue
		}

		if len(marked) > 0 {
			for _, i := range empty {
				if IsRealCandidate(t.Rows[i][model.ColCandidate]) {
					t.Rows[i][model.ColWinner] = "NO"
				}
			}
			stats.LosersFilled += len(empty)
			stats.LoserGroups++
			continue
		}

		n, ok := seats[key]
		if !ok {
			stats.NoSeatsInfo += len(indices)
			continue
		}

		var real []int
		for _, i := range indices {
			if IsRealCandidate(t.Rows[i][model.ColCandidate]) {
				real = append(real, i)
			}
		}
		if len(real) == 0 {
			continue
		}

		ranked := make([]int, len(real))
		copy(ranked, real)
		// Stable on row order so vote ties resolve the way the table reads.
		for i := 1; i < len(ranked); i++ {
			for j := i; j > 0 && votes(t.Rows[ranked[j]]) > votes(t.Rows[ranked[j-1]]); j-- {
				ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
			}
		}

		top := make(map[int]bool, n)
		for _, i := range ranked[:min(n, len(ranked))] {
			top[i] = true
		}
		for _, i := range real {
			if top[i] {
				t.Rows[i][model.ColWinner] = "YES"
			} else {
				t.Rows[i][model.ColWinner] = "NO"
			}
		}

		stats.InferredRows += len(indices)
		stats.InferredGroups++
	}
	return stats
}

func votes(row map[string]string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(row[model.ColTotalVotes]), 64)
	if err != nil {
		return 0
	}
	return v
}
