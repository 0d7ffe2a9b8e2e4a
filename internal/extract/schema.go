package extract

import (
	"strconv"
	"strings"

	"github.com/jmfreder123/az-boards/internal/model"
)

// Row is one CSV record keyed by lowercased header name.
type Row map[string]string

// Context carries the per-file hints a column mapping may need.
type Context struct {
	County string
	Year   int
}

// Schema describes one known CSV dialect: the header fields that identify
// it and the routine that maps a row into a uniform precinct record. New
// dialects are added by appending a schema description, not by branching.
type Schema struct {
	Name string
	// Fingerprint lists lowercased header fields that must all be present
	// for this schema to claim the file.
	Fingerprint []string
	// Map converts one row. ok=false drops the row (dialect-specific
	// sentinels); record-level filtering happens in the extractor.
	Map func(row Row, ctx Context) (model.PrecinctVoteRecord, bool)
}

// Matches reports whether every fingerprint field appears in the header set.
func (s *Schema) Matches(fields map[string]bool) bool {
	for _, f := range s.Fingerprint {
		if !fields[f] {
			return false
		}
	}
	return true
}

// Registry holds the known dialects in detection order. More specific
// fingerprints must precede their subsets.
type Registry struct {
	schemas []*Schema
}

// NewRegistry builds the registry of the historical county layouts.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(schemaContestPartyBreakdown())
	r.Register(schemaContestVoteTotal())
	r.Register(schemaContestTitleVoteType())
	r.Register(schemaRaceID())
	r.Register(schemaOfficeDistrict())
	r.Register(schemaOfficeGeneric())
	return r
}

// Register appends a schema to the detection order.
func (r *Registry) Register(s *Schema) {
	r.schemas = append(r.schemas, s)
}

// Detect returns the first schema whose fingerprint matches the header, or
// nil when the layout is unrecognized.
func (r *Registry) Detect(header []string) *Schema {
	fields := make(map[string]bool, len(header))
	for _, h := range header {
		fields[strings.ToLower(strings.TrimSpace(h))] = true
	}
	for _, s := range r.schemas {
		if s.Matches(fields) {
			return s
		}
	}
	return nil
}

// parseCount parses a vote count the way the source files write them:
// plain integers, sometimes with a float suffix ("120.0"). Returns ok=false
// for empty or non-numeric input.
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// optCount maps an optional sub-total column: nil when the value is empty
// or unparseable, so absence survives into the aggregate.
func optCount(s string) *int {
	if v, ok := parseCount(s); ok {
		return model.Count(v)
	}
	return nil
}

// schemaContestPartyBreakdown covers the 2014 layout that reports party and
// per-method columns alongside contest/choice naming.
func schemaContestPartyBreakdown() *Schema {
	return &Schema{
		Name:        "contest-party-breakdown",
		Fingerprint: []string{"contest_name", "choice_name", "vote_total", "party_name", "early_votes"},
		Map: func(row Row, ctx Context) (model.PrecinctVoteRecord, bool) {
			v, ok := parseCount(row["vote_total"])
			if !ok {
				return model.PrecinctVoteRecord{}, false
			}
			return model.PrecinctVoteRecord{
				County:      ctx.County,
				Office:      row["contest_name"],
				Candidate:   row["choice_name"],
				Party:       row["party_name"],
				TotalVotes:  v,
				EarlyVoting: optCount(row["early_votes"]),
				ElectionDay: optCount(row["polling_place_votes"]),
				Provisional: optCount(row["provisional_votes"]),
			}, true
		},
	}
}

// schemaContestVoteTotal covers the plain 2014 contest/choice layout with a
// single total column and no party or method breakdown.
func schemaContestVoteTotal() *Schema {
	return &Schema{
		Name:        "contest-vote-total",
		Fingerprint: []string{"contest_name", "choice_name", "vote_total"},
		Map: func(row Row, ctx Context) (model.PrecinctVoteRecord, bool) {
			v, ok := parseCount(row["vote_total"])
			if !ok {
				return model.PrecinctVoteRecord{}, false
			}
			return model.PrecinctVoteRecord{
				County:     ctx.County,
				Office:     row["contest_name"],
				Candidate:  row["choice_name"],
				TotalVotes: v,
			}, true
		},
	}
}

// schemaContestTitleVoteType covers the 2014 layout that repeats each
// candidate per vote-type code: C early/cumulative, E election day,
// P polling place, A absentee/provisional.
func schemaContestTitleVoteType() *Schema {
	return &Schema{
		Name:        "contesttitle-votetype",
		Fingerprint: []string{"contesttitle", "candidate name", "votes", "votetype"},
		Map: func(row Row, ctx Context) (model.PrecinctVoteRecord, bool) {
			v, ok := parseCount(row["votes"])
			if !ok {
				return model.PrecinctVoteRecord{}, false
			}
			rec := model.PrecinctVoteRecord{
				County:      ctx.County,
				Office:      row["contesttitle"],
				Candidate:   row["candidate name"],
				Party:       row["party name"],
				TotalVotes:  v,
				EarlyVoting: model.Count(0),
				ElectionDay: model.Count(0),
				Provisional: model.Count(0),
			}
			switch strings.TrimSpace(row["votetype"]) {
			case "C":
				rec.EarlyVoting = model.Count(v)
			case "E", "P":
				rec.ElectionDay = model.Count(v)
			case "A":
				rec.Provisional = model.Count(v)
			}
			return rec, true
		},
	}
}

// schemaRaceID covers the 2014 race/race_id layout. Candidate IDs at or
// above 999990 are precinct pseudo-candidates and are dropped here.
func schemaRaceID() *Schema {
	return &Schema{
		Name:        "race-id",
		Fingerprint: []string{"race", "race_id", "candidate", "count"},
		Map: func(row Row, ctx Context) (model.PrecinctVoteRecord, bool) {
			if id, err := strconv.Atoi(strings.TrimSpace(row["candidate_id"])); err == nil && id >= 999990 {
				return model.PrecinctVoteRecord{}, false
			}
			v, ok := parseCount(row["count"])
			if !ok {
				return model.PrecinctVoteRecord{}, false
			}
			return model.PrecinctVoteRecord{
				County:     ctx.County,
				Office:     row["race"],
				Candidate:  row["candidate"],
				TotalVotes: v,
			}, true
		},
	}
}

// schemaOfficeDistrict covers the 2016-2024 standard layout with a separate
// district column and optional per-method sub-totals.
func schemaOfficeDistrict() *Schema {
	return &Schema{
		Name:        "office-district",
		Fingerprint: []string{"office", "district", "candidate", "votes"},
		Map: func(row Row, ctx Context) (model.PrecinctVoteRecord, bool) {
			v, ok := parseCount(row["votes"])
			if !ok {
				return model.PrecinctVoteRecord{}, false
			}
			return model.PrecinctVoteRecord{
				County:      ctx.County,
				Office:      row["office"],
				District:    row["district"],
				Candidate:   row["candidate"],
				Party:       row["party"],
				TotalVotes:  v,
				EarlyVoting: optCount(row["early_voting"]),
				ElectionDay: optCount(row["election_day"]),
				Provisional: optCount(row["provisional"]),
			}, true
		},
	}
}

// schemaOfficeGeneric is the fallback office/candidate/votes layout without
// a district column.
func schemaOfficeGeneric() *Schema {
	return &Schema{
		Name:        "office-generic",
		Fingerprint: []string{"office", "candidate", "votes"},
		Map: func(row Row, ctx Context) (model.PrecinctVoteRecord, bool) {
			v, ok := parseCount(row["votes"])
			if !ok {
				return model.PrecinctVoteRecord{}, false
			}
			return model.PrecinctVoteRecord{
				County:     ctx.County,
				Office:     row["office"],
				Candidate:  row["candidate"],
				Party:      row["party"],
				TotalVotes: v,
			}, true
		},
	}
}
