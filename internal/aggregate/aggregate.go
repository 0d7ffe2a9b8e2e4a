// Package aggregate reduces precinct-level vote records to per-candidate
// totals within one county-year file.
package aggregate

import (
	"sort"

	"github.com/jmfreder123/az-boards/internal/model"
)

type sums struct {
	total int

	early, eday, prov             int
	earlySeen, edaySeen, provSeen bool
}

// Candidates groups records by exact (county, office, district, candidate,
// party) and sums vote totals plus vote-method sub-totals. A sub-total is
// present in the output only when at least one member precinct reported it;
// a reported zero stays zero. Output order is deterministic, sorted by the
// grouping key. No normalization happens here: identity is the raw text.
func Candidates(records []model.PrecinctVoteRecord) []model.CandidateAggregate {
	groups := make(map[model.GroupKey]*sums)
	for i := range records {
		r := &records[i]
		g := groups[r.Key()]
		if g == nil {
			g = &sums{}
			groups[r.Key()] = g
		}
		g.total += r.TotalVotes
		if r.EarlyVoting != nil {
			g.early += *r.EarlyVoting
			g.earlySeen = true
		}
		if r.ElectionDay != nil {
			g.eday += *r.ElectionDay
			g.edaySeen = true
		}
		if r.Provisional != nil {
			g.prov += *r.Provisional
			g.provSeen = true
		}
	}

	keys := make([]model.GroupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })

	out := make([]model.CandidateAggregate, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		agg := model.CandidateAggregate{
			County:     k.County,
			Office:     k.Office,
			District:   k.District,
			Candidate:  k.Candidate,
			Party:      k.Party,
			TotalVotes: g.total,
		}
		if g.earlySeen {
			agg.EarlyVoting = model.Count(g.early)
		}
		if g.edaySeen {
			agg.ElectionDay = model.Count(g.eday)
		}
		if g.provSeen {
			agg.Provisional = model.Count(g.prov)
		}
		out = append(out, agg)
	}
	return out
}

func less(a, b model.GroupKey) bool {
	if a.County != b.County {
		return a.County < b.County
	}
	if a.Office != b.Office {
		return a.Office < b.Office
	}
	if a.District != b.District {
		return a.District < b.District
	}
	if a.Candidate != b.Candidate {
		return a.Candidate < b.Candidate
	}
	return a.Party < b.Party
}
