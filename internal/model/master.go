package model

// DistrictYear is the primary safety key of the pipeline: one (CTDS, year)
// pair. The set of pairs already present in the authoritative table must
// never gain a duplicate.
type DistrictYear struct {
	CTDS string
	Year int
}

// GapKey is one unit of work: a county-year source file together with the
// CTDS codes still missing for that county in that year. Derived once per
// run, consumed exactly once.
type GapKey struct {
	CountySlug    string
	CountyDisplay string
	Year          int
	Needed        map[string]bool
}

// MatchLogEntry records one filled (district, year) pair for human review.
// It is never read back as control input.
type MatchLogEntry struct {
	CTDS       string `json:"ctds"`
	Year       int    `json:"year"`
	County     string `json:"county"`
	LEAName    string `json:"lea_name"`
	Candidates int    `json:"n_candidates"`
}

// Authoritative-table column names the pipeline fills when synthesizing new
// rows. Any other column in the table's schema is carried through empty.
const (
	ColYear           = "year"
	ColElectionDate   = "election_date"
	ColElectionType   = "election_type"
	ColCounty         = "county"
	ColSchoolDistrict = "school_district"
	ColCTDSID         = "ctds_id"
	ColNCESLEAID      = "nces_leaid"
	ColCCDLEAName     = "ccd_lea_name"
	ColDistrict       = "district"
	ColOffice         = "office"
	ColCandidate      = "candidate"
	ColParty          = "party"
	ColTotalVotes     = "total_votes"
	ColEarlyVoting    = "early_voting"
	ColElectionDay    = "election_day"
	ColProvisional    = "provisional"
	ColWinner         = "winner"
	ColNumPrecincts   = "num_precincts"
)
