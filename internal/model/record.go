package model

// PrecinctVoteRecord is one precinct-level row pulled from a county-year
// source file, after dialect mapping but before aggregation. Vote-method
// sub-totals are nil when the source layout does not report them;
// "not reported" and "zero" are different facts.
type PrecinctVoteRecord struct {
	County     string
	Office     string
	District   string
	Candidate  string
	Party      string
	TotalVotes int

	EarlyVoting *int
	ElectionDay *int
	Provisional *int
}

// GroupKey identifies one candidate within one county-year file. Equality is
// exact-string: normalization is a matching concern, never an identity one.
type GroupKey struct {
	County    string
	Office    string
	District  string
	Candidate string
	Party     string
}

// Key returns the grouping key for this record.
func (r *PrecinctVoteRecord) Key() GroupKey {
	return GroupKey{
		County:    r.County,
		Office:    r.Office,
		District:  r.District,
		Candidate: r.Candidate,
		Party:     r.Party,
	}
}

// CandidateAggregate is one candidate's summed totals across every precinct
// in a county-year file. Immutable once produced by the aggregator.
type CandidateAggregate struct {
	County     string
	Office     string
	District   string
	Candidate  string
	Party      string
	TotalVotes int

	// Sub-totals stay nil when no member precinct reported the method.
	EarlyVoting *int
	ElectionDay *int
	Provisional *int
}

// Count wraps an int for optional sub-total plumbing.
func Count(v int) *int { return &v }
