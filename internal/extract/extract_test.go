package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfreder123/az-boards/internal/classify"
	"github.com/jmfreder123/az-boards/internal/match"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	table := &match.Table{Fragments: []match.Fragment{
		{Fragment: "CAMP VERDE", CTDS: "4470"},
		{Fragment: "HUMBOLDT", CTDS: "4469"},
	}}
	kw, err := classify.DefaultKeywords()
	require.NoError(t, err)
	return NewExtractor(classify.New(kw, match.NewResolver(table)))
}

func TestExtractOfficeDistrict(t *testing.T) {
	e := testExtractor(t)

	csvText := `county,precinct,office,district,party,candidate,votes,early_voting,election_day,provisional
Yavapai,12,Governing Board Member,CAMP VERDE UNIFIED SCHOOL DISTRICT #28,,JANE DOE,120,80,35,5
Yavapai,13,Governing Board Member,CAMP VERDE UNIFIED SCHOOL DISTRICT #28,,JANE DOE,85,,,
Yavapai,12,U.S. Senate,,REP,SOME SENATOR,400,300,95,5
Yavapai,12,Governing Board Member,CAMP VERDE UNIFIED SCHOOL DISTRICT #28,,REGISTERED VOTERS,900,,,
Yavapai,12,Governing Board Member,CAMP VERDE UNIFIED SCHOOL DISTRICT #28,,WRITE-IN,3,,,
Yavapai,14,Governing Board Member,CAMP VERDE UNIFIED SCHOOL DISTRICT #28,,JANE DOE,0,,,
`

	records, err := e.Extract(csvText, "Yavapai", 2018)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Yavapai", first.County)
	assert.Equal(t, "Governing Board Member", first.Office)
	assert.Equal(t, "CAMP VERDE UNIFIED SCHOOL DISTRICT #28", first.District)
	assert.Equal(t, "JANE DOE", first.Candidate)
	assert.Equal(t, 120, first.TotalVotes)
	require.NotNil(t, first.EarlyVoting)
	assert.Equal(t, 80, *first.EarlyVoting)
	require.NotNil(t, first.Provisional)
	assert.Equal(t, 5, *first.Provisional)

	// Empty sub-total cells stay absent, not zero.
	second := records[1]
	assert.Equal(t, 85, second.TotalVotes)
	assert.Nil(t, second.EarlyVoting)
	assert.Nil(t, second.ElectionDay)
	assert.Nil(t, second.Provisional)
}

func TestExtractContestPartyBreakdown(t *testing.T) {
	e := testExtractor(t)

	csvText := `contest_name,choice_name,party_name,vote_total,early_votes,polling_place_votes,provisional_votes
HUMBOLDT UNIFIED SCHOOL DISTRICT GOVERNING BOARD,JOHN SMITH,NON,250,200,45,5
HUMBOLDT UNIFIED SCHOOL DISTRICT BOND QUESTION,YES,,900,700,190,10
`

	records, err := e.Extract(csvText, "Yavapai", 2014)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "JOHN SMITH", records[0].Candidate)
	assert.Equal(t, "NON", records[0].Party)
	assert.Equal(t, 250, records[0].TotalVotes)
	require.NotNil(t, records[0].EarlyVoting)
	assert.Equal(t, 200, *records[0].EarlyVoting)
}

func TestExtractContestTitleVoteType(t *testing.T) {
	e := testExtractor(t)

	csvText := `ContestTitle,Candidate Name,Party Name,VoteType,Votes
HUMBOLDT UNIFIED GOVERNING BOARD,JOHN SMITH,,C,150
HUMBOLDT UNIFIED GOVERNING BOARD,JOHN SMITH,,E,40
HUMBOLDT UNIFIED GOVERNING BOARD,JOHN SMITH,,A,10
`

	records, err := e.Extract(csvText, "Mohave", 2014)
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.NotNil(t, records[0].EarlyVoting)
	assert.Equal(t, 150, *records[0].EarlyVoting)
	assert.Equal(t, 150, records[0].TotalVotes)

	require.NotNil(t, records[1].ElectionDay)
	assert.Equal(t, 40, *records[1].ElectionDay)
	require.NotNil(t, records[1].EarlyVoting)
	assert.Equal(t, 0, *records[1].EarlyVoting)

	require.NotNil(t, records[2].Provisional)
	assert.Equal(t, 10, *records[2].Provisional)
}

func TestExtractRaceIDDropsPseudoCandidates(t *testing.T) {
	e := testExtractor(t)

	csvText := `race,race_id,candidate,candidate_id,count
CAMP VERDE USD #28 GOVERNING BOARD,1201,JANE DOE,5001,95
CAMP VERDE USD #28 GOVERNING BOARD,1201,PRECINCT TOTAL,999991,400
`

	records, err := e.Extract(csvText, "Yavapai", 2014)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "JANE DOE", records[0].Candidate)
}

func TestExtractUnknownSchema(t *testing.T) {
	e := testExtractor(t)

	_, err := e.Extract("foo,bar,baz\n1,2,3\n", "Yavapai", 2018)
	var unknown *UnknownSchemaError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"foo", "bar", "baz"}, unknown.Columns)
}

func TestExtractEmptyFile(t *testing.T) {
	e := testExtractor(t)

	records, err := e.Extract("", "Yavapai", 2018)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestDetectOrder(t *testing.T) {
	r := NewRegistry()

	// The party-breakdown header is a superset of the plain contest layout;
	// the more specific schema must claim it.
	s := r.Detect([]string{"contest_name", "choice_name", "party_name", "vote_total", "early_votes"})
	require.NotNil(t, s)
	assert.Equal(t, "contest-party-breakdown", s.Name)

	s = r.Detect([]string{"contest_name", "choice_name", "vote_total"})
	require.NotNil(t, s)
	assert.Equal(t, "contest-vote-total", s.Name)

	s = r.Detect([]string{"county", "office", "district", "candidate", "votes"})
	require.NotNil(t, s)
	assert.Equal(t, "office-district", s.Name)

	s = r.Detect([]string{"office", "candidate", "votes"})
	require.NotNil(t, s)
	assert.Equal(t, "office-generic", s.Name)

	assert.Nil(t, r.Detect([]string{"completely", "unrelated"}))
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"120", 120, true},
		{"120.0", 120, true},
		{"1,204", 1204, true},
		{" 42 ", 42, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseCount(tt.in)
		assert.Equal(t, tt.ok, ok, "parseCount(%q) ok", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "parseCount(%q)", tt.in)
		}
	}
}

func TestIsMetadataRow(t *testing.T) {
	metadata := []string{
		"REGISTERED VOTERS", "Ballots Cast", "WRITE-IN", "write-in totals",
		"Total Votes", "OVER VOTE", "UNDER VOTE", "VOTER TURNOUT",
		"TOTAL", "Times Counted",
	}
	for _, label := range metadata {
		assert.True(t, IsMetadataRow(label), "IsMetadataRow(%q)", label)
	}

	candidates := []string{"JANE DOE", "SMITH, JOHN", "MARY UNDERWOOD"}
	for _, label := range candidates {
		assert.False(t, IsMetadataRow(label), "IsMetadataRow(%q)", label)
	}
}
