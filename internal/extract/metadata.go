package extract

import "strings"

// Labels that mark precinct aggregate rows rather than candidates. Compared
// against the uppercased, trimmed candidate field.
var metadataLabels = map[string]bool{
	"REGISTERED VOTERS":             true,
	"BALLOTS CAST":                  true,
	"BALLOTS CAST BLANK":            true,
	"TOTAL VOTES":                   true,
	"UNDER VOTE":                    true,
	"OVER VOTE":                     true,
	"UNDERVOTE":                     true,
	"OVERVOTE":                      true,
	"WRITE-IN TOTALS":               true,
	"WRITE-INS":                     true,
	"WRITE IN":                      true,
	"WRITE-IN":                      true,
	"NUMBER OF PRECINCTS":           true,
	"NUMBER OF PRECINCTS FOR RACE":  true,
	"NUMBER OF PRECINCTS REPORTING": true,
	"TIMES COUNTED":                 true,
	"NO OFFICIAL CANDIDATE":         true,
}

// IsMetadataRow reports whether a candidate label denotes a precinct
// aggregate (registered voters, ballots cast, write-in buckets, over/under
// votes) that must never reach the aggregator.
func IsMetadataRow(candidate string) bool {
	upper := strings.ToUpper(strings.TrimSpace(candidate))
	if metadataLabels[upper] {
		return true
	}
	for _, prefix := range []string{"TOTAL", "UNDER ", "OVER ", "WRITE-IN", "WRITE IN"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return strings.Contains(upper, "TURNOUT") || strings.Contains(upper, "REGISTERED")
}
