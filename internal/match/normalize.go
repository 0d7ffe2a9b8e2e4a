package match

import (
	"regexp"
	"strings"
)

// Seat-type and term-length decorations that counties prepend or append to
// the district name. Checked in order; stripping one may expose another.
var (
	racePrefixes = []string{
		"GOVERNING BOARD - ", "GOVERNING BOARD, ", "GOVERNING BOARD ",
		"GOVERNING BOARD 2-YEAR TERM - ", "GOVERNING BOARD 2-YEAR TERM ",
		"BOARD MEMBER - ", "BOARD MEMBER ", "BD MEMBER ", "BRD MEMBER ",
		"SCHOOL BOARD MEMBER ", "FLORENCE BOARD MEMBER ",
	}
	raceSuffixes = []string{
		" BOARD MEMBER", " - BOARD MEMBER",
		"-GBM-4YR", "-GBM-2YR", "-GBM",
		" GOV BRD - 4YR", " GOV BRD - 2YR", " GOV BRD",
		": 4-YEAR TERM", ": 2-YEAR TERM", ": 4YR", ": 2YR",
	}

	reElectN    = regexp.MustCompile(`\s*\(ELECT\s+\d+\)`)
	reSelectN   = regexp.MustCompile(`\s*\(SELECT\s+\d+\)`)
	reVoteForN  = regexp.MustCompile(`\s*\(VOTE\s+(?:FOR\s+)?\d+\)`)
	reVacancy   = regexp.MustCompile(`\s*VACANCY$`)
	reSchDist   = regexp.MustCompile(`\bSCH\.?\s*DIST\.?\s*`)
	reSD        = regexp.MustCompile(`\bS\.D\.\s*`)
	reElem      = regexp.MustCompile(`\bELEM\.?\s*`)
	reSchoolDst = regexp.MustCompile(`\bSCHOOL DISTRICT\b`)
	reHashNum   = regexp.MustCompile(`\s*#\s*0*(\d+)`)
	reNoNum     = regexp.MustCompile(`\s*NO\.?\s*0*(\d+)`)
	reDistNum   = regexp.MustCompile(`\s*DIST\.?\s*0*(\d+)`)
	reTrailNum  = regexp.MustCompile(`\s+#?\d+\s*$`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// NormalizeRaceName reduces a raw race or office label to a bare district
// name suitable for fragment matching: uppercased, seat/term decorations
// stripped, "school district" spellings expanded then removed, district
// numbers normalized away.
func NormalizeRaceName(text string) string {
	t := strings.ToUpper(strings.TrimSpace(text))

	for _, prefix := range racePrefixes {
		t = strings.TrimPrefix(t, prefix)
	}
	for _, suffix := range raceSuffixes {
		t = strings.TrimSuffix(t, suffix)
	}

	t = reElectN.ReplaceAllString(t, "")
	t = reSelectN.ReplaceAllString(t, "")
	t = reVoteForN.ReplaceAllString(t, "")
	t = reVacancy.ReplaceAllString(t, "")

	t = reSchDist.ReplaceAllString(t, "SCHOOL DISTRICT ")
	t = reSD.ReplaceAllString(t, "SCHOOL DISTRICT ")
	t = reElem.ReplaceAllString(t, "ELEMENTARY ")
	// Expanded above for uniformity, removed here for cleaner matching.
	t = reSchoolDst.ReplaceAllString(t, "")

	t = reHashNum.ReplaceAllString(t, " #${1}")
	t = reNoNum.ReplaceAllString(t, " #${1}")
	t = reDistNum.ReplaceAllString(t, " #${1}")
	t = reTrailNum.ReplaceAllString(t, "")

	return strings.TrimSpace(reSpaces.ReplaceAllString(t, " "))
}
