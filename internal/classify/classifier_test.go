package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver resolves any text containing one of its fragments.
type stubResolver struct {
	known map[string]string
}

func (s *stubResolver) Resolve(office, district, county string) (string, bool) {
	for frag, ctds := range s.known {
		if strings.Contains(strings.ToUpper(office), frag) ||
			strings.Contains(strings.ToUpper(district), frag) {
			return ctds, true
		}
	}
	return "", false
}

func newTestClassifier(t *testing.T, known map[string]string) *Classifier {
	t.Helper()
	kw, err := DefaultKeywords()
	require.NoError(t, err)
	return New(kw, &stubResolver{known: known})
}

func TestIsSchoolBoardRace(t *testing.T) {
	c := newTestClassifier(t, map[string]string{
		"CAMP VERDE USD": "4470",
		"KUSD":           "4401",
	})

	tests := []struct {
		name     string
		office   string
		district string
		want     bool
	}{
		{
			name:     "governing board with district column",
			office:   "GOVERNING BOARD MEMBER",
			district: "CAMP VERDE USD #28",
			want:     true,
		},
		{
			name:     "school board member office",
			office:   "SCHOOL BOARD MEMBER - HUMBOLDT UNIFIED",
			district: "",
			want:     true,
		},
		{
			name:     "gbm abbreviation",
			office:   "ASH FORK JT UNIFIED-GBM-4YR",
			district: "",
			want:     true,
		},
		{
			name:     "bond question disqualified",
			office:   "BOND QUESTION",
			district: "CAMP VERDE USD #28",
			want:     false,
		},
		{
			name:     "fire district board without board-member phrasing",
			office:   "FIRE DISTRICT BOARD",
			district: "",
			want:     false,
		},
		{
			name:     "board keyword does not rescue a bond question",
			office:   "GOVERNING BOARD BOND QUESTION",
			district: "CAMP VERDE USD #28",
			want:     false,
		},
		{
			name:     "budget override disqualified",
			office:   "BUDGET OVERRIDE - CAMP VERDE USD #28",
			district: "",
			want:     false,
		},
		{
			name:     "fire district board rejected",
			office:   "FIRE DISTRICT BOARD MEMBER",
			district: "",
			want:     false,
		},
		{
			name:     "community college board rejected",
			office:   "COMMUNITY COLLEGE DISTRICT GOVERNING BOARD",
			district: "",
			want:     false,
		},
		{
			name:     "bare district name with seat phrase",
			office:   "CAMP VERDE USD #28 (ELECT 3)",
			district: "",
			want:     true,
		},
		{
			name:     "bare resolvable district name",
			office:   "CAMP VERDE USD #28",
			district: "",
			want:     true,
		},
		{
			name:     "bare unresolvable district-like name",
			office:   "SOMEWHERE USD #99",
			district: "",
			want:     false,
		},
		{
			name:     "pipe-delimited board race",
			office:   "School Board Member | KUSD #20",
			district: "",
			want:     true,
		},
		{
			name:     "county office ignored",
			office:   "COUNTY ASSESSOR",
			district: "",
			want:     false,
		},
		{
			name:     "jted disqualified",
			office:   "JTED GOVERNING BOARD",
			district: "",
			want:     false,
		},
		{
			name:     "empty inputs",
			office:   "",
			district: "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.IsSchoolBoardRace(tt.office, tt.district)
			assert.Equal(t, tt.want, got, "office=%q district=%q", tt.office, tt.district)
		})
	}
}

func TestParseKeywordsValidation(t *testing.T) {
	_, err := parseKeywords([]byte("board: []\ndisqualify: []\n"))
	assert.Error(t, err)

	_, err = parseKeywords([]byte("not: ["))
	assert.Error(t, err)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	_, err := LoadKeywords("does/not/exist.yaml")
	assert.Error(t, err)
}
