// Package classify decides whether a raw office/district text pair denotes
// a school governing-board race. The rule set is layered and intentionally
// favors precision over recall: a missed race shows up in the unmatched
// report for review, a false positive would corrupt the master table.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywords []byte

// Keywords holds the classifier's keyword lists. Versioned data; see
// keywords.yaml for the semantics of each list.
type Keywords struct {
	Disqualify   []string `yaml:"disqualify"`
	Board        []string `yaml:"board"`
	NonSchool    []string `yaml:"non_school"`
	DistrictType []string `yaml:"district_type"`
	SeatPhrases  []string `yaml:"seat_phrases"`
}

// DefaultKeywords parses the embedded keyword lists.
func DefaultKeywords() (*Keywords, error) {
	return parseKeywords(defaultKeywords)
}

// LoadKeywords reads keyword lists from a YAML file.
func LoadKeywords(path string) (*Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords: %w", err)
	}
	return parseKeywords(data)
}

func parseKeywords(data []byte) (*Keywords, error) {
	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, fmt.Errorf("parse keywords: %w", err)
	}
	if len(kw.Board) == 0 || len(kw.Disqualify) == 0 {
		return nil, fmt.Errorf("keyword lists incomplete: board and disqualify are required")
	}
	return &kw, nil
}

// DistrictResolver is the slice of the resolver the classifier needs:
// classification of a bare district name used as an office label may depend
// on whether that name resolves to a known district at all.
type DistrictResolver interface {
	Resolve(office, district, county string) (string, bool)
}

// Classifier applies the layered governing-board rule set.
type Classifier struct {
	kw       *Keywords
	resolver DistrictResolver
}

// New builds a classifier from keyword lists and a resolver.
func New(kw *Keywords, resolver DistrictResolver) *Classifier {
	return &Classifier{kw: kw, resolver: resolver}
}

// IsSchoolBoardRace reports whether the office/district pair names a school
// governing-board race.
func (c *Classifier) IsSchoolBoardRace(office, district string) bool {
	combined := strings.ToUpper(office + " " + district)

	if containsAny(combined, c.kw.Disqualify) {
		return false
	}

	if containsAny(combined, c.kw.Board) {
		return !containsAny(combined, c.kw.NonSchool)
	}

	// Races labeled with the bare district name, e.g. "CAMP VERDE USD #28".
	if containsAny(combined, c.kw.DistrictType) {
		if containsAny(combined, c.kw.SeatPhrases) {
			return true
		}
		if _, ok := c.resolver.Resolve(office, district, ""); ok {
			return true
		}
	}

	// Pipe-delimited layouts: "School Board Member | KUSD #20".
	flattened := strings.ReplaceAll(combined, "|", " ")
	if containsAny(flattened, c.kw.DistrictType) {
		if _, ok := c.resolver.Resolve(office, district, ""); ok {
			return true
		}
	}

	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
