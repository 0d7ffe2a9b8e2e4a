package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jmfreder123/az-boards/internal/model"
)

// Sources maps (year, county) to the raw precinct file location. The
// upstream repository reorganized its layout twice over the covered
// decade, so the path scheme branches on year.
type Sources struct {
	cfg model.SourcesConfig
}

// NewSources wraps the configured source layout.
func NewSources(cfg model.SourcesConfig) *Sources {
	return &Sources{cfg: cfg}
}

// CountyYearURL returns the raw file URL for one county-year.
func (s *Sources) CountyYearURL(year int, slug string) (string, error) {
	prefix, ok := s.cfg.DatePrefixes[year]
	if !ok {
		return "", fmt.Errorf("no date prefix configured for year %d", year)
	}

	switch {
	case year == 2024:
		// 2024 files use literal spaces in multi-word county names.
		escaped := strings.ReplaceAll(slug, "_", "%20")
		return fmt.Sprintf("%s/2024/General/%s__az__general__%s__precinct.csv",
			s.cfg.BaseURL, prefix, escaped), nil
	case year == 2014:
		return fmt.Sprintf("%s/2014/%s__az__general__%s__precinct.csv",
			s.cfg.BaseURL, prefix, slug), nil
	default:
		return fmt.Sprintf("%s/%d/counties/%s__az__general__%s__precinct.csv",
			s.cfg.BaseURL, year, prefix, slug), nil
	}
}

// Slug converts a county display name to the repository's county slug.
func (s *Sources) Slug(countyDisplay string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(countyDisplay)), " ", "_")
}

// Display converts a county slug back to its display name, falling back to
// title-casing the slug for counties missing from the map.
func (s *Sources) Display(slug string) string {
	if display, ok := s.cfg.Counties[slug]; ok {
		return display
	}
	words := strings.Split(strings.ReplaceAll(slug, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ElectionDate returns the general-election date string for a year.
func (s *Sources) ElectionDate(year int) string {
	return s.cfg.ElectionDates[year]
}

// Slugs returns every configured county slug, sorted.
func (s *Sources) Slugs() []string {
	slugs := make([]string, 0, len(s.cfg.Counties))
	for slug := range s.cfg.Counties {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
