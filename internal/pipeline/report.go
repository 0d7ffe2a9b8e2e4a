package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
)

// RenderSummary prints the human-facing run report: what was filled, what
// failed, and everything queued for manual review.
func RenderSummary(w io.Writer, res *RunResult) {
	header := color.New(color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	header.Fprintln(w, "Gap-fill run", res.RunID)
	fmt.Fprintf(w, "  planned gaps:     %d district-years in %d county-year files\n",
		res.Plan.TotalGaps, len(res.Plan.Gaps))
	good.Fprintf(w, "  filled:           %d district-years (%d new rows)\n",
		len(res.Filled), len(res.NewRows))
	fmt.Fprintf(w, "  remaining gaps:   %d\n", res.Plan.TotalGaps-len(res.Filled))

	if len(res.Filled) > 0 {
		byYear := make(map[int]int)
		for _, entry := range res.Filled {
			byYear[entry.Year]++
		}
		years := make([]int, 0, len(byYear))
		for y := range byYear {
			years = append(years, y)
		}
		sort.Ints(years)
		fmt.Fprintln(w, "  filled by year:")
		for _, y := range years {
			fmt.Fprintf(w, "    %d: %d districts\n", y, byYear[y])
		}
	}

	if res.MissingSources > 0 {
		fmt.Fprintf(w, "  unpublished sources: %d county-year files\n", res.MissingSources)
	}
	if res.FetchFailures > 0 {
		warn.Fprintf(w, "  fetch failures:   %d county-year files\n", res.FetchFailures)
	}
	for _, miss := range res.SchemaMisses {
		warn.Fprintf(w, "  unrecognized schema: %s %d (columns: %v)\n",
			miss.County, miss.Year, miss.Columns)
	}
	if res.SafetyHits > 0 {
		warn.Fprintf(w, "  safety-check discards: %d (already-filled pairs re-resolved)\n",
			res.SafetyHits)
	}

	if len(res.Unmatched) > 0 {
		warn.Fprintf(w, "  unmatched races: %d\n", len(res.Unmatched))
		seen := make(map[string]bool)
		for _, u := range res.Unmatched {
			line := fmt.Sprintf("    ? %s %d: %s", u.County, u.Year, u.Office)
			if u.District != "" {
				line += " | " + u.District
			}
			if !seen[line] {
				seen[line] = true
				fmt.Fprintln(w, line)
			}
		}
	}

	if len(res.Collisions) > 0 {
		warn.Fprintf(w, "  fragment collisions: %d (review the fragment table)\n", len(res.Collisions))
		for _, c := range res.Collisions {
			fmt.Fprintf(w, "    %q matched %v\n", c.Text, c.IDs)
		}
	}
}

// RenderPlan prints the gap plan without running anything.
func RenderPlan(w io.Writer, plan *Plan) {
	header := color.New(color.Bold)
	header.Fprintf(w, "Missing district-years: %d across %d county-year files\n",
		plan.TotalGaps, len(plan.Gaps))

	years := make([]int, 0, len(plan.GapsByYear))
	for y := range plan.GapsByYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		fmt.Fprintf(w, "  %d: %d districts\n", y, plan.GapsByYear[y])
	}

	for _, gap := range plan.Gaps {
		ids := make([]string, 0, len(gap.Needed))
		for ctds := range gap.Needed {
			ids = append(ids, ctds)
		}
		sort.Strings(ids)
		fmt.Fprintf(w, "  %s %d: need %d: %v\n", gap.CountyDisplay, gap.Year, len(ids), ids)
	}
}
