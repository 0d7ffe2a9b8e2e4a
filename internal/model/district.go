package model

// CanonicalDistrict is reference data for one school district, keyed by its
// CTDS code. Built once per run from the authoritative table and never
// mutated by the pipeline.
type CanonicalDistrict struct {
	CTDS   string
	County string
	// Names holds every display-name variant the authoritative table has
	// used for this district. The longest one is preferred when
	// synthesizing new rows.
	Names map[string]bool
}

// BestName returns the longest observed display name, or "" when none.
func (d *CanonicalDistrict) BestName() string {
	best := ""
	for name := range d.Names {
		if len(name) > len(best) || (len(name) == len(best) && name < best) {
			best = name
		}
	}
	return best
}

// DirectoryEntry is one district's row from the national CCD directory,
// keyed by CTDS after stripping the state prefix.
type DirectoryEntry struct {
	CTDS    string
	LEAName string
	LEAID   string
}
