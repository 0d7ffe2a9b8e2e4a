package match

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed fragments.yaml
var defaultFragments []byte

// Fragment is one curated mapping from a district-name fragment to its CTDS
// code. The table is data, not logic: it grows by editing YAML, not code.
type Fragment struct {
	Fragment string `yaml:"fragment"`
	CTDS     string `yaml:"ctds"`
}

// Table is an ordered fragment lookup. Order matters: the first containment
// match wins, so more specific fragments belong earlier.
type Table struct {
	Fragments []Fragment `yaml:"fragments"`
}

// DefaultTable parses the embedded curated table.
func DefaultTable() (*Table, error) {
	return parseTable(defaultFragments)
}

// LoadTable reads a fragment table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fragment table: %w", err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse fragment table: %w", err)
	}
	if len(t.Fragments) == 0 {
		return nil, fmt.Errorf("fragment table is empty")
	}
	for i, f := range t.Fragments {
		if f.Fragment == "" || f.CTDS == "" {
			return nil, fmt.Errorf("fragment table entry %d is incomplete", i)
		}
	}
	return &t, nil
}

// Collision records one text that matched fragments mapping to more than
// one CTDS code. The resolver keeps the first match but surfaces the
// ambiguity instead of resolving it silently.
type Collision struct {
	Text string   `json:"text"`
	IDs  []string `json:"ids"`
}

// Resolver maps free-text office/district labels to CTDS codes by ordered
// substring containment. No scoring, no distance metrics: every match is
// reproducible by eye against the table. Safe for concurrent use.
type Resolver struct {
	table []Fragment

	mu         sync.Mutex
	collisions []Collision
	seen       map[string]bool
}

// NewResolver builds a resolver over the given table.
func NewResolver(t *Table) *Resolver {
	return &Resolver{
		table: t.Fragments,
		seen:  make(map[string]bool),
	}
}

var reWS = regexp.MustCompile(`\s+`)

// Resolve maps a race's office/district strings to a CTDS code. It tries, in
// order: the raw district text, the raw office text, office joined with
// district, then each again after normalization, then the pipe-flattened
// concatenation raw and normalized. Returns ("", false) when nothing in the
// table is contained in any candidate text; callers must treat that as
// unresolved, never as a default.
func (r *Resolver) Resolve(office, district, county string) (string, bool) {
	office = strings.TrimSpace(office)
	district = strings.TrimSpace(district)

	var texts []string
	if district != "" {
		texts = append(texts, district)
	}
	texts = append(texts, office)
	if district != "" {
		texts = append(texts, office+" - "+district)
	}

	for _, text := range texts {
		if ctds, ok := r.scan(strings.ToUpper(strings.TrimSpace(text))); ok {
			return ctds, true
		}
		if ctds, ok := r.scan(NormalizeRaceName(text)); ok {
			return ctds, true
		}
	}

	combined := strings.ToUpper(office + " " + district)
	combined = strings.ReplaceAll(combined, "|", " ")
	combined = strings.TrimSpace(reWS.ReplaceAllString(combined, " "))
	if ctds, ok := r.scan(combined); ok {
		return ctds, true
	}
	if ctds, ok := r.scan(NormalizeRaceName(combined)); ok {
		return ctds, true
	}

	return "", false
}

// scan runs one containment pass over the table. The first match wins; when
// fragments for distinct CTDS codes all match, the collision is recorded.
func (r *Resolver) scan(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	first := ""
	var ids []string
	idSeen := make(map[string]bool)
	for _, f := range r.table {
		if !strings.Contains(text, f.Fragment) {
			continue
		}
		if first == "" {
			first = f.CTDS
		}
		if !idSeen[f.CTDS] {
			idSeen[f.CTDS] = true
			ids = append(ids, f.CTDS)
		}
	}

	if first == "" {
		return "", false
	}
	if len(ids) > 1 {
		r.recordCollision(text, ids)
	}
	return first, true
}

func (r *Resolver) recordCollision(text string, ids []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[text] {
		return
	}
	r.seen[text] = true
	r.collisions = append(r.collisions, Collision{Text: text, IDs: ids})
}

// Collisions returns every multi-CTDS containment ambiguity observed so
// far, for the audit report.
func (r *Resolver) Collisions() []Collision {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Collision, len(r.collisions))
	copy(out, r.collisions)
	return out
}
