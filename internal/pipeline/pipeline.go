// Package pipeline drives the gap-fill run: plan the missing
// (district, year) pairs, pull and process each county-year source file,
// and stage new rows without ever touching the authoritative table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jmfreder123/az-boards/internal/aggregate"
	"github.com/jmfreder123/az-boards/internal/extract"
	"github.com/jmfreder123/az-boards/internal/master"
	"github.com/jmfreder123/az-boards/internal/match"
	"github.com/jmfreder123/az-boards/internal/model"
	"github.com/jmfreder123/az-boards/internal/worker"
)

// SourceFetcher is the slice of the fetcher the engine needs; tests swap in
// fixtures.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Engine wires extraction, classification, resolution, and aggregation into
// the plan/execute/materialize/emit state machine. The authoritative table
// is read-only input throughout; the only write targets are the staging
// table and the match log.
type Engine struct {
	cfg       *model.Config
	fetcher   SourceFetcher
	sources   *Sources
	extractor *extract.Extractor
	resolver  *match.Resolver
	out       io.Writer
	verbose   bool
}

// NewEngine assembles an engine from already-loaded components.
func NewEngine(cfg *model.Config, fetcher SourceFetcher, extractor *extract.Extractor, resolver *match.Resolver, out io.Writer) *Engine {
	return &Engine{
		cfg:       cfg,
		fetcher:   fetcher,
		sources:   NewSources(cfg.Sources),
		extractor: extractor,
		resolver:  resolver,
		out:       out,
		verbose:   cfg.Output.Verbose,
	}
}

// UnmatchedRace is a race that passed classification but resolved to no
// known district. Expected steady state; reported, never silently dropped.
type UnmatchedRace struct {
	County   string `json:"county"`
	Year     int    `json:"year"`
	Office   string `json:"office"`
	District string `json:"district,omitempty"`
}

// SchemaMiss is a source file whose header matched no known dialect.
type SchemaMiss struct {
	County  string
	Year    int
	Columns []string
}

// Plan is the derived work list for one run.
type Plan struct {
	Gaps       []model.GapKey
	TotalGaps  int
	GapsByYear map[int]int
}

// RunResult is everything a run produced, for rendering and for tests.
type RunResult struct {
	RunID     string
	Plan      *Plan
	Columns   []string
	NewRows   []map[string]string
	Filled    []model.MatchLogEntry
	Unmatched []UnmatchedRace

	FetchFailures  int
	MissingSources int
	SchemaMisses   []SchemaMiss
	SafetyHits     int
	Collisions     []match.Collision
}

// BuildPlan computes the gap set: every (district, year) combination in
// scope that the authoritative table does not already contain, grouped into
// county-year units.
func (e *Engine) BuildPlan(t *master.Table) *Plan {
	filled := t.FilledPairs()
	districts := t.Districts()

	type unit struct {
		slug string
		year int
	}
	needed := make(map[unit]map[string]bool)
	for ctds, d := range districts {
		slug := e.sources.Slug(d.County)
		for _, year := range e.cfg.Years {
			if filled[model.DistrictYear{CTDS: ctds, Year: year}] {
				continue
			}
			u := unit{slug: slug, year: year}
			if needed[u] == nil {
				needed[u] = make(map[string]bool)
			}
			needed[u][ctds] = true
		}
	}

	plan := &Plan{GapsByYear: make(map[int]int)}
	for u, ctdsSet := range needed {
		plan.Gaps = append(plan.Gaps, model.GapKey{
			CountySlug:    u.slug,
			CountyDisplay: e.sources.Display(u.slug),
			Year:          u.year,
			Needed:        ctdsSet,
		})
		plan.TotalGaps += len(ctdsSet)
		plan.GapsByYear[u.year] += len(ctdsSet)
	}
	sort.Slice(plan.Gaps, func(i, j int) bool {
		if plan.Gaps[i].CountySlug != plan.Gaps[j].CountySlug {
			return plan.Gaps[i].CountySlug < plan.Gaps[j].CountySlug
		}
		return plan.Gaps[i].Year < plan.Gaps[j].Year
	})
	return plan
}

// gapResult is the outcome of executing one county-year unit.
type gapResult struct {
	gap       model.GapKey
	matched   map[string][]model.CandidateAggregate
	unmatched []UnmatchedRace

	fetchErr      error
	sourceMissing bool
	schemaColumns []string
	precincts     int
}

func (r *gapResult) GetError() error { return r.fetchErr }

type gapJob struct {
	engine *Engine
	gap    model.GapKey
	ctx    context.Context
}

// Execute honors the run's context rather than the pool's own lifecycle;
// a canceled run stops between county-year units.
func (j *gapJob) Execute(_ context.Context) worker.Result {
	if err := j.ctx.Err(); err != nil {
		return &gapResult{gap: j.gap, fetchErr: err}
	}
	return j.engine.executeGap(j.ctx, j.gap)
}

// executeGap runs extract -> aggregate -> resolve for one county-year unit.
// Every failure is local to the unit.
func (e *Engine) executeGap(ctx context.Context, gap model.GapKey) *gapResult {
	res := &gapResult{gap: gap, matched: make(map[string][]model.CandidateAggregate)}

	url, err := e.sources.CountyYearURL(gap.Year, gap.CountySlug)
	if err != nil {
		res.fetchErr = err
		return res
	}

	text, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		if errors.Is(err, ErrSourceMissing) {
			res.sourceMissing = true
		}
		res.fetchErr = err
		return res
	}

	records, err := e.extractor.Extract(text, gap.CountyDisplay, gap.Year)
	if err != nil {
		var unknown *extract.UnknownSchemaError
		if errors.As(err, &unknown) {
			res.schemaColumns = unknown.Columns
			return res
		}
		res.fetchErr = err
		return res
	}
	res.precincts = len(records)

	for _, agg := range aggregate.Candidates(records) {
		ctds, ok := e.resolver.Resolve(agg.Office, agg.District, gap.CountyDisplay)
		switch {
		case !ok:
			res.unmatched = append(res.unmatched, UnmatchedRace{
				County:   gap.CountyDisplay,
				Year:     gap.Year,
				Office:   agg.Office,
				District: agg.District,
			})
		case gap.Needed[ctds]:
			res.matched[ctds] = append(res.matched[ctds], agg)
		default:
			// Resolved to a district outside this unit's missing set:
			// either already filled (collector re-checks) or another
			// county's district bleeding through shared naming.
		}
	}
	return res
}

// Run executes the full state machine. The master table and CCD directory
// are hard preconditions; everything downstream degrades per unit.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	t, err := master.Load(e.cfg.Paths.MasterCSV)
	if err != nil {
		return nil, fmt.Errorf("authoritative table: %w", err)
	}
	directory, err := master.LoadDirectory(e.cfg.Paths.CCDCSV)
	if err != nil {
		return nil, fmt.Errorf("cross-reference directory: %w", err)
	}

	plan := e.BuildPlan(t)
	e.logf("planned %d missing district-years across %d county-year files\n",
		plan.TotalGaps, len(plan.Gaps))

	pool := worker.NewPool(e.cfg.Workers.CountyYearWorkers, len(plan.Gaps))
	pool.Start()
	for _, gap := range plan.Gaps {
		pool.Submit(&gapJob{engine: e, gap: gap, ctx: ctx})
	}
	raw := pool.Wait()

	results := make([]*gapResult, 0, len(raw))
	for _, r := range raw {
		results = append(results, r.(*gapResult))
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].gap.CountySlug != results[j].gap.CountySlug {
			return results[i].gap.CountySlug < results[j].gap.CountySlug
		}
		return results[i].gap.Year < results[j].gap.Year
	})

	// Materialize runs strictly single-threaded: the filled set is only
	// read during Execute and only mutated here.
	res := &RunResult{
		RunID:   uuid.NewString(),
		Plan:    plan,
		Columns: t.Columns,
	}
	filled := t.FilledPairs()
	districts := t.Districts()

	for _, gr := range results {
		switch {
		case gr.sourceMissing:
			res.MissingSources++
			e.logf("%s %d: source not published\n", gr.gap.CountyDisplay, gr.gap.Year)
			continue
		case gr.fetchErr != nil:
			res.FetchFailures++
			e.logf("%s %d: skipped: %v\n", gr.gap.CountyDisplay, gr.gap.Year, gr.fetchErr)
			continue
		case gr.schemaColumns != nil:
			res.SchemaMisses = append(res.SchemaMisses, SchemaMiss{
				County:  gr.gap.CountyDisplay,
				Year:    gr.gap.Year,
				Columns: gr.schemaColumns,
			})
			e.logf("%s %d: unrecognized schema\n", gr.gap.CountyDisplay, gr.gap.Year)
			continue
		}

		res.Unmatched = append(res.Unmatched, gr.unmatched...)

		ctdsList := make([]string, 0, len(gr.matched))
		for ctds := range gr.matched {
			ctdsList = append(ctdsList, ctds)
		}
		sort.Strings(ctdsList)

		for _, ctds := range ctdsList {
			pair := model.DistrictYear{CTDS: ctds, Year: gr.gap.Year}
			if filled[pair] {
				// Defense in depth: the plan went stale or two units
				// resolved the same district. Never write.
				res.SafetyHits++
				continue
			}

			candidates := gr.matched[ctds]
			entry := directory[ctds]
			name := ""
			if d := districts[ctds]; d != nil {
				name = d.BestName()
			}
			if name == "" {
				name = entry.LEAName
			}

			for _, cand := range candidates {
				res.NewRows = append(res.NewRows, e.synthesizeRow(t.Columns, gr.gap, ctds, name, entry, cand))
			}
			filled[pair] = true
			res.Filled = append(res.Filled, model.MatchLogEntry{
				CTDS:       ctds,
				Year:       gr.gap.Year,
				County:     gr.gap.CountyDisplay,
				LEAName:    entry.LEAName,
				Candidates: len(candidates),
			})
			e.logf("%s %d: filled %s (%s) with %d candidates\n",
				gr.gap.CountyDisplay, gr.gap.Year, ctds, entry.LEAName, len(candidates))
		}
	}

	res.Collisions = e.resolver.Collisions()
	return res, nil
}

// synthesizeRow builds one staged authoritative row in the table's own
// column schema. Unfilled columns stay empty; numeric fields keep the
// table's legacy float formatting.
func (e *Engine) synthesizeRow(columns []string, gap model.GapKey, ctds, name string, entry model.DirectoryEntry, cand model.CandidateAggregate) map[string]string {
	row := make(map[string]string, len(columns))
	for _, col := range columns {
		row[col] = ""
	}

	row[model.ColYear] = fmt.Sprintf("%d.0", gap.Year)
	row[model.ColElectionDate] = e.sources.ElectionDate(gap.Year)
	row[model.ColElectionType] = "general"
	row[model.ColCounty] = gap.CountyDisplay
	row[model.ColSchoolDistrict] = name
	row[model.ColCTDSID] = ctds + ".0"
	if entry.LEAID != "" {
		row[model.ColNCESLEAID] = entry.LEAID + ".0"
	}
	row[model.ColCCDLEAName] = entry.LEAName

	if cand.District != "" {
		row[model.ColOffice] = cand.Office + " - " + cand.District
	} else {
		row[model.ColOffice] = cand.Office
	}
	row[model.ColCandidate] = cand.Candidate
	row[model.ColParty] = cand.Party
	row[model.ColTotalVotes] = fmt.Sprintf("%d.0", cand.TotalVotes)
	if cand.EarlyVoting != nil {
		row[model.ColEarlyVoting] = fmt.Sprintf("%d.0", *cand.EarlyVoting)
	}
	if cand.ElectionDay != nil {
		row[model.ColElectionDay] = fmt.Sprintf("%d.0", *cand.ElectionDay)
	}
	if cand.Provisional != nil {
		row[model.ColProvisional] = fmt.Sprintf("%d.0", *cand.Provisional)
	}
	return row
}

// Emit writes the staged rows and the match log. Always writes both files,
// even when empty: a header-only staging table is the signal that the run
// found nothing left to fill.
func (e *Engine) Emit(res *RunResult) error {
	if err := master.WriteStaging(e.cfg.Paths.Staging, res.Columns, res.NewRows); err != nil {
		return err
	}
	return master.WriteMatchLog(e.cfg.Paths.MatchLog, master.RunLog{
		RunID:       res.RunID,
		GeneratedAt: time.Now().UTC(),
		Entries:     res.Filled,
	})
}

func (e *Engine) logf(format string, args ...any) {
	if e.verbose && e.out != nil {
		fmt.Fprintf(e.out, format, args...)
	}
}
