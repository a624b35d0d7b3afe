package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/playoff-picture/internal/extract"
	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/page"
	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/rankings"
	"github.com/pfrederiksen/playoff-picture/internal/schedule"
	"github.com/pfrederiksen/playoff-picture/internal/scraper"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// Source names used in failures, log fields and metric keys.
const (
	SourceStandings = "standings"
	SourcePlayoff   = "playoff"
	SourceSchedule  = "schedule"
	SourceRankings  = "rankings"
)

// Renderer loads a page and waits for it to settle.
type Renderer interface {
	Render(ctx context.Context, target string, ready scraper.ReadyFunc) (*page.Document, error)
}

// Store persists the standings snapshot between runs.
type Store interface {
	LoadStandings() (*standings.Snapshot, error)
	SaveStandings(snap *standings.Snapshot) error
}

// Options selects the sources of a run.
type Options struct {
	StandingsURL string
	PlayoffURL   string
	ScheduleURL  string // template with %s for the week slug
	RankingsURL  string
	Weeks        []string

	// FetchStandings refreshes the snapshot from StandingsURL before
	// falling back to the stored one.
	FetchStandings bool
}

// SourceError is a failure isolated to one source.
type SourceError struct {
	Source string
	Target string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Source, e.Target, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a run.
type Result struct {
	RunID    string
	Picture  *picture.Picture
	Snapshot *standings.Snapshot
	Failures []*SourceError
	Duration time.Duration
}

// Partial reports whether some source failed.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0
}

// Orchestrator wires the stages of a run together.
type Orchestrator struct {
	renderer  Renderer
	standings *standings.Client
	store     Store
	reg       *team.Registry
	extractor *extract.Extractor
	opts      Options
	log       *logger.Logger
}

// New creates an Orchestrator. fetcher downloads the standings table and
// may be nil when FetchStandings is off.
func New(renderer Renderer, fetcher standings.Document, store Store, reg *team.Registry, opts Options, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Default()
	}
	if len(opts.Weeks) == 0 {
		opts.Weeks = schedule.DefaultWeeks
	}
	o := &Orchestrator{
		renderer:  renderer,
		store:     store,
		reg:       reg,
		extractor: extract.New(),
		opts:      opts,
		log:       log,
	}
	if fetcher != nil {
		o.standings = standings.NewClient(fetcher, opts.StandingsURL)
	}
	return o
}

// run carries the per-run state.
type run struct {
	*Orchestrator
	log    *logger.Logger
	result *Result
}

func (r *run) fail(source, target string, err error) {
	logger.IncrCounter("sources.failed")
	r.log.Error("source unavailable", logger.Fields{"source": source, "target": target}, err)
	r.result.Failures = append(r.result.Failures, &SourceError{Source: source, Target: target, Err: err})
}

func timed(source string) func() {
	start := time.Now()
	return func() {
		logger.RecordTiming("source."+source, time.Since(start))
	}
}

// Run builds a playoff picture. It returns an error only when no standings
// snapshot could be obtained; every other failure is in Result.Failures.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	r := &run{
		Orchestrator: o,
		log:          o.log.With(logger.Fields{"run_id": runID}),
		result:       &Result{RunID: runID},
	}
	r.log.Info("run started", logger.Fields{"weeks": o.opts.Weeks})

	snap, err := r.loadStandings(ctx)
	if err != nil {
		return nil, err
	}
	r.result.Snapshot = snap

	p := r.playoffPicture(ctx, snap)
	schedule.Attach(p, r.schedules(ctx), snap, o.reg)
	p.PowerRankings = r.powerRankings(ctx)
	p.Normalize()

	r.result.Picture = p
	r.result.Duration = time.Since(start)
	logger.RecordTiming("run", r.result.Duration)
	r.report(p)
	return r.result, nil
}

func (r *run) loadStandings(ctx context.Context) (*standings.Snapshot, error) {
	if r.opts.FetchStandings && r.standings != nil {
		snap, err := r.refresh(ctx)
		if err == nil {
			return snap, nil
		}
		r.fail(SourceStandings, r.opts.StandingsURL, err)
	}

	snap, err := r.store.LoadStandings()
	if err != nil {
		return nil, fmt.Errorf("loading standings: %w", err)
	}
	r.log.Info("loaded stored standings", logger.Fields{"last_updated": snap.LastUpdated})
	return snap, nil
}

func (r *run) refresh(ctx context.Context) (*standings.Snapshot, error) {
	defer timed(SourceStandings)()

	snap, err := r.standings.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.store.SaveStandings(snap); err != nil {
		r.log.Warn("could not save standings", logger.Fields{"error": err.Error()})
	}
	r.log.Info("fetched standings", logger.Fields{"afc": len(snap.AFC), "nfc": len(snap.NFC)})
	return snap, nil
}

// RefreshStandings fetches the standings table and stores it.
func (o *Orchestrator) RefreshStandings(ctx context.Context) (*standings.Snapshot, error) {
	if o.standings == nil {
		return nil, fmt.Errorf("%w: no standings fetcher configured", standings.ErrNoSnapshot)
	}
	r := &run{Orchestrator: o, log: o.log, result: &Result{}}
	return r.refresh(ctx)
}

func playoffReady(doc *page.Document) bool {
	return doc.ContainsText("ELIMINATED") || doc.ContainsText(picture.ContextMarker)
}

// playoffPicture merges the scraped playoff page into the seeds. Without the
// page every seed still comes from the snapshot.
func (r *run) playoffPicture(ctx context.Context, snap *standings.Snapshot) *picture.Picture {
	done := timed(SourcePlayoff)
	doc, err := r.renderer.Render(ctx, r.opts.PlayoffURL, playoffReady)
	done()

	var mentions []picture.Mention
	boundary := picture.NoBoundary
	if err != nil {
		r.fail(SourcePlayoff, r.opts.PlayoffURL, err)
	} else {
		// Document order is not a pixel offset; the layout thresholds only
		// apply to renderer-measured pages.
		opts := picture.DefaultClassifierOptions()
		floor := picture.DefaultBoundaryFloor
		if !doc.Positional {
			opts.NavExclusion = 0
			floor = 0
		}

		boundary, err = picture.FindBoundary(doc, floor)
		if errors.Is(err, picture.ErrMissingBoundary) {
			r.log.Warn("eliminated header not found, all mentions treated as bubble", logger.Fields{"target": doc.URL})
		}

		mentions = picture.NewClassifier(r.reg, r.extractor, opts, r.log).Classify(doc)
		r.log.Info("classified mentions", logger.Fields{
			"mentions": len(mentions),
			"boundary": boundary,
		})
	}

	p := picture.Merge(snap, mentions, boundary, r.reg, r.log)
	p.SortBuckets()
	return p
}

func (r *run) schedules(ctx context.Context) schedule.Schedules {
	var matchups []schedule.Matchup
	for _, week := range r.opts.Weeks {
		target, err := schedule.URL(r.opts.ScheduleURL, week)
		if err != nil {
			r.fail(SourceSchedule, week, err)
			continue
		}

		done := timed(SourceSchedule)
		doc, err := r.renderer.Render(ctx, target, schedule.Ready)
		done()
		if err != nil {
			r.fail(SourceSchedule, target, err)
			continue
		}

		found := schedule.Matchups(doc, week, r.reg)
		r.log.Debug("parsed schedule week", logger.Fields{"week": week, "matchups": len(found)})
		matchups = append(matchups, found...)
	}
	logger.SetGauge("schedule.matchups", float64(len(matchups)))
	return schedule.Build(matchups)
}

func (r *run) powerRankings(ctx context.Context) []rankings.Entry {
	entries, err := r.fetchRankings(ctx, r.log)
	if err != nil {
		r.fail(SourceRankings, r.opts.RankingsURL, err)
		return []rankings.Entry{}
	}
	return entries
}

func (o *Orchestrator) fetchRankings(ctx context.Context, log *logger.Logger) ([]rankings.Entry, error) {
	done := timed(SourceRankings)
	doc, err := o.renderer.Render(ctx, o.opts.RankingsURL, rankings.Ready)
	done()
	if err != nil {
		return nil, err
	}

	entries := rankings.Parse(rankings.Blocks(doc))
	if len(entries) == 0 {
		log.Warn("power rankings empty", logger.Fields{"target": o.opts.RankingsURL})
	}
	return entries, nil
}

// Rankings fetches and parses the power rankings article alone.
func (o *Orchestrator) Rankings(ctx context.Context) ([]rankings.Entry, error) {
	return o.fetchRankings(ctx, o.log)
}

func (r *run) report(p *picture.Picture) {
	for _, conf := range team.Conferences {
		logger.SetGauge("teams.seeds."+string(conf), float64(len(p.Seeds.Get(conf))))
		logger.SetGauge("teams.bubble."+string(conf), float64(len(p.Bubble.Get(conf))))
		logger.SetGauge("teams.eliminated."+string(conf), float64(len(p.Eliminated.Get(conf))))
	}
	logger.SetGauge("rankings.entries", float64(len(p.PowerRankings)))

	r.log.Info("run finished", logger.Fields{
		"duration_ms": r.result.Duration.Milliseconds(),
		"failures":    len(r.result.Failures),
		"metrics":     logger.GetMetricsSnapshot(),
	})
}
