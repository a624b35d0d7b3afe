package picture

import (
	"github.com/pfrederiksen/playoff-picture/internal/extract"
	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// SeededProbability is used for seeds the scrape did not find.
const SeededProbability = 100.0

// Seen is a canonical-id set. The first Add of an id wins.
type Seen map[string]struct{}

// Add records id and reports whether it was new.
func (s Seen) Add(id string) bool {
	if _, dup := s[id]; dup {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Dedupe drops later teams whose canonical id already appeared.
func Dedupe(teams []*Team) []*Team {
	seen := Seen{}
	out := make([]*Team, 0, len(teams))
	for _, t := range teams {
		if seen.Add(t.Name) {
			out = append(out, t)
		}
	}
	return out
}

// Merge combines the authoritative seeds with scraped mentions. Mentions
// below boundary are eliminated, the rest are bubble. Each canonical id
// lands in at most one bucket per conference; seeds claim theirs first.
// The bubble and eliminated lists come back unsorted.
func Merge(snap *standings.Snapshot, mentions []Mention, boundary float64, reg *team.Registry, log *logger.Logger) *Picture {
	if log == nil {
		log = logger.Default()
	}
	p := New()
	consumed := Seen{}

	for _, conf := range team.Conferences {
		var seeds []*Team
		for _, entry := range snap.Seeds(conf) {
			id, _ := reg.Resolve(entry.Team)
			seed := seedFromEntry(id, conf, entry)

			if m, ok := findMention(mentions, id); ok {
				applyMention(seed, m)
			}
			consumed.Add(id)
			seeds = append(seeds, seed)
		}
		p.Seeds.Set(conf, Dedupe(seeds))
	}

	for _, m := range mentions {
		if m.Conf == team.Unknown {
			log.Warn("mention without conference dropped", logger.Fields{"team": m.ID})
			continue
		}
		if !consumed.Add(m.ID) {
			continue
		}

		t := &Team{
			Name:           m.ID,
			Conf:           m.Conf,
			Probability:    extract.UnknownProbability,
			TrendDirection: extract.Same,
			Top:            m.Top,
		}
		applyMention(t, m)

		if m.Top > boundary {
			p.Eliminated.Append(m.Conf, t)
		} else {
			p.Bubble.Append(m.Conf, t)
		}
	}

	for _, conf := range team.Conferences {
		p.Bubble.Set(conf, Dedupe(p.Bubble.Get(conf)))
		p.Eliminated.Set(conf, Dedupe(p.Eliminated.Get(conf)))
	}
	p.Normalize()
	return p
}

func seedFromEntry(id string, conf team.Conference, entry standings.Entry) *Team {
	rec, _ := extract.ParseRecord(entry.Record)
	return &Team{
		Name:           id,
		Conf:           conf,
		Record:         rec,
		Probability:    SeededProbability,
		TrendDirection: extract.Same,
	}
}

func findMention(mentions []Mention, id string) (Mention, bool) {
	for _, m := range mentions {
		if m.ID == id {
			return m, true
		}
	}
	return Mention{}, false
}

// applyMention copies scraped fields over t. Missing scraped values keep
// whatever t already had.
func applyMention(t *Team, m Mention) {
	if m.Fields.Record.Valid {
		t.Record = m.Fields.Record
	}
	if m.Fields.Probability != "" {
		t.Probability = extract.ParseProbability(m.Fields.Probability)
	}
	t.Trend = m.Fields.Trend
	if m.Fields.Direction != "" {
		t.TrendDirection = m.Fields.Direction
	}
	t.Top = m.Top
}
