package change

import (
	"fmt"
	"sort"
	"time"

	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// Type is the kind of change detected for a team.
type Type string

const (
	TypeNew         Type = "new"
	TypeBucket      Type = "bucket"
	TypeSeed        Type = "seed"
	TypeRecord      Type = "record"
	TypeProbability Type = "probability"
	TypeDropped     Type = "dropped"
)

// Bucket names a section of the picture.
type Bucket string

const (
	BucketSeed       Bucket = "seed"
	BucketBubble     Bucket = "bubble"
	BucketEliminated Bucket = "eliminated"
)

// Change represents a change detected for one team
type Change struct {
	Team       string          `json:"team"`
	Conf       team.Conference `json:"conf"`
	Type       Type            `json:"type"`
	OldValue   string          `json:"old_value"`
	NewValue   string          `json:"new_value"`
	DetectedAt time.Time       `json:"detected_at"`
}

func (c *Change) String() string {
	switch c.Type {
	case TypeNew:
		return fmt.Sprintf("%s %s: now %s", c.Conf, c.Team, c.NewValue)
	case TypeDropped:
		return fmt.Sprintf("%s %s: no longer listed (was %s)", c.Conf, c.Team, c.OldValue)
	}
	return fmt.Sprintf("%s %s: %s %s -> %s", c.Conf, c.Team, c.Type, c.OldValue, c.NewValue)
}

// placement is where a team sits in one picture
type placement struct {
	conf   team.Conference
	bucket Bucket
	seed   int
	team   *picture.Team
}

func index(p *picture.Picture) map[string]placement {
	out := make(map[string]placement)
	if p == nil {
		return out
	}
	buckets := []struct {
		name Bucket
		c    *picture.Conferences
	}{
		{BucketSeed, &p.Seeds},
		{BucketBubble, &p.Bubble},
		{BucketEliminated, &p.Eliminated},
	}
	for _, b := range buckets {
		for _, conf := range team.Conferences {
			for i, t := range b.c.Get(conf) {
				if _, dup := out[t.Name]; dup {
					continue
				}
				pl := placement{conf: conf, bucket: b.name, team: t}
				if b.name == BucketSeed {
					pl.seed = i + 1
				}
				out[t.Name] = pl
			}
		}
	}
	return out
}

// Diff compares the current picture against the previous one and returns
// every detected change, ordered by conference then team.
func Diff(previous, current *picture.Picture, now time.Time) []*Change {
	prev := index(previous)
	curr := index(current)
	changes := make([]*Change, 0)

	add := func(pl placement, typ Type, oldValue, newValue string) {
		changes = append(changes, &Change{
			Team:       pl.team.Name,
			Conf:       pl.conf,
			Type:       typ,
			OldValue:   oldValue,
			NewValue:   newValue,
			DetectedAt: now.UTC(),
		})
	}

	for name, c := range curr {
		p, exists := prev[name]
		if !exists {
			add(c, TypeNew, "", describe(c))
			continue
		}

		if p.bucket != c.bucket {
			add(c, TypeBucket, describe(p), describe(c))
		} else if p.seed != c.seed {
			add(c, TypeSeed, describe(p), describe(c))
		}
		if p.team.Record != c.team.Record {
			add(c, TypeRecord, p.team.Record.String(), c.team.Record.String())
		}
		if p.team.Probability != c.team.Probability {
			add(c, TypeProbability, formatPercent(p.team.Probability), formatPercent(c.team.Probability))
		}
	}

	for name, p := range prev {
		if _, exists := curr[name]; !exists {
			add(p, TypeDropped, describe(p), "")
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Conf != changes[j].Conf {
			return changes[i].Conf < changes[j].Conf
		}
		if changes[i].Team != changes[j].Team {
			return changes[i].Team < changes[j].Team
		}
		return changes[i].Type < changes[j].Type
	})
	return changes
}

func describe(pl placement) string {
	if pl.bucket == BucketSeed {
		return fmt.Sprintf("seed %d", pl.seed)
	}
	return string(pl.bucket)
}

func formatPercent(p float64) string {
	if p < 0 {
		return "unknown"
	}
	return fmt.Sprintf("%g%%", p)
}
