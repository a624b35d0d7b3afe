package picture

import (
	"github.com/pfrederiksen/playoff-picture/internal/extract"
	"github.com/pfrederiksen/playoff-picture/internal/rankings"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// Location is the side of a matchup a team plays on.
type Location string

const (
	Home Location = "home"
	Away Location = "away"
)

// ScheduleEntry is one remaining game for a team.
type ScheduleEntry struct {
	Opponent       string   `json:"opponent"`
	Location       Location `json:"location"`
	Week           string   `json:"week"`
	OpponentRecord string   `json:"opponentRecord"`
}

// Opponent is the short form of the next game.
type Opponent struct {
	Opponent string   `json:"opponent"`
	Location Location `json:"location"`
}

// Team is one team in the output document.
type Team struct {
	Name              string            `json:"name"`
	Conf              team.Conference   `json:"conf"`
	Record            extract.Record    `json:"record"`
	Probability       float64           `json:"probability"`
	Trend             int               `json:"trend,string"`
	TrendDirection    extract.Direction `json:"trendDirection"`
	RemainingSchedule []ScheduleEntry   `json:"remainingSchedule"`
	NextOpponent      *Opponent         `json:"nextOpponent"`

	// Top is the mention's vertical position; classification only.
	Top float64 `json:"-"`
}

// Conferences splits a bucket by conference.
type Conferences struct {
	AFC []*Team `json:"AFC"`
	NFC []*Team `json:"NFC"`
}

// Get returns the teams of one conference.
func (c *Conferences) Get(conf team.Conference) []*Team {
	switch conf {
	case team.AFC:
		return c.AFC
	case team.NFC:
		return c.NFC
	}
	return nil
}

// Set replaces the teams of one conference. Unknown conferences are ignored.
func (c *Conferences) Set(conf team.Conference, teams []*Team) {
	switch conf {
	case team.AFC:
		c.AFC = teams
	case team.NFC:
		c.NFC = teams
	}
}

// Append adds a team to its conference.
func (c *Conferences) Append(conf team.Conference, t *Team) {
	c.Set(conf, append(c.Get(conf), t))
}

// Count returns the number of teams across both conferences.
func (c *Conferences) Count() int {
	return len(c.AFC) + len(c.NFC)
}

// Picture is the output document.
type Picture struct {
	Bubble        Conferences      `json:"bubble"`
	Eliminated    Conferences      `json:"eliminated"`
	Seeds         Conferences      `json:"seeds"`
	PowerRankings []rankings.Entry `json:"powerRankings"`
}

// New returns an empty picture whose lists serialize as [].
func New() *Picture {
	p := &Picture{}
	p.Normalize()
	return p
}

// Teams returns every team in seeds, bubble, eliminated order.
func (p *Picture) Teams() []*Team {
	var out []*Team
	for _, bucket := range []*Conferences{&p.Seeds, &p.Bubble, &p.Eliminated} {
		for _, conf := range team.Conferences {
			out = append(out, bucket.Get(conf)...)
		}
	}
	return out
}

// Normalize replaces nil slices with empty ones.
func (p *Picture) Normalize() {
	for _, bucket := range []*Conferences{&p.Seeds, &p.Bubble, &p.Eliminated} {
		for _, conf := range team.Conferences {
			if bucket.Get(conf) == nil {
				bucket.Set(conf, []*Team{})
			}
		}
	}
	for _, t := range p.Teams() {
		if t.RemainingSchedule == nil {
			t.RemainingSchedule = []ScheduleEntry{}
		}
	}
	if p.PowerRankings == nil {
		p.PowerRankings = []rankings.Entry{}
	}
}
