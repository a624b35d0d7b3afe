package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/page"
	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// DefaultURLTemplate is the by-week schedule page. %s is the week slug.
const DefaultURLTemplate = "https://www.nfl.com/schedules/2025/by-week/%s"

// DefaultWeeks are the remaining regular-season weeks.
var DefaultWeeks = []string{"REG15", "REG16", "REG17", "REG18"}

const gamePath = "/games/"

var (
	gameHref  = regexp.MustCompile(`/games/([a-z0-9-]+)-at-([a-z0-9-]+)-(\d{4})(?:-reg-(\d+))?`)
	weekLabel = regexp.MustCompile(`(?i)^reg-?0*(\d+)$`)
)

// Matchup is one game: canonical ids of both sides and its week label.
type Matchup struct {
	Away string
	Home string
	Week string
}

// WeekLabel formats a week number as REG plus two digits.
func WeekLabel(n int) string {
	return fmt.Sprintf("REG%02d", n)
}

// ParseWeek reads a week label ("REG15", "reg-15", "15") into its number.
func ParseWeek(s string) (int, error) {
	num := strings.TrimSpace(s)
	if m := weekLabel.FindStringSubmatch(num); m != nil {
		num = m[1]
	}
	n, err := strconv.Atoi(num)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid week %q", s)
	}
	return n, nil
}

// WeekSlug converts a week label to its URL form: REG15 -> reg-15.
func WeekSlug(label string) (string, error) {
	n, err := ParseWeek(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("reg-%d", n), nil
}

// URL builds the schedule page address of one week.
func URL(template, label string) (string, error) {
	if template == "" {
		template = DefaultURLTemplate
	}
	slug, err := WeekSlug(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(template, slug), nil
}

// slugName turns "new-england-patriots" into "Patriots".
func slugName(slug string) string {
	parts := strings.Split(slug, "-")
	name := parts[len(parts)-1]
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseHref extracts a matchup from a game link. The week embedded in the
// link wins over week, the label of the page the link was found on.
func ParseHref(href, week string, reg *team.Registry) (Matchup, bool) {
	m := gameHref.FindStringSubmatch(href)
	if m == nil {
		return Matchup{}, false
	}
	if m[4] != "" {
		if n, err := strconv.Atoi(m[4]); err == nil {
			week = WeekLabel(n)
		}
	}
	away, _ := reg.Resolve(slugName(m[1]))
	home, _ := reg.Resolve(slugName(m[2]))
	return Matchup{Away: away, Home: home, Week: week}, true
}

func isGameLink(e *page.Element) bool {
	return page.HasTag(e, "a") && strings.Contains(e.Attr("href"), gamePath)
}

// Matchups returns the distinct games linked from one week page.
func Matchups(doc *page.Document, week string, reg *team.Registry) []Matchup {
	seen := make(map[Matchup]bool)
	var out []Matchup
	for _, a := range doc.Filter(isGameLink) {
		m, ok := ParseHref(a.Attr("href"), week, reg)
		if !ok || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// Ready reports whether the page has rendered at least one game link.
func Ready(doc *page.Document) bool {
	return len(doc.Filter(isGameLink)) > 0
}

// Schedules maps a canonical id to its games, without opponent records.
type Schedules map[string][]picture.ScheduleEntry

// Build gives the away side {home, away, week} and the home side the mirror.
func Build(matchups []Matchup) Schedules {
	s := make(Schedules)
	for _, m := range matchups {
		s[m.Away] = append(s[m.Away], picture.ScheduleEntry{Opponent: m.Home, Location: picture.Away, Week: m.Week})
		s[m.Home] = append(s[m.Home], picture.ScheduleEntry{Opponent: m.Away, Location: picture.Home, Week: m.Week})
	}
	return s
}

// Attach sets the remaining schedule and next opponent of every team in p.
// Opponent records come from snap; opponents missing from it get
// standings.NotFound.
func Attach(p *picture.Picture, sched Schedules, snap *standings.Snapshot, reg *team.Registry) {
	for _, t := range p.Teams() {
		games := sched[t.Name]
		entries := make([]picture.ScheduleEntry, 0, len(games))
		for _, g := range games {
			g.OpponentRecord = standings.NotFound
			if snap != nil {
				g.OpponentRecord, _ = snap.RecordOf(g.Opponent, reg)
			}
			entries = append(entries, g)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Week < entries[j].Week
		})

		t.RemainingSchedule = entries
		t.NextOpponent = nil
		if len(entries) > 0 {
			t.NextOpponent = &picture.Opponent{Opponent: entries[0].Opponent, Location: entries[0].Location}
		}
	}
}
