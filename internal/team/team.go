package team

import (
	"errors"
	"regexp"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/logger"
)

// Conference is AFC or NFC. The zero value means the conference is unknown.
type Conference string

const (
	AFC     Conference = "AFC"
	NFC     Conference = "NFC"
	Unknown Conference = ""
)

// Conferences lists the conferences in output order.
var Conferences = []Conference{AFC, NFC}

// ErrUnresolvedTeam is logged when a name falls through to the slug fallback.
var ErrUnresolvedTeam = errors.New("team name not in registry")

// neutralColor is returned by ColorOf for names the registry does not know.
const neutralColor = "#808080"

// Team is one franchise's identity. ID is the canonical id (the nickname).
type Team struct {
	ID         string
	City       string
	FullName   string
	Abbr       string
	Color      string
	Conference Conference
}

// Registry resolves the many display forms of a team to its canonical id.
// It is immutable after construction and safe for concurrent reads.
type Registry struct {
	teams  []Team
	byName map[string]int
	byID   map[string]int // lower-cased canonical id
	log    *logger.Logger
}

// NewRegistry builds the registry over the 32-team table.
func NewRegistry(log *logger.Logger) *Registry {
	return NewRegistryFrom(defaultTeams, extraAliases, log)
}

// NewRegistryFrom builds a registry over an arbitrary team table.
// aliases maps a canonical id to additional exact-match names.
func NewRegistryFrom(teams []Team, aliases map[string][]string, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Default()
	}
	r := &Registry{
		teams:  append([]Team(nil), teams...),
		byName: make(map[string]int),
		byID:   make(map[string]int),
		log:    log,
	}
	for i, t := range r.teams {
		for _, name := range []string{t.ID, t.City, t.FullName} {
			if name != "" {
				r.byName[name] = i
			}
		}
		for _, alias := range aliases[t.ID] {
			r.byName[alias] = i
		}
		r.byID[strings.ToLower(t.ID)] = i
	}
	return r
}

// Teams returns a copy of the table in registry order.
func (r *Registry) Teams() []Team {
	return append([]Team(nil), r.teams...)
}

// Lookup finds a team by exact name, then by the final word of the name
// against canonical ids. It never logs and never falls back.
func (r *Registry) Lookup(raw string) (Team, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Team{}, false
	}
	if i, ok := r.byName[name]; ok {
		return r.teams[i], true
	}

	// "X City TeamName" forms that are not tabulated
	fields := strings.Fields(name)
	last := strings.ToLower(fields[len(fields)-1])
	if i, ok := r.byID[last]; ok {
		return r.teams[i], true
	}
	return Team{}, false
}

// Resolve maps a raw display name to its canonical id and conference.
// Unknown names are logged and come back slugified with an unknown conference.
func (r *Registry) Resolve(raw string) (string, Conference) {
	if t, ok := r.Lookup(raw); ok {
		return t.ID, t.Conference
	}
	r.log.Warn("team mapping not found", logger.Fields{
		"raw":   raw,
		"error": ErrUnresolvedTeam.Error(),
	})
	return Slug(raw), Unknown
}

// Abbreviate returns the short display code, or the first three letters
// upper-cased for names the registry does not know.
func (r *Registry) Abbreviate(raw string) string {
	if t, ok := r.Lookup(raw); ok {
		return t.Abbr
	}
	name := strings.TrimSpace(raw)
	if len(name) > 3 {
		name = name[:3]
	}
	return strings.ToUpper(name)
}

// ColorOf returns the primary team color as a hex string.
func (r *Registry) ColorOf(raw string) string {
	if t, ok := r.Lookup(raw); ok {
		return t.Color
	}
	return neutralColor
}

// MatchToken reports the first team whose nickname appears anywhere in text,
// compared upper-cased.
func (r *Registry) MatchToken(text string) (Team, bool) {
	upper := strings.ToUpper(text)
	for _, t := range r.teams {
		if strings.Contains(upper, strings.ToUpper(t.ID)) {
			return t, true
		}
	}
	return Team{}, false
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug lower-cases a name and turns whitespace runs into hyphens.
func Slug(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
