package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByStandings SortOrder = "standings"
	SortByName      SortOrder = "name"
	SortByRecord    SortOrder = "record"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	switch o {
	case SortByStandings, SortByName, SortByRecord:
		return true
	}
	return false
}

// sortTeams sorts a slice of teams based on the specified sort order.
// SortByStandings keeps the document order.
func sortTeams(teams []*picture.Team, sortOrder SortOrder) {
	switch sortOrder {
	case SortByName:
		sort.SliceStable(teams, func(i, j int) bool {
			return strings.ToLower(teams[i].Name) < strings.ToLower(teams[j].Name)
		})
	case SortByRecord:
		sort.SliceStable(teams, func(i, j int) bool {
			return compareByRecord(teams[i], teams[j])
		})
	}
}

// compareByRecord compares two teams by their record
// Returns true if team i should come before team j
func compareByRecord(i, j *picture.Team) bool {
	// Unknown records go last
	if i.Record.Valid != j.Record.Valid {
		return i.Record.Valid
	}

	fi, fj := i.Record.WinFraction(), j.Record.WinFraction()
	if fi != fj {
		return fi > fj
	}

	// If records are equal, sort by probability then name
	if i.Probability != j.Probability {
		return i.Probability > j.Probability
	}
	return strings.ToLower(i.Name) < strings.ToLower(j.Name)
}

// sortPicture applies sortOrder to every bucket of both conferences
func sortPicture(p *picture.Picture, sortOrder SortOrder) {
	for _, bucket := range []*picture.Conferences{&p.Seeds, &p.Bubble, &p.Eliminated} {
		for _, conf := range team.Conferences {
			sortTeams(bucket.Get(conf), sortOrder)
		}
	}
}
