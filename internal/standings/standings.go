package standings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// DefaultURL is the authoritative playoff-race table.
const DefaultURL = "https://www.cbssports.com/nfl/standings/playoffrace/"

// SeedCount is how many teams per conference the table seeds.
const SeedCount = 7

// ErrNoSnapshot means no standings snapshot was available.
var ErrNoSnapshot = errors.New("no standings snapshot")

// NotFound is the opponent record sentinel for teams missing from the table.
const NotFound = "??"

// Clinch statuses derived from the table's markers.
const (
	StatusClinchedPlayoff   = "clinched-playoff"
	StatusClinchedDivision  = "clinched-division"
	StatusClinchedBye       = "clinched-bye"
	StatusClinchedHomefield = "clinched-homefield"
)

var statusMarkers = map[string]string{
	"x": StatusClinchedPlayoff,
	"y": StatusClinchedDivision,
	"z": StatusClinchedBye,
	"*": StatusClinchedHomefield,
}

// Entry is one row of the table.
type Entry struct {
	Seed   int    `json:"seed,string"`
	Team   string `json:"team"`
	Record string `json:"record"`
	Status string `json:"status"`
}

// Snapshot is the authoritative standings at a point in time.
type Snapshot struct {
	LastUpdated time.Time `json:"lastUpdated"`
	AFC         []Entry   `json:"AFC"`
	NFC         []Entry   `json:"NFC"`
}

// Conference returns the ordered entries of one conference.
func (s *Snapshot) Conference(c team.Conference) []Entry {
	switch c {
	case team.AFC:
		return s.AFC
	case team.NFC:
		return s.NFC
	}
	return nil
}

// Seeds returns the first SeedCount entries of a conference.
func (s *Snapshot) Seeds(c team.Conference) []Entry {
	entries := s.Conference(c)
	if len(entries) > SeedCount {
		entries = entries[:SeedCount]
	}
	return entries
}

// Empty reports whether the snapshot has no rows at all.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.AFC)+len(s.NFC) == 0
}

// RecordOf returns the table record of the team whose canonical id or
// display name equals name, scanning AFC then NFC.
func (s *Snapshot) RecordOf(name string, reg *team.Registry) (string, bool) {
	for _, c := range team.Conferences {
		for _, e := range s.Conference(c) {
			if e.Team == name {
				return e.Record, true
			}
			if t, ok := reg.Lookup(e.Team); ok && t.ID == name {
				return e.Record, true
			}
		}
	}
	return NotFound, false
}

// Parse reads both conference tables from the playoff-race page.
func Parse(doc *goquery.Document, now time.Time) *Snapshot {
	return &Snapshot{
		LastUpdated: now.UTC(),
		AFC:         parseTable(doc.Find("#TableBase-AFC")),
		NFC:         parseTable(doc.Find("#TableBase-NFC")),
	}
}

func parseTable(table *goquery.Selection) []Entry {
	entries := make([]Entry, 0, 16)
	table.Find("tr.TableBase-bodyTr").Each(func(i int, row *goquery.Selection) {
		seedText := strings.TrimSpace(row.Find("td:nth-child(1)").Text())
		if seedText == "" {
			return
		}
		seed, err := strconv.Atoi(seedText)
		if err != nil {
			seed = len(entries) + 1
		}

		nameCell := row.Find(".TeamName").First()
		link := nameCell.Find("a").First()
		name := strings.TrimSpace(link.Text())

		entries = append(entries, Entry{
			Seed:   seed,
			Team:   name,
			Record: strings.TrimSpace(row.Find("td.TableBase-bodyTd--number").First().Text()),
			Status: parseStatus(nameCell.Closest("td").Text(), name),
		})
	})
	return entries
}

// parseStatus looks for a clinch marker next to the team name: "Denver x",
// "Denver - y", "z-Denver".
func parseStatus(cellText, name string) string {
	rest := strings.TrimSpace(strings.Replace(cellText, name, " ", 1))
	rest = strings.Trim(rest, " - ")
	if status, ok := statusMarkers[strings.ToLower(rest)]; ok {
		return status
	}
	return ""
}

// Document is the fetch dependency of Client.
type Document interface {
	Document(ctx context.Context, target string) (*goquery.Document, error)
}

// Client fetches and parses the standings table.
type Client struct {
	fetcher Document
	url     string
	now     func() time.Time
}

// NewClient creates a Client for url (DefaultURL when empty).
func NewClient(fetcher Document, url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{fetcher: fetcher, url: url, now: time.Now}
}

// Fetch downloads and parses the current standings.
func (c *Client) Fetch(ctx context.Context) (*Snapshot, error) {
	doc, err := c.fetcher.Document(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("fetching standings: %w", err)
	}
	snap := Parse(doc, c.now())
	if snap.Empty() {
		return nil, fmt.Errorf("%w: no rows in %s", ErrNoSnapshot, c.url)
	}
	return snap, nil
}
