package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/change"
	"github.com/pfrederiksen/playoff-picture/internal/extract"
	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/rankings"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// summaryRankings is how many power rankings the non-verbose summary shows
const summaryRankings = 10

// WritePicture writes the playoff picture in the specified format
func WritePicture(w io.Writer, p *picture.Picture, reg *team.Registry, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		p.Normalize()
		return writeJSON(w, p)
	case FormatText:
		return writePictureText(w, p, reg, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteChanges lists what moved since the previous run
func WriteChanges(w io.Writer, changes []*change.Change) {
	fmt.Fprintln(w)
	if len(changes) == 0 {
		fmt.Fprintln(w, "No changes since last run.")
		return
	}
	fmt.Fprintf(w, "Changes since last run (%d):\n", len(changes))
	for _, c := range changes {
		fmt.Fprintf(w, "  %s\n", c)
	}
}

// WriteStandings writes the standings snapshot in the specified format
func WriteStandings(w io.Writer, snap *standings.Snapshot, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, snap)
	case FormatText:
		fmt.Fprintf(w, "Standings as of %s\n", snap.LastUpdated.Format("2006-01-02 15:04 MST"))
		for _, conf := range team.Conferences {
			fmt.Fprintf(w, "\n%s\n", conf)
			for _, e := range snap.Conference(conf) {
				fmt.Fprintf(w, "  %2d. %-16s %-8s %s\n", e.Seed, e.Team, e.Record, e.Status)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteRankings writes power rankings in the specified format
func WriteRankings(w io.Writer, entries []rankings.Entry, format OutputFormat) error {
	switch format {
	case FormatJSON:
		if entries == nil {
			entries = []rankings.Entry{}
		}
		return writeJSON(w, entries)
	case FormatText:
		if len(entries) == 0 {
			fmt.Fprintln(w, "No power rankings found.")
			return nil
		}
		for _, e := range entries {
			fmt.Fprintf(w, "%2d. %-12s %s\n", e.Rank, e.Team, formatRankTrend(e.Trend))
			if blurb := firstParagraph(e.Blurb); blurb != "" {
				fmt.Fprintf(w, "    %s\n", blurb)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writePictureText outputs the picture as human-readable text
func writePictureText(w io.Writer, p *picture.Picture, reg *team.Registry, verbose bool) error {
	sections := []struct {
		title  string
		bucket *picture.Conferences
		seeded bool
	}{
		{"Seeds", &p.Seeds, true},
		{"Bubble", &p.Bubble, false},
		{"Eliminated", &p.Eliminated, false},
	}

	total := 0
	for _, conf := range team.Conferences {
		fmt.Fprintf(w, "%s\n", conf)
		for _, s := range sections {
			teams := s.bucket.Get(conf)
			if len(teams) == 0 {
				continue
			}
			fmt.Fprintf(w, "  %s (%d):\n", s.title, len(teams))
			for i, t := range teams {
				label := "    "
				if s.seeded {
					label = fmt.Sprintf("%2d. ", i+1)
				}
				fmt.Fprintf(w, "    %s%-12s %-8s %6s %-4s%s\n",
					label, t.Name, t.Record.String(), formatProbability(t.Probability),
					formatTrend(t.TrendDirection, t.Trend), formatNext(t.NextOpponent, reg))
				if verbose {
					for _, g := range t.RemainingSchedule {
						fmt.Fprintf(w, "          %s %s %s (%s)\n", g.Week, locationMark(g.Location), reg.Abbreviate(g.Opponent), g.OpponentRecord)
					}
				}
				total++
			}
		}
		fmt.Fprintln(w)
	}

	if len(p.PowerRankings) > 0 {
		entries := p.PowerRankings
		if !verbose && len(entries) > summaryRankings {
			entries = entries[:summaryRankings]
		}
		fmt.Fprintln(w, "Power Rankings:")
		for _, e := range entries {
			fmt.Fprintf(w, "  %2d. %-12s %s\n", e.Rank, e.Team, formatRankTrend(e.Trend))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d teams, %d ranked\n", total, len(p.PowerRankings))
	return nil
}

// formatProbability renders a probability the way the standings page does:
// 99.5 is ">99%", 0.5 is "<1%", unknown is "n/a".
func formatProbability(p float64) string {
	if p < 0 {
		return "n/a"
	}
	whole, frac := math.Modf(p)
	if frac == 0.5 {
		if p > 50 {
			return fmt.Sprintf(">%.0f%%", whole)
		}
		return fmt.Sprintf("<%.0f%%", whole+1)
	}
	return fmt.Sprintf("%.0f%%", p)
}

func formatTrend(dir extract.Direction, n int) string {
	switch dir {
	case extract.Up:
		return fmt.Sprintf("+%d", n)
	case extract.Down:
		return fmt.Sprintf("-%d", n)
	}
	return ""
}

func formatRankTrend(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("(+%d)", n)
	case n < 0:
		return fmt.Sprintf("(%d)", n)
	}
	return ""
}

func locationMark(l picture.Location) string {
	if l == picture.Away {
		return "@"
	}
	return "vs"
}

func formatNext(next *picture.Opponent, reg *team.Registry) string {
	if next == nil {
		return ""
	}
	return fmt.Sprintf(" next: %s %s", locationMark(next.Location), reg.Abbreviate(next.Opponent))
}

func firstParagraph(blurb string) string {
	first, _, _ := strings.Cut(blurb, "\n\n")
	return first
}
