package rankings

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/playoff-picture/internal/page"
)

const (
	rankLabel = "Rank"

	// rankSearchLines is how far into a block the Rank label may appear.
	rankSearchLines = 5

	// MaxBlockLength rejects containers that wrap the whole article.
	MaxBlockLength = 5000

	blurbSeparator = "\n\n"
)

var (
	numericLine = regexp.MustCompile(`^\d+$`)
	trendLine   = regexp.MustCompile(`^[-+]?\d+$`)
	recordLine  = regexp.MustCompile(`^\d+-\d+(-\d+)?$`)
)

// Entry is one team's power ranking.
type Entry struct {
	Rank  int    `json:"rank"`
	Team  string `json:"team"`
	Trend int    `json:"trend,string"`
	Blurb string `json:"blurb"`
}

// ParseBlock extracts an entry from one candidate block of article text.
// It reports false for blocks that are not a single ranking card.
func ParseBlock(text string) (Entry, bool) {
	if len(text) > MaxBlockLength {
		return Entry{}, false
	}

	lines := splitLines(text)

	rankIndex := -1
	for i := 0; i < len(lines)-1 && i < rankSearchLines; i++ {
		if lines[i] == rankLabel && numericLine.MatchString(lines[i+1]) {
			rankIndex = i
			break
		}
	}
	if rankIndex < 0 {
		return Entry{}, false
	}

	rank, err := strconv.Atoi(lines[rankIndex+1])
	if err != nil {
		return Entry{}, false
	}

	next := rankIndex + 2
	trend := 0
	if next < len(lines) && trendLine.MatchString(lines[next]) {
		trend, _ = strconv.Atoi(lines[next])
		next++
	}
	if next >= len(lines) {
		return Entry{}, false
	}

	name := lines[next]
	next++
	if next < len(lines) && recordLine.MatchString(lines[next]) {
		next++
	}

	return Entry{
		Rank:  rank,
		Team:  DisplayID(name),
		Trend: trend,
		Blurb: strings.Join(lines[next:], blurbSeparator),
	}, true
}

// Parse runs ParseBlock over every candidate and resolves duplicate ranks
// in favor of the longest blurb. The result is ordered by rank.
func Parse(blocks []string) []Entry {
	var found []Entry
	for _, b := range blocks {
		if e, ok := ParseBlock(b); ok {
			found = append(found, e)
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return len(found[i].Blurb) > len(found[j].Blurb)
	})

	seen := make(map[int]bool, len(found))
	unique := make([]Entry, 0, len(found))
	for _, e := range found {
		if seen[e.Rank] {
			continue
		}
		seen[e.Rank] = true
		unique = append(unique, e)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Rank < unique[j].Rank
	})
	return unique
}

// Blocks returns the inner text of every div on the article page. Nested
// cards show up more than once; Parse sorts that out.
func Blocks(doc *page.Document) []string {
	var blocks []string
	for _, e := range doc.Filter(func(e *page.Element) bool { return page.HasTag(e, "div") }) {
		if e.Text != "" {
			blocks = append(blocks, e.Text)
		}
	}
	return blocks
}

// Ready reports whether the article has rendered at least one rank label.
func Ready(doc *page.Document) bool {
	if doc.Root() == nil {
		return false
	}
	for _, line := range splitLines(doc.Root().Text) {
		if line == rankLabel {
			return true
		}
	}
	return false
}

// DisplayID shortens a full team name to its final word:
// "Kansas City Chiefs" -> "Chiefs".
func DisplayID(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
