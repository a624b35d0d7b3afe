package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var recordPattern = regexp.MustCompile(`(\d+)-(\d+)(?:-(\d+))?`)

// Record is a win-loss(-tie) line. The zero value is an unknown record.
type Record struct {
	Wins   int
	Losses int
	Ties   int
	Valid  bool
}

// ParseRecord returns the first W-L or W-L-T token found in s.
func ParseRecord(s string) (Record, bool) {
	m := recordPattern.FindStringSubmatch(s)
	if m == nil {
		return Record{}, false
	}
	r := Record{Valid: true}
	r.Wins, _ = strconv.Atoi(m[1])
	r.Losses, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		r.Ties, _ = strconv.Atoi(m[3])
	}
	return r, true
}

// Games returns wins + losses + ties.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// WinFraction is (W + T/2) / (W + L + T), 0 when no games were played.
func (r Record) WinFraction() float64 {
	total := r.Games()
	if total == 0 {
		return 0
	}
	return (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(total)
}

// String renders W-L, or W-L-T when there are ties. Unknown records are "".
func (r Record) String() string {
	if !r.Valid {
		return ""
	}
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// MarshalText implements encoding.TextMarshaler.
func (r Record) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string is an
// unknown record.
func (r *Record) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*r = Record{}
		return nil
	}
	parsed, ok := ParseRecord(s)
	if !ok {
		return fmt.Errorf("invalid record %q", s)
	}
	*r = parsed
	return nil
}

// UnknownProbability marks a team with no probability signal. It sorts last.
const UnknownProbability = -1.0

var digits = regexp.MustCompile(`\d+`)

// ParseProbability turns a percentage token into a number:
// "55%" -> 55, "<1%" -> 0.5, ">99%" -> 99.5, "" -> -1.
// Bounded tokens sit half a point inside the bound.
func ParseProbability(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return UnknownProbability
	}
	m := digits.FindString(s)
	if m == "" {
		return UnknownProbability
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return UnknownProbability
	}
	switch {
	case strings.HasPrefix(s, "<"):
		return float64(n) - 0.5
	case strings.HasPrefix(s, ">"):
		return float64(n) + 0.5
	}
	return float64(n)
}
