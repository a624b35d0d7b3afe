// Package rankings parses a power-rankings article into ranked entries.
//
// The article renders each team as a card whose text reads, line by line:
// "Rank", the rank number, an optional signed movement, the team name, an
// optional record and the narrative blurb. Cards are nested in wrapper divs,
// so the same rank is usually seen more than once; the entry with the
// longest blurb wins.
package rankings
