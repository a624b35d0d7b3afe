// Package picture builds the playoff picture from the standings page.
//
// FindBoundary locates the ELIMINATED header, a Classifier turns leaf
// elements naming a team into Mentions, Merge combines them with the
// authoritative seeds into seed, bubble and eliminated buckets per
// conference, and SortTeams orders the two non-seed buckets.
package picture
