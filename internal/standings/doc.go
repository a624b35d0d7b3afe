// Package standings holds the authoritative per-conference standings table.
//
// The snapshot is scraped from a static playoff-race page with goquery and is
// the ground truth for seeding: the first seven rows of each conference are
// seeds no matter what the heuristic playoff-page scrape finds. It is also
// the record lookup used when correlating schedules.
package standings
