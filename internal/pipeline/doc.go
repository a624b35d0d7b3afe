// Package pipeline runs one end-to-end build of the playoff picture.
//
// A run loads the authoritative standings, renders the playoff standings
// page, classifies and merges its team mentions, correlates the weekly
// schedule pages and parses the power rankings article. Each source fails
// on its own: an unavailable page is logged, recorded in Result.Failures
// and the rest of the document is still produced. Only a missing standings
// snapshot stops a run.
package pipeline
