// Package schedule correlates weekly schedule pages with the playoff picture.
//
// Each week page links every game as /games/<away>-at-<home>-<year>-reg-<n>.
// Matchups parses those links, Build turns them into per-team schedules and
// Attach copies the schedules onto each team of a picture with the
// opponent's record from the standings table.
package schedule
