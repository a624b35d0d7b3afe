// Package team resolves NFL team names to canonical identities.
//
// The sources disagree on naming: the standings table uses city keys
// ("Kansas City", "N.Y. Jets"), the rankings article uses full names
// ("Kansas City Chiefs") and the playoff page uses nicknames ("Chiefs").
// A Registry maps all of them to one canonical id (the nickname), the
// conference, a short abbreviation and a display color. Unknown names never
// fail: they are logged and slugified.
package team
