// Package scraper fetches the source pages for playoff-picture.
//
// Targets with an http(s) scheme are fetched with a browser-like user agent
// and a per-request timeout; any other target is a path to a saved page
// (HTML, or a JSON element dump written by a page renderer). Render polls a
// page with exponential backoff until a caller-supplied readiness marker
// shows up, bounded by a settle timeout. Every fetch failure wraps
// ErrPageUnavailable.
package scraper
