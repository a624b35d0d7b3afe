// Package change detects how the playoff picture moved between two runs.
//
// Teams are matched by canonical id. A team that changed bucket (seed,
// bubble, eliminated), seed position, record or probability produces one
// Change per changed attribute, so a run can report only what is new since
// the last saved document.
package change
