// Package extract pulls record, playoff probability and trend out of the
// free-form text around a team mention.
//
// Extraction is a priority-ordered list of rules, each of which can be
// exercised on its own. The package also owns the value types the rules
// produce (Record, probability tokens) and their numeric interpretations.
package extract
