// Package cli implements the command-line interface for playoff-picture.
//
// The cli package provides the Cobra-based CLI with commands to build the full
// playoff picture (run), refresh the authoritative standings snapshot
// (standings), parse the power rankings article alone (rankings) and print a
// saved document (show). Output is text or JSON. It wires configuration,
// logging, storage, the scraper and the pipeline together and maps the
// outcome to the process exit code.
package cli
