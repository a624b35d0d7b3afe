// Package config loads run settings from defaults, an optional YAML file,
// PLAYOFF_* environment variables and bound command-line flags, in
// increasing order of precedence.
package config
