// Package cmd implements the subcommands of the deft command line
// interface: translating deft sources, formatting them, retrieving
// individual constants, and generating a default configuration file.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the name of
	// the default configuration constant parsed from the configuration file.
	ConfigIdentifier = "config"
)
