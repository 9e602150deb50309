// Package cmd implements the calc subcommands: eval, repl, fmt and init.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file written by [Init].
	ConfigIdentifier = "config"
)
