// Package cmd implements the critfail subcommands: roll, parse, examples,
// repl and init.
//
// Commands receive a [context.Context] carrying the parsed [kong.Context]
// (see [WithContext]) and any expression sources given with --source (see
// [WithSourceFiles]). Output goes to the kong context's Stdout so tests can
// capture it; diagnostics go through package log.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file written by init.
	ConfigIdentifier = "config"
)
