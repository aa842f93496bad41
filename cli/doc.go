// Package cli contains the command line interface for critfail.
//
// # Usage
//
// The default command rolls its arguments, printing the verbose breakdown
// followed by the result:
//
//	critfail a+5?1d4+4+5d6
//	critfail roll --seed=7 --repeat=3 r+3
//	critfail roll --format=json --target='critical' r+3?1d8
//	critfail parse r+3?1d8
//	critfail examples damage
//	critfail repl
//
// Expressions are also read one per line from the files named with
// --source ('-' for stdin). Blank lines and lines starting with '#' are
// skipped.
//
// # Configuration
//
// Flag values are read from config.yaml in the user configuration directory
// and in each directory listed in $CRITFAIL_PATH; directories listed earlier
// take precedence, and command-line flags take precedence over every file.
// Flags of a command are set by a map under the command name:
//
//	log-level: debug
//	roll:
//	  format: json
//
// The init command writes the current defaults to the user configuration
// directory.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o critfail .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/critfail/pprof)
package cli
