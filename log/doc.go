// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("roll", slog.String("expr", "2d8+4"))
//
// The package also keeps a default logger, writing to stderr, that is used by
// the package-level functions [Trace], [Debug], [Info], [Warn], and [Error].
// [Config] applies options to it:
//
//	log.Config(log.WithLevel(log.LevelTrace), log.WithFormat(log.FormatJSON))
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level are
// discarded. Trace sits below slog's Debug and is rendered as "TRACE".
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and [FormatJSON].
// With [WithPretty] enabled (the default), text records are colorized with
// lipgloss and JSON records are indented. Colors are only emitted when the
// output is a terminal.
//
// # Time Formatting
//
// [WithTimeLayout] accepts any named layout of the [time] package (such as
// "RFC3339" or "Kitchen"), "none", or a custom layout string. An empty layout
// disables timestamps.
package log
