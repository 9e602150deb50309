// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured once at creation with functional options and
// derived copies never share mutable state with their parent:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Trace("compile", slog.String("postfix", "1 2 +"))
//
// Attributes added with [Logger.With] appear in every message of the
// returned logger.
//
// # Levels
//
// In addition to the four [slog] levels, [LevelTrace] sits below
// [LevelDebug]. It is used for per-expression tracing.
//
// # Output
//
// [FormatText] (the default) and [FormatJSON] are supported. With
// [WithPretty] enabled, records are colorized, and JSON records are
// indented across multiple lines.
//
// # Package Functions
//
// The package-level functions log through a default logger writing to
// standard error. [Config] reconfigures it. Context-unaware functions use
// [DefaultContextProvider], which returns [context.TODO].
package log
