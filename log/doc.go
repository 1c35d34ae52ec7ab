// Package log provides leveled, structured logging on top of [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
//	logger.InfoContext(ctx, "namespace built", slog.Int("roots", 3))
//
// Attributes are always [slog.Attr] values. Values implementing
// [slog.LogValuer], such as the errors returned by this module's packages,
// are expanded into their groups.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Trace sits below slog's debug level and is
// printed as "TRACE".
//
// # Output
//
// Records are encoded as [FormatText] or [FormatJSON]. With [WithPretty]
// enabled (the default) both encodings are colorized when the output is a
// terminal, and JSON records are indented.
//
// # Package-level logger
//
// Functions such as [Info] and [DebugContext] log through a package-level
// logger writing to standard error; [Config] reconfigures it and [Default]
// returns it for injection into other packages.
package log
