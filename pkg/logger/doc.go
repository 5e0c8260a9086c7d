// Package logger builds the *slog.Logger used by the validator registry and
// provides attribute helpers that keep key names consistent across packages.
//
// New creates a JSON or text logger configured by functional options. Context
// extractors registered with WithContextValue or WithContextExtractors inject
// attributes from the context passed to the *Context logging methods, which is
// how a request id travelling with a validation call ends up in its log lines.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithContextValue("request_id", requestIDKey),
//	)
//	reg := validator.New(validator.WithLogger(log))
//
// Discard returns a logger that drops everything; the registry uses it when no
// logger is configured.
//
// Attribute helpers such as Validator, Alias and Error return an empty
// slog.Attr for empty input, so they can be passed unconditionally.
package logger
