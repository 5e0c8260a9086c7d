package logger

import "log/slog"

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Validator records the executing validator name under "validator".
func Validator(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("validator", name)
}

// Alias records the alias a validator was reached through under "alias".
func Alias(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("alias", name)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count records a number of processed items under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}
