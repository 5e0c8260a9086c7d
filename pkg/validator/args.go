package validator

import "maps"

// DefaultArgKeyName is the options key the compared argument is stored under.
const DefaultArgKeyName = "arg"

// DefaultOptionsMapper treats Options, map[string]any and ValidationError as
// option mappings. Slices, regular expressions, times and other values are
// compared arguments.
func DefaultOptionsMapper(v any) (Options, bool) {
	switch m := v.(type) {
	case Options:
		return m, true
	case map[string]any:
		return Options(m), true
	case ValidationError:
		return Options(m), true
	}
	return nil, false
}

type argMode int

const (
	modeDual argMode = iota
	modeOneOptions
	modeSimple
)

// normalized is the outcome of mapping positional call arguments.
type normalized struct {
	options Options
	extra   []any
}

// skipped reports values that never bind as the compared argument.
func skipped(v any) bool {
	if v == nil {
		return true
	}
	_, isBool := v.(bool)
	return isBool
}

// normalizeArgs maps (arg1, arg2, rest...) into options and extra positional
// arguments according to mode.
//
// In every mode a mapping arg1 becomes the options and the remaining arguments
// are extra. Otherwise a non-nil, non-bool arg1 is written to options[argKey].
// In the dual mode the following slot is the options slot: a mapping there is
// merged and any other value is consumed. The simple and one-options modes
// never take options from arg2, and the simple mode also keeps a non-mapping
// arg1 among the extra arguments.
func normalizeArgs(args []any, mode argMode, argKey string, mapper OptionsMapper) normalized {
	opts := Options{}
	if len(args) == 0 {
		return normalized{options: opts}
	}

	first, rest := args[0], args[1:]
	if m, ok := mapper(first); ok {
		maps.Copy(opts, m)
		return normalized{options: opts, extra: rest}
	}

	if !skipped(first) {
		opts[argKey] = first
	}

	if mode == modeSimple {
		return normalized{options: opts, extra: args}
	}
	if mode != modeDual || len(rest) == 0 {
		return normalized{options: opts, extra: rest}
	}

	if m, ok := mapper(rest[0]); ok {
		maps.Copy(opts, m)
	}
	return normalized{options: opts, extra: rest[1:]}
}

// mergeOptions layers option sets, later sets win.
func mergeOptions(layers ...Options) Options {
	out := Options{}
	for _, l := range layers {
		maps.Copy(out, l)
	}
	return out
}
