package validator

import (
	"fmt"
	"maps"
	"reflect"
	"regexp"
)

// Reserved format flags. They control shaping and never appear in the output.
const (
	// FlagOptions copies call options into the shaped error.
	FlagOptions = "$options"
	// FlagOrigin copies the fields of the validator's own error object into the shaped error.
	FlagOrigin = "$origin"
)

// Format is an error format template. String entries are placeholder patterns
// expanded against {validator, value} + options + the formatted error.
type Format map[string]any

// DefaultErrorFormat returns a fresh copy of the registry default format.
func DefaultErrorFormat() Format {
	return Format{
		"error":     "%{validator}",
		"message":   "%{message}",
		FlagOptions: true,
		FlagOrigin:  true,
	}
}

// Flag reports whether a reserved flag is set.
func (f Format) Flag(name string) bool {
	b, _ := f[name].(bool)
	return b
}

// literals returns a copy without the reserved flags.
func (f Format) literals() Format {
	out := make(Format, len(f))
	for k, v := range f {
		if k == FlagOptions || k == FlagOrigin {
			continue
		}
		out[k] = v
	}
	return out
}

// messageKeyRegexp matches option keys that are never echoed into errors.
var messageKeyRegexp = regexp.MustCompile(`(?i)message`)

// shaping carries what the shaper needs from one invocation.
type shaping struct {
	entry   *Entry
	via     *Entry
	name    string
	value   any
	options Options
}

// shape turns a non-empty raw error value into a ValidationError.
func (r *Registry) shape(s shaping, raw any) ValidationError {
	raw = normalizeRaw(raw)

	values := map[string]any{"validator": s.name, "value": s.value}
	maps.Copy(values, s.options)

	formatted := r.FormatMessage(raw, values)

	if override := r.messageOverride(s); override != nil {
		overrideValues := values
		if origin, ok := asMap(formatted); ok {
			overrideValues = maps.Clone(values)
			maps.Copy(overrideValues, origin)
		}
		formatted = r.FormatMessage(override, overrideValues)
	}

	errObj := toErrorObject(formatted)

	format := r.resolveFormat(s)
	if format == nil {
		return ValidationError(errObj)
	}

	tmpl := format.literals()
	if format.Flag(FlagOptions) {
		for k, v := range s.options {
			if messageKeyRegexp.MatchString(k) || isFunc(v) {
				continue
			}
			tmpl[k] = v
		}
	}
	if format.Flag(FlagOrigin) {
		maps.Copy(tmpl, errObj)
	}

	final := maps.Clone(values)
	maps.Copy(final, errObj)

	out := toErrorObject(r.FormatMessage(map[string]any(tmpl), final))
	if len(out) == 0 && len(tmpl) > 0 {
		out = tmpl
	}
	return ValidationError(out)
}

// messageOverride picks options["message"], then the entry message, then the alias message.
func (r *Registry) messageOverride(s shaping) any {
	if m, ok := s.options["message"]; ok && !isEmpty(m) {
		return m
	}
	if s.entry.Message != nil {
		return s.entry.Message
	}
	if s.via != nil && s.via.Message != nil {
		return s.via.Message
	}
	return nil
}

// resolveFormat picks the entry format, then the alias format, then the registry default.
func (r *Registry) resolveFormat(s shaping) Format {
	if s.entry.ErrorFormat != nil {
		return s.entry.ErrorFormat
	}
	if s.via != nil && s.via.ErrorFormat != nil {
		return s.via.ErrorFormat
	}
	return r.errorFormat
}

// normalizeRaw converts Go-specific result shapes into message values.
func normalizeRaw(raw any) any {
	if isNilPointer(raw) {
		return ""
	}

	switch v := raw.(type) {
	case error:
		if m, ok := asMap(v); ok {
			return m
		}
		return v.Error()
	case string, MessageFunc, func(any, map[string]any) any:
		return v
	}
	if _, ok := asMap(raw); ok {
		return raw
	}
	return fmt.Sprint(raw)
}

func toErrorObject(formatted any) map[string]any {
	switch v := formatted.(type) {
	case string:
		return map[string]any{"message": v}
	case nil:
		return map[string]any{}
	}
	if m, ok := asMap(formatted); ok {
		return m
	}
	if m, ok := stringKeyed(formatted); ok {
		return m
	}
	return map[string]any{"message": fmt.Sprint(formatted)}
}

// stringKeyed copies any map with string keys, such as map[string]string
// from a custom formatter, into a map[string]any.
func stringKeyed(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// isNilPointer reports a typed nil pointer, such as a nil *MyErr returned as any.
func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// isEmpty is the "valid" test applied to handler-processed results.
func isEmpty(v any) bool {
	if isNilPointer(v) {
		return true
	}

	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case error:
		if m, ok := asMap(x); ok {
			return len(m) == 0
		}
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	}
	return false
}
