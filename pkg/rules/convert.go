package rules

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// toFloat converts any Go number to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// lengthOf counts runes for strings and elements for collections.
func lengthOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}

// mustBound reads the comparison argument of a rule. A missing or
// non-numeric bound is a programming error and panics, which the registry
// reports as an exception.
func mustBound(rule string, arg any) float64 {
	f, ok := toFloat(arg)
	if !ok {
		panic(errors.Newf("%s: bound must be a number, got %T", rule, arg))
	}
	return f
}

// isBlank reports nil, whitespace-only strings, empty collections and zero scalars.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return rv.IsNil()
	case reflect.Struct:
		return false
	}
	return rv.IsZero()
}
