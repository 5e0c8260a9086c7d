package rules

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// oneOf requires value to be an element of arg, which must be a slice or array.
// options["caseInsensitive"] compares strings by their Unicode case folding.
func oneOf(value, arg any, opts validator.Options) any {
	allowed := mustList(OneOf, arg)
	if !contains(allowed, value, opts["caseInsensitive"] == true) {
		return failure("validation.in_list", fmt.Sprintf("must be one of: %s", join(allowed)), "values", allowed)
	}
	return nil
}

func noneOf(value, arg any, opts validator.Options) any {
	forbidden := mustList(NoneOf, arg)
	if contains(forbidden, value, opts["caseInsensitive"] == true) {
		return failure("validation.not_in_list", fmt.Sprintf("must not be one of: %s", join(forbidden)), "values", forbidden)
	}
	return nil
}

func mustList(rule string, arg any) []any {
	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		panic(errors.Newf("%s: expected a list, got %T", rule, arg))
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func contains(list []any, value any, foldCase bool) bool {
	s, isString := value.(string)
	fold := cases.Fold()
	if foldCase && isString {
		s = fold.String(s)
	}
	for _, item := range list {
		if foldCase && isString {
			if is, ok := item.(string); ok && fold.String(is) == s {
				return true
			}
			continue
		}
		if reflect.DeepEqual(item, value) {
			return true
		}
	}
	return false
}

func join(list []any) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, ", ")
}
