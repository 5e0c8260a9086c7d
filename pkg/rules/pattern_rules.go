package rules

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// pattern matches strings against arg, a *regexp.Regexp or a pattern string.
// options["description"] names the pattern in the message.
func pattern(value, arg any, opts validator.Options) any {
	re := mustRegexp(arg)

	description, _ := opts["description"].(string)
	if description == "" {
		description = re.String()
	}

	s, _ := value.(string)
	if strings.TrimSpace(s) == "" || !re.MatchString(s) {
		return failure("validation.regex_pattern", "must match "+description+" pattern", "pattern", re.String())
	}
	return nil
}

func mustRegexp(arg any) *regexp.Regexp {
	switch p := arg.(type) {
	case *regexp.Regexp:
		if p != nil {
			return p
		}
	case string:
		re, err := regexp.Compile(p)
		if err != nil {
			panic(errors.Wrap(err, Pattern))
		}
		return re
	}
	panic(errors.Newf("%s: expected a regular expression, got %T", Pattern, arg))
}
