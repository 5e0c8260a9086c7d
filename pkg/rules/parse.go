package rules

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

var (
	dotsRegex     = regexp.MustCompile(`\.{2,}`)
	nonDigitRegex = regexp.MustCompile(`\D`)
	spacesRegex   = regexp.MustCompile(`\s+`)
)

// Parse functions for the "parse" option. They only touch strings and
// return other values unchanged.
//
//	reg.Call(ctx, rules.Email, input, validator.Options{"parse": rules.NormalizeEmail})
var (
	Trim = stringParser(strings.TrimSpace)

	Lower = stringParser(func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	})

	// CollapseSpaces trims and folds whitespace runs into one space.
	CollapseSpaces = stringParser(func(s string) string {
		return spacesRegex.ReplaceAllString(strings.TrimSpace(s), " ")
	})

	// NormalizeEmail lowercases and folds repeated dots in the local part.
	NormalizeEmail = stringParser(normalizeEmail)

	// Title capitalizes each word, for names. A Caser is not safe for
	// concurrent use, so one is built per call.
	Title = stringParser(func(s string) string {
		return cases.Title(language.Und).String(strings.TrimSpace(s))
	})

	// Digits keeps only the digits, for phone numbers and codes.
	Digits = stringParser(func(s string) string {
		return nonDigitRegex.ReplaceAllString(s, "")
	})
)

// Compose applies parse functions left to right.
func Compose(parsers ...validator.ParseFunc) validator.ParseFunc {
	return func(value any) any {
		for _, p := range parsers {
			value = p(value)
		}
		return value
	}
}

func stringParser(fn func(string) string) validator.ParseFunc {
	return func(value any) any {
		if s, ok := value.(string); ok {
			return fn(s)
		}
		return value
	}
}

func normalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}

	local = strings.Trim(dotsRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}
