// Package rules provides stock validators for a validator.Registry.
//
// Register adds them all under the names exported as constants:
//
//	reg := validator.New()
//	rules.Register(reg)
//
//	verr, err := reg.Call(ctx, rules.MinLength, "abc", 5)
//	// verr: {error: "minLength", message: "must be at least 5 characters long",
//	//        code: "validation.min_length", min: 5, arg: 5}
//
// Every failure carries a "code" field with a translation key
// (validation.required, validation.email, ...) next to the English message,
// so callers can localize errors without parsing messages.
//
// Rules that compare against an argument (min, max, minLength, maxLength,
// length, pattern, oneOf, noneOf) panic when the argument is missing or of
// the wrong type. The registry reports this as an exception, not as a
// validation failure.
package rules
