// Package validator provides a registry of named validation functions that can
// be combined directly, through aliases, or as ordered chains, and that always
// produce uniformly shaped error values no matter which calling convention the
// underlying function was written for.
//
// The package treats the concrete checks ("is email", "min length", ...) as
// opaque functions supplied by the caller. What it owns is the protocol around
// them: normalizing positional call arguments into a value plus an Options
// mapping, invoking the function with the convention it declares, converting
// panics into exceptions, unwrapping deferred results, and shaping any
// non-empty result into a ValidationError through an error format template.
//
// # Architecture
//
// A Registry maps names to *Entry values. Each entry holds an Impl, a sealed
// union of:
//   - ValueFunc: func(value) any
//   - Func: func(value, options) any
//   - ArgFunc: func(value, arg, options) any
//   - CallFunc: func(Call) any, receives the full invocation context
//   - Alias: forwards to another entry by name, resolved at call time
//   - Ref: an alias with preset options
//   - Chain: ordered steps, the first failing step wins
//
// Calls go through four stages: argument normalization, invocation, error
// shaping and message formatting. Message strings use %{key} placeholders,
// %%{key} renders a literal %{key}.
//
// # Usage
//
//	reg := validator.New()
//	reg.Add("min", validator.ArgFunc(func(value, arg any, _ validator.Options) any {
//	    if value.(int) < arg.(int) {
//	        return "must be at least %{arg}"
//	    }
//	    return nil
//	}))
//	reg.Add("atLeast", validator.Alias("min"))
//
//	verr, err := reg.Call(ctx, "atLeast", 3, 5)
//	// verr: {"error": "atLeast", "message": "must be at least 5", "arg": 5}
//
// # Error Handling
//
// Three outcomes are kept apart. A failing validation returns a non-nil
// ValidationError and a nil error. A panicking validator is converted into an
// *Exception; if an ExceptionHandler applies, its return value becomes the
// error value, otherwise the exception is returned as the error result.
// Calling an unknown name returns ErrUnknownValidator.
//
// # Concurrency
//
// The entry map is guarded by a read/write mutex, so validators may be added
// while others run. Configure swaps in an updated copy of an entry and is safe
// at any time. Mutating the *Entry returned by Entry directly is not
// synchronized and is expected to happen during setup.
package validator
