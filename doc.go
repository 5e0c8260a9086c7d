// Package validatorkit composes named validation functions.
//
// Validators are registered by name on a registry and combined directly, by
// alias or as ordered chains. Every call goes through one argument
// normalization protocol and one template-driven error shaper, so callers get
// uniformly structured errors no matter how a validator was written.
//
// Packages:
//
//   - pkg/validator: the registry, argument normalizer, invocation wrapper and error shaper
//   - pkg/rules: stock validators (required, min, max, lengths, email, uuid, pattern, oneOf)
//   - pkg/catalog: aliases, chains and messages defined in YAML or JSON files
//   - pkg/lookup: Redis and PostgreSQL backed validators that resolve asynchronously
//   - pkg/async: the future type used for deferred results
//   - pkg/config: environment loading for validator.Config and store settings
//   - pkg/logger: slog construction and attribute helpers
//
// Basic usage:
//
//	reg := validator.New()
//	rules.Register(reg)
//	reg.Add("password", validator.Chain{
//		validator.Alias(rules.Required),
//		validator.Ref{Name: rules.MinLength, Options: validator.Options{"arg": 8}},
//	})
//
//	verr, err := reg.Call(ctx, "password", input)
//	if err != nil {
//		// unknown validator, invalid implementation or unhandled exception
//	}
//	if verr != nil {
//		// {error: "minLength", message: "must be at least 8 characters long", ...}
//	}
package validatorkit
