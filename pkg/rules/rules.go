package rules

import "github.com/dmitrymomot/validatorkit/pkg/validator"

// Registered validator names.
const (
	Required     = "required"
	Min          = "min"
	Max          = "max"
	MinLength    = "minLength"
	MaxLength    = "maxLength"
	Length       = "length"
	Email        = "email"
	URL          = "url"
	Phone        = "phone"
	IP           = "ip"
	Alphanumeric = "alphanumeric"
	UUID         = "uuid"
	Pattern      = "pattern"
	OneOf        = "oneOf"
	NoneOf       = "noneOf"
)

// All returns the stock validators keyed by name.
func All() map[string]validator.Impl {
	return map[string]validator.Impl{
		Required:     validator.ValueFunc(required),
		Min:          validator.ArgFunc(minNum),
		Max:          validator.ArgFunc(maxNum),
		MinLength:    validator.ArgFunc(minLength),
		MaxLength:    validator.ArgFunc(maxLength),
		Length:       validator.ArgFunc(exactLength),
		Email:        validator.ValueFunc(email),
		URL:          validator.ValueFunc(validURL),
		Phone:        validator.ValueFunc(phone),
		IP:           validator.ValueFunc(ip),
		Alphanumeric: validator.ValueFunc(alphanumeric),
		UUID:         validator.ValueFunc(validUUID),
		Pattern:      validator.ArgFunc(pattern),
		OneOf:        validator.ArgFunc(oneOf),
		NoneOf:       validator.ArgFunc(noneOf),
	}
}

// Register adds every stock validator to reg with the shared params applied.
func Register(reg *validator.Registry, params ...validator.Params) *validator.Registry {
	return reg.AddAll(All(), params...)
}

// failure is the error object returned by every rule. code matches the
// translation keys used across the application.
func failure(code, message string, fields ...any) map[string]any {
	out := map[string]any{"message": message, "code": code}
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			out[k] = fields[i+1]
		}
	}
	return out
}
