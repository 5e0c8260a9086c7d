package rules

import (
	"fmt"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

func required(value any) any {
	if isBlank(value) {
		return failure("validation.required", "field is required")
	}
	return nil
}

func minLength(value, arg any, _ validator.Options) any {
	min := int(mustBound(MinLength, arg))
	n, ok := lengthOf(value)
	if !ok || n < min {
		return failure("validation.min_length", fmt.Sprintf("must be at least %d characters long", min), "min", min)
	}
	return nil
}

func maxLength(value, arg any, _ validator.Options) any {
	max := int(mustBound(MaxLength, arg))
	n, ok := lengthOf(value)
	if !ok || n > max {
		return failure("validation.max_length", fmt.Sprintf("must be at most %d characters long", max), "max", max)
	}
	return nil
}

func exactLength(value, arg any, _ validator.Options) any {
	exact := int(mustBound(Length, arg))
	n, ok := lengthOf(value)
	if !ok || n != exact {
		return failure("validation.exact_length", fmt.Sprintf("must be exactly %d characters long", exact), "length", exact)
	}
	return nil
}
