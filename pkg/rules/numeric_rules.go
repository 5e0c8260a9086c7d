package rules

import (
	"fmt"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

func minNum(value, arg any, _ validator.Options) any {
	bound := mustBound(Min, arg)
	n, ok := toFloat(value)
	if !ok {
		return failure("validation.numeric", "must be a number")
	}
	if n < bound {
		return failure("validation.min", fmt.Sprintf("must be at least %v", arg), "min", arg)
	}
	return nil
}

func maxNum(value, arg any, _ validator.Options) any {
	bound := mustBound(Max, arg)
	n, ok := toFloat(value)
	if !ok {
		return failure("validation.numeric", "must be a number")
	}
	if n > bound {
		return failure("validation.max", fmt.Sprintf("must be at most %v", arg), "max", arg)
	}
	return nil
}
