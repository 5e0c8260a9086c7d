package lookup

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/validatorkit/pkg/async"
	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// KeyFunc maps a validated value and its options to a store key.
type KeyFunc func(value any, opts validator.Options) string

// PrefixKey returns a KeyFunc producing prefix + the value. A "prefix"
// option overrides prefix per call.
func PrefixKey(prefix string) KeyFunc {
	return func(value any, opts validator.Options) string {
		p := prefix
		if s, ok := opts["prefix"].(string); ok {
			p = s
		}
		return p + fmt.Sprint(value)
	}
}

// probe reports whether the value is present in the store.
type probe func(ctx context.Context, value any, opts validator.Options) (bool, error)

// existsValidator fails when the probe reports the value absent.
func existsValidator(p probe) validator.CallFunc {
	return deferred(p, false, "lookup.not_found", "%{value} does not exist")
}

// uniqueValidator fails when the probe reports the value present.
func uniqueValidator(p probe) validator.CallFunc {
	return deferred(p, true, "lookup.taken", "%{value} is already taken")
}

// deferred runs p on its own goroutine and returns the future, which the
// registry awaits with the caller's context.
func deferred(p probe, failWhen bool, code, message string) validator.CallFunc {
	return func(c validator.Call) any {
		opts := c.Options
		return async.Async(c.Context, c.Value, func(ctx context.Context, value any) (any, error) {
			found, err := p(ctx, value, opts)
			if err != nil {
				return nil, mark(ErrLookupFailed, err)
			}
			if found == failWhen {
				return map[string]any{"message": message, "code": code}, nil
			}
			return nil, nil
		})
	}
}
