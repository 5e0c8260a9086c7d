package validator_test

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

func isEqual() validator.ArgFunc {
	return func(value, arg any, _ validator.Options) any {
		if value != arg {
			return "not equal"
		}
		return nil
	}
}

type fieldError struct{ field string }

func (e *fieldError) Error() string { return e.field + " is invalid" }

func alwaysInvalid() validator.ValueFunc {
	return func(any) any { return "invalid" }
}

func TestRegistry_Add(t *testing.T) {
	t.Run("registers a single validator", func(t *testing.T) {
		reg := validator.New()
		reg.Add("myValidator", validator.ValueFunc(func(value any) any {
			if value == nil {
				return "must be present"
			}
			return nil
		}))

		assert.True(t, reg.Has("myValidator"))
		assert.False(t, reg.Has("other"))
	})

	t.Run("registers a map of validators", func(t *testing.T) {
		reg := validator.New()
		reg.AddAll(map[string]validator.Impl{
			"validator2": alwaysInvalid(),
			"validator1": alwaysInvalid(),
		})

		assert.Equal(t, []string{"validator1", "validator2"}, reg.Names())
	})

	t.Run("load returns the registry for chaining", func(t *testing.T) {
		reg := validator.New()
		same := reg.Load(map[string]validator.Impl{"a": alwaysInvalid()}).
			Add("b", validator.Alias("a"))

		assert.Same(t, reg, same)
		assert.Equal(t, []string{"a", "b"}, reg.Names())
	})

	t.Run("re-adding a name replaces the entry", func(t *testing.T) {
		reg := validator.New()
		reg.Add("v", alwaysInvalid())
		reg.Add("v", validator.ValueFunc(func(any) any { return nil }))

		verr, err := reg.Call(context.Background(), "v", 1)
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("shared params are copied per entry", func(t *testing.T) {
		reg := validator.New()
		reg.AddAll(map[string]validator.Impl{
			"a": alwaysInvalid(),
			"b": alwaysInvalid(),
		}, validator.Params{DefaultOptions: validator.Options{"strict": true}})

		a, ok := reg.Entry("a")
		require.True(t, ok)
		a.DefaultOptions["strict"] = false

		b, ok := reg.Entry("b")
		require.True(t, ok)
		assert.Equal(t, true, b.DefaultOptions["strict"])
	})

	t.Run("remove deletes the entry", func(t *testing.T) {
		reg := validator.New()
		reg.Add("v", alwaysInvalid())
		reg.Remove("v")

		_, err := reg.Call(context.Background(), "v", 1)
		assert.ErrorIs(t, err, validator.ErrUnknownValidator)
	})
}

func TestRegistry_ErrorFormatFlags(t *testing.T) {
	ctx := context.Background()

	t.Run("options are echoed when $options is true", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual(), validator.Params{
			ErrorFormat: validator.Format{validator.FlagOptions: true},
		})

		verr, err := reg.Call(ctx, "isEqual", 1, 2, validator.Options{"strict": true})
		require.NoError(t, err)
		assert.Equal(t, true, verr["strict"])
		assert.Equal(t, 2, verr["arg"])

		verr, err = reg.Call(ctx, "isEqual", 1, 2, []any{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, validator.ValidationError{"arg": 2}, verr)
	})

	t.Run("options are not echoed when $options is false", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual(), validator.Params{
			ErrorFormat: validator.Format{validator.FlagOptions: false},
		})

		verr, err := reg.Call(ctx, "isEqual", 1, 2, validator.Options{"strict": true})
		require.NoError(t, err)
		require.NotNil(t, verr)
		assert.False(t, verr.Has("strict"))
		assert.False(t, verr.Has(validator.FlagOptions))
	})

	t.Run("origin fields are copied when $origin is true", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", validator.ArgFunc(func(value, arg any, _ validator.Options) any {
			if value != arg {
				return map[string]any{"text": "not equal"}
			}
			return nil
		}), validator.Params{ErrorFormat: validator.Format{validator.FlagOrigin: true}})

		verr, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "not equal", verr["text"])
		assert.False(t, verr.Has(validator.FlagOrigin))
	})

	t.Run("origin fields are dropped when $origin is false", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", validator.ArgFunc(func(value, arg any, _ validator.Options) any {
			if value != arg {
				return map[string]any{"text": "not equal"}
			}
			return nil
		}), validator.Params{ErrorFormat: validator.Format{validator.FlagOrigin: false}})

		verr, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		require.NotNil(t, verr)
		assert.False(t, verr.Has("text"))
	})

	t.Run("function and message options are never echoed", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual())

		verr, err := reg.Call(ctx, "isEqual", 1, 2, validator.Options{
			"parse":        func(v any) any { return v },
			"errorMessage": "ignored",
			"field":        "age",
		})
		require.NoError(t, err)
		assert.Equal(t, "age", verr["field"])
		assert.False(t, verr.Has("parse"))
		assert.False(t, verr.Has("errorMessage"))
	})

	t.Run("disabled format returns the message object", func(t *testing.T) {
		reg := validator.New(validator.WithoutErrorFormat())
		reg.Add("isEqual", isEqual())

		verr, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, validator.ValidationError{"message": "not equal"}, verr)
	})

	t.Run("entry format can be changed after registration", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual())

		entry, ok := reg.Entry("isEqual")
		require.True(t, ok)
		entry.ErrorFormat = validator.Format{"code": "%{validator}.failed", "text": "%{message}"}

		verr, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, validator.ValidationError{"code": "isEqual.failed", "text": "not equal"}, verr)
	})
}

func TestRegistry_Call(t *testing.T) {
	ctx := context.Background()

	t.Run("validates with a compared argument", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual())

		valid, err := reg.Call(ctx, "isEqual", 1, 1)
		require.NoError(t, err)
		assert.Nil(t, valid)

		invalid, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "not equal", invalid.Message())
		assert.Equal(t, "isEqual", invalid.Validator())
		assert.Equal(t, 2, invalid["arg"])
		assert.EqualError(t, invalid, "isEqual: not equal")
	})

	t.Run("options are always a mapping", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", validator.Func(func(_ any, opts validator.Options) any {
			if opts == nil {
				return "invalid"
			}
			return nil
		}))

		for _, args := range [][]any{nil, {nil}, {true}, {false}, {validator.Options{}}} {
			verr, err := reg.Call(ctx, "isValid", 1, args...)
			require.NoError(t, err)
			assert.Nil(t, verr, "args %v", args)
		}
	})

	t.Run("non-mapping values bind as the argument", func(t *testing.T) {
		reg := validator.New()
		var got validator.Call
		reg.Add("isValid", validator.CallFunc(func(c validator.Call) any {
			got = c
			return nil
		}))

		for _, arg := range []any{0, "", []any{}, regexp.MustCompile("re")} {
			_, err := reg.Call(ctx, "isValid", 1, arg)
			require.NoError(t, err)
			assert.True(t, got.HasArg, "arg %v", arg)
			assert.Equal(t, arg, got.Arg)
			assert.Len(t, got.Options, 1)
		}
	})

	t.Run("nil and bool arguments do not bind", func(t *testing.T) {
		reg := validator.New()
		var got validator.Call
		reg.Add("isValid", validator.CallFunc(func(c validator.Call) any {
			got = c
			return nil
		}))

		_, err := reg.Call(ctx, "isValid", 1, nil)
		require.NoError(t, err)
		assert.False(t, got.HasArg)

		_, err = reg.Call(ctx, "isValid", 1, true, validator.Options{"strict": true})
		require.NoError(t, err)
		assert.False(t, got.HasArg)
		assert.Equal(t, true, got.Options["strict"])
	})

	t.Run("mapping argument never sets arg", func(t *testing.T) {
		reg := validator.New()
		var got validator.Options
		reg.Add("isValid", validator.Func(func(_ any, opts validator.Options) any {
			got = opts
			return nil
		}))

		_, err := reg.Call(ctx, "isValid", 1, map[string]any{"foo": 1})
		require.NoError(t, err)
		assert.Equal(t, validator.Options{"foo": 1}, got)
	})

	t.Run("arg is written to options", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", validator.ArgFunc(func(_, _ any, opts validator.Options) any {
			if opts["arg"] != 2 {
				return "invalid"
			}
			return nil
		}))

		verr, err := reg.Call(ctx, "isValid", 1, 2)
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("placeholders see value, arg and options", func(t *testing.T) {
		reg := validator.New()
		reg.Add("value", validator.ValueFunc(func(any) any { return "%{value}" }))
		reg.Add("arg", validator.ValueFunc(func(any) any { return "%{arg}" }))
		reg.Add("option", validator.ValueFunc(func(any) any { return "%{myOption}" }))

		verr, err := reg.Call(ctx, "value", 1)
		require.NoError(t, err)
		assert.Equal(t, "1", verr.Message())

		verr, err = reg.Call(ctx, "arg", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "2", verr.Message())

		verr, err = reg.Call(ctx, "option", 1, validator.Options{"myOption": 3})
		require.NoError(t, err)
		assert.Equal(t, "3", verr.Message())
	})

	t.Run("parse prepares the value", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual())

		increment := validator.ParseFunc(func(v any) any { return v.(int) + 1 })
		verr, err := reg.Call(ctx, "isEqual", 1, 2, validator.Options{"parse": increment})
		require.NoError(t, err)
		assert.Nil(t, verr)

		verr, err = reg.Call(ctx, "isEqual", 1, 2, validator.Options{"parse": func(v any) any { return v.(int) + 1 }})
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("validators can call the registry", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", alwaysInvalid())
		reg.Add("myValidator", validator.CallFunc(func(c validator.Call) any {
			verr, err := c.Registry.Call(c.Context, "isValid", c.Value)
			if err != nil {
				panic(err)
			}
			return verr
		}))

		verr, err := reg.Call(ctx, "myValidator", 1)
		require.NoError(t, err)
		assert.Equal(t, "isValid", verr.Validator())
		assert.Equal(t, "invalid", verr.Message())
	})

	t.Run("validator returning an error uses its text", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", validator.ValueFunc(func(any) any { return errors.New("broken value") }))

		verr, err := reg.Call(ctx, "isValid", 1)
		require.NoError(t, err)
		assert.Equal(t, "broken value", verr.Message())
	})

	t.Run("unknown validator", func(t *testing.T) {
		reg := validator.New()

		verr, err := reg.Call(ctx, "missing", 1)
		assert.Nil(t, verr)
		assert.ErrorIs(t, err, validator.ErrUnknownValidator)
		assert.Contains(t, err.Error(), `"missing"`)
	})

	t.Run("nil function", func(t *testing.T) {
		reg := validator.New()
		reg.Add("broken", validator.ValueFunc(nil))

		_, err := reg.Call(ctx, "broken", 1)
		assert.ErrorIs(t, err, validator.ErrInvalidImplementation)
	})
}

func TestRegistry_Aliases(t *testing.T) {
	ctx := context.Background()

	t.Run("alias reports its own name", func(t *testing.T) {
		reg := validator.New()
		reg.Add("valid", validator.Alias("isValid"))
		reg.Add("isValid", alwaysInvalid())

		verr, err := reg.Call(ctx, "valid", nil)
		require.NoError(t, err)
		assert.Equal(t, "valid", verr.Validator())
		assert.Equal(t, "invalid", verr.Message())
	})

	t.Run("alias follows redefinition of its target", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", alwaysInvalid())
		reg.Add("valid", validator.Alias("isValid"))
		reg.Add("isValid", validator.ValueFunc(func(any) any { return "changed" }))

		verr, err := reg.Call(ctx, "valid", nil)
		require.NoError(t, err)
		assert.Equal(t, "changed", verr.Message())
	})

	t.Run("alias metadata applies", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual())
		reg.Add("same", validator.Alias("isEqual"), validator.Params{
			Message:        "%{value} differs from %{arg}",
			DefaultOptions: validator.Options{"field": "password"},
		})

		verr, err := reg.Call(ctx, "same", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "same", verr.Validator())
		assert.Equal(t, "1 differs from 2", verr.Message())
		assert.Equal(t, "password", verr["field"])
	})

	t.Run("ref presets options", func(t *testing.T) {
		reg := validator.New()
		reg.Add("strict", validator.Func(func(_ any, opts validator.Options) any {
			if opts["strict"] == true {
				return "strict mode"
			}
			return nil
		}))
		reg.Add("strictly", validator.Ref{Name: "strict", Options: validator.Options{"strict": true}})

		verr, err := reg.Call(ctx, "strictly", 1)
		require.NoError(t, err)
		assert.Equal(t, "strictly", verr.Validator())

		verr, err = reg.Call(ctx, "strictly", 1, validator.Options{"strict": false})
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("alias to unknown target", func(t *testing.T) {
		reg := validator.New()
		reg.Add("valid", validator.Alias("missing"))

		_, err := reg.Call(ctx, "valid", 1)
		assert.ErrorIs(t, err, validator.ErrUnknownValidator)
	})
}

func TestRegistry_Chains(t *testing.T) {
	ctx := context.Background()

	t.Run("chain reports the failing alias", func(t *testing.T) {
		reg := validator.New()
		reg.AddAll(map[string]validator.Impl{
			"isValid": alwaysInvalid(),
			"valid":   validator.Alias("isValid"),
			"myValidator": validator.Chain{
				validator.Alias("valid"),
				validator.ValueFunc(func(any) any { return "OK" }),
			},
		})

		verr, err := reg.Call(ctx, "myValidator", nil)
		require.NoError(t, err)
		assert.Equal(t, "valid", verr.Validator())
		assert.Equal(t, "invalid", verr.Message())
	})

	t.Run("first failure short-circuits", func(t *testing.T) {
		reg := validator.New()
		secondRan := false
		reg.Add("chain", validator.Chain{
			validator.ValueFunc(func(any) any { return "first failed" }),
			validator.ValueFunc(func(any) any {
				secondRan = true
				return "second failed"
			}),
		})

		verr, err := reg.Call(ctx, "chain", 1)
		require.NoError(t, err)
		assert.False(t, secondRan)
		assert.Equal(t, "first failed", verr.Message())
		assert.Equal(t, "chain", verr.Validator())
	})

	t.Run("all steps passing means valid", func(t *testing.T) {
		reg := validator.New()
		pass := validator.ValueFunc(func(any) any { return nil })
		reg.Add("chain", validator.Chain{pass, pass, validator.Chain{pass}})

		verr, err := reg.Call(ctx, "chain", 1)
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("ref steps with options", func(t *testing.T) {
		reg := validator.New()
		reg.AddAll(map[string]validator.Impl{
			"isValid": validator.Func(func(_ any, opts validator.Options) any {
				if opts["strict"] == true {
					return "invalid"
				}
				return nil
			}),
			"valid": validator.Alias("isValid"),
			"myValidator": validator.Chain{
				validator.Ref{Name: "valid", Options: validator.Options{"strict": true}},
				validator.ValueFunc(func(any) any { return "OK" }),
			},
		})

		verr, err := reg.Call(ctx, "myValidator", nil)
		require.NoError(t, err)
		assert.Equal(t, "valid", verr.Validator())
		assert.Equal(t, "invalid", verr.Message())
	})

	t.Run("ref steps with options and arg", func(t *testing.T) {
		reg := validator.New()
		reg.AddAll(map[string]validator.Impl{
			"isValid": validator.ArgFunc(func(_, _ any, opts validator.Options) any {
				if opts["strict"] == true {
					return "invalid"
				}
				return nil
			}),
			"valid": validator.Alias("isValid"),
			"myValidator": validator.Chain{
				validator.Ref{Name: "valid", Options: validator.Options{"strict": true}},
				validator.ValueFunc(func(any) any { return "OK" }),
			},
		})

		verr, err := reg.Call(ctx, "myValidator", nil, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, "valid", verr.Validator())
		assert.Equal(t, 1, verr["arg"])
	})

	t.Run("chain reached through an alias reports the alias", func(t *testing.T) {
		reg := validator.New()
		reg.Add("chain", validator.Chain{alwaysInvalid()})
		reg.Add("checked", validator.Alias("chain"))

		verr, err := reg.Call(ctx, "checked", 1)
		require.NoError(t, err)
		assert.Equal(t, "checked", verr.Validator())
	})
}

func TestRegistry_Messages(t *testing.T) {
	ctx := context.Background()

	t.Run("error object fields override the template", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", validator.ValueFunc(func(any) any {
			return map[string]any{"error": "errorKey", "message": "validatorMessage"}
		}))

		verr, err := reg.Call(ctx, "isValid", 1)
		require.NoError(t, err)
		assert.Equal(t, "errorKey", verr.Validator())
		assert.Equal(t, "validatorMessage", verr.Message())
	})

	t.Run("message option overrides a string", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", validator.ValueFunc(func(any) any { return "validatorMessage" }))

		verr, err := reg.Call(ctx, "isValid", 1, validator.Options{"message": "overriddenMessage"})
		require.NoError(t, err)
		assert.Equal(t, "overriddenMessage", verr.Message())
	})

	t.Run("message option overrides an object", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isValid", validator.ValueFunc(func(any) any {
			return map[string]any{"error": "errorKey", "message": "validatorMessage"}
		}))

		verr, err := reg.Call(ctx, "isValid", 1, validator.Options{"message": "overriddenMessage"})
		require.NoError(t, err)
		assert.Equal(t, "isValid", verr.Validator())
		assert.Equal(t, "overriddenMessage", verr.Message())
	})

	t.Run("override message sees error object fields", func(t *testing.T) {
		reg := validator.New()
		reg.Add("min", validator.ArgFunc(func(value, arg any, _ validator.Options) any {
			if value.(int) < arg.(int) {
				return map[string]any{"message": "Error", "smth": "X"}
			}
			return nil
		}))

		verr, err := reg.Call(ctx, "min", 4, 5, validator.Options{"message": "Error %{smth}"})
		require.NoError(t, err)
		assert.Equal(t, "Error X", verr.Message())
	})

	t.Run("entry message and message functions", func(t *testing.T) {
		reg := validator.New()
		reg.Add("isEqual", isEqual(), validator.Params{
			Message: validator.MessageFunc(func(value any, values map[string]any) any {
				return "expected %{arg}, got %{value}"
			}),
		})

		verr, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "expected 2, got 1", verr.Message())
	})

	t.Run("result handler inverts boolean validators", func(t *testing.T) {
		reg := validator.New()
		reg.AddAll(map[string]validator.Impl{
			"exist": validator.ValueFunc(func(value any) any { return value != nil }),
		}, validator.Params{
			ResultHandler: func(result any) any {
				if result == false {
					return "%{value} is not %{validator}"
				}
				return nil
			},
		})

		verr, err := reg.Call(ctx, "exist", nil)
		require.NoError(t, err)
		assert.Equal(t, "exist", verr.Validator())
		assert.Equal(t, "null is not exist", verr.Message())

		verr, err = reg.Call(ctx, "exist", "here")
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("registry result handler", func(t *testing.T) {
		reg := validator.New(validator.WithResultHandler(func(result any) any {
			if result == false {
				return "failed"
			}
			return nil
		}))
		reg.Add("positive", validator.ValueFunc(func(value any) any { return value.(int) > 0 }))

		verr, err := reg.Call(ctx, "positive", -1)
		require.NoError(t, err)
		assert.Equal(t, "failed", verr.Message())
	})
}

func TestRegistry_Exceptions(t *testing.T) {
	ctx := context.Background()
	minLength := validator.ArgFunc(func(value, arg any, _ validator.Options) any {
		if len(value.(string)) < arg.(int) {
			return "too short"
		}
		return nil
	})

	t.Run("exception handler turns a panic into a message", func(t *testing.T) {
		reg := validator.New()
		reg.Add("minLength", minLength, validator.Params{
			ExceptionHandler: func(err error) any { return err },
		})

		verr, err := reg.Call(ctx, "minLength", nil, 5)
		require.NoError(t, err)
		assert.Equal(t, "minLength", verr.Validator())
		assert.Contains(t, verr.Message(), "interface conversion")
	})

	t.Run("handler returning nil reports valid", func(t *testing.T) {
		reg := validator.New()
		reg.Add("minLength", minLength, validator.Params{
			ExceptionHandler: func(error) any { return nil },
		})

		verr, err := reg.Call(ctx, "minLength", nil, 5)
		require.NoError(t, err)
		assert.Nil(t, verr)
	})

	t.Run("without a handler the exception is returned", func(t *testing.T) {
		reg := validator.New()
		reg.Add("minLength", minLength)

		verr, err := reg.Call(ctx, "minLength", nil, 5)
		assert.Nil(t, verr)
		require.Error(t, err)
		assert.True(t, validator.IsException(err))

		var exc *validator.Exception
		require.ErrorAs(t, err, &exc)
		assert.Equal(t, "minLength", exc.Validator)
	})

	t.Run("propagate opts out of the registry handler", func(t *testing.T) {
		reg := validator.New(validator.WithExceptionHandler(func(err error) any { return err }))
		reg.Add("minLength", minLength)
		reg.Add("maxLength", minLength, validator.Params{PropagateExceptions: true})

		verr, err := reg.Call(ctx, "minLength", nil, 5)
		require.NoError(t, err)
		assert.NotNil(t, verr)

		_, err = reg.Call(ctx, "maxLength", nil, 5)
		assert.True(t, validator.IsException(err))
	})

	t.Run("typed nil error pointer is valid", func(t *testing.T) {
		reg := validator.New(validator.WithExceptionHandler(func(err error) any { return err }))
		reg.Add("check", validator.ValueFunc(func(value any) any {
			var ferr *fieldError
			if value != "good" {
				ferr = &fieldError{field: "name"}
			}
			return ferr
		}))

		var (
			verr validator.ValidationError
			err  error
		)
		require.NotPanics(t, func() {
			verr, err = reg.Call(ctx, "check", "good")
		})
		require.NoError(t, err)
		assert.Nil(t, verr)

		verr, err = reg.Call(ctx, "check", "bad")
		require.NoError(t, err)
		assert.Equal(t, "name is invalid", verr.Message())
	})

	t.Run("panicking formatter is an exception", func(t *testing.T) {
		reg := validator.New(validator.WithFormatMessage(func(any, map[string]any) any {
			panic("formatter broke")
		}))
		reg.Add("invalid", alwaysInvalid())

		var (
			verr validator.ValidationError
			err  error
		)
		require.NotPanics(t, func() {
			verr, err = reg.Call(ctx, "invalid", 1)
		})
		assert.Nil(t, verr)
		require.Error(t, err)
		assert.True(t, validator.IsException(err))
		assert.Contains(t, err.Error(), "formatter broke")
	})

	t.Run("panics with non-error values", func(t *testing.T) {
		reg := validator.New()
		reg.Add("boom", validator.ValueFunc(func(any) any { panic("boom") }))

		_, err := reg.Call(ctx, "boom", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestValidator_Curry(t *testing.T) {
	reg := validator.New()
	reg.Add("min", validator.ArgFunc(func(value, arg any, _ validator.Options) any {
		if value.(int) < arg.(int) {
			return "Error"
		}
		return nil
	}))

	minFive := reg.Validator("min").Curry(5)

	verr, err := minFive(context.Background(), 6)
	require.NoError(t, err)
	assert.Nil(t, verr)

	verr, err = minFive(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Error", verr.Message())
	assert.Equal(t, "min", reg.Validator("min").Name())
}

func TestRegistry_ArgModes(t *testing.T) {
	ctx := context.Background()

	t.Run("simple arguments format", func(t *testing.T) {
		reg := validator.New()
		reg.Add("min", validator.CallFunc(func(c validator.Call) any {
			for _, extra := range c.Extra {
				if settings, ok := extra.(validator.Options); ok && settings["showError"] == true {
					return "Error %{arg}"
				}
			}
			return nil
		}), validator.Params{SimpleArgsFormat: true})

		settings := validator.Options{"showError": true}
		err1, err := reg.Call(ctx, "min", 4, 5, settings)
		require.NoError(t, err)
		err2, err := reg.Call(ctx, "min", 4, validator.Options{"v": 5}, settings)
		require.NoError(t, err)
		err3, err := reg.Call(ctx, "min", 4, validator.Options{"arg": 5, "v": 2}, settings)
		require.NoError(t, err)

		assert.Equal(t, "Error 5", err1.Message())
		assert.Equal(t, "Error undefined", err2.Message())
		assert.Equal(t, "Error 5", err3.Message())
		assert.False(t, err1.Has("showError"))
		assert.False(t, err2.Has("showError"))
		assert.False(t, err3.Has("showError"))
	})

	t.Run("simple arguments keep the compared value positional", func(t *testing.T) {
		reg := validator.New(validator.WithSimpleArgsFormat())
		var got validator.Call
		reg.Add("v", validator.CallFunc(func(c validator.Call) any {
			got = c
			return nil
		}))

		settings := validator.Options{"showError": true}
		_, err := reg.Call(ctx, "v", 1, 5, settings)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Arg)
		assert.Equal(t, []any{5, settings}, got.Extra)
	})

	t.Run("one options argument", func(t *testing.T) {
		reg := validator.New(validator.WithOneOptionsArg())
		var got validator.Call
		reg.Add("v", validator.CallFunc(func(c validator.Call) any {
			got = c
			return nil
		}))

		_, err := reg.Call(ctx, "v", 1, 2, validator.Options{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, validator.Options{"arg": 2}, got.Options)
		assert.Equal(t, []any{validator.Options{"x": 1}}, got.Extra)
	})

	t.Run("extra positional arguments pass through", func(t *testing.T) {
		reg := validator.New()
		var got validator.Call
		reg.Add("v", validator.CallFunc(func(c validator.Call) any {
			got = c
			return nil
		}))

		_, err := reg.Call(ctx, "v", 1, validator.Options{}, 3, 4)
		require.NoError(t, err)
		assert.Equal(t, []any{3, 4}, got.Extra)
		assert.False(t, got.HasArg)

		_, err = reg.Call(ctx, "v", 1, 2, nil, 4)
		require.NoError(t, err)
		assert.Equal(t, validator.Options{"arg": 2}, got.Options)
		assert.Equal(t, []any{4}, got.Extra)
	})

	t.Run("custom arg key names", func(t *testing.T) {
		reg := validator.New(validator.WithArgKeyName("comparedValue"))
		reg.Add("isEqual", isEqual())
		reg.Add("isSame", isEqual(), validator.Params{ArgKeyName: "other"})

		verr, err := reg.Call(ctx, "isEqual", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, verr["comparedValue"])
		assert.Equal(t, "comparedValue", reg.ArgKeyName())

		verr, err = reg.Call(ctx, "isSame", 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, verr["other"])
	})

	t.Run("default options layering", func(t *testing.T) {
		reg := validator.New(validator.WithDefaultOptions(validator.Options{"a": 1, "b": 1, "c": 1, "d": 1}))
		var got validator.Options
		reg.Add("target", validator.Func(func(_ any, opts validator.Options) any {
			got = opts
			return nil
		}), validator.Params{DefaultOptions: validator.Options{"b": 2, "c": 2, "d": 2}})
		reg.Add("alias", validator.Alias("target"), validator.Params{DefaultOptions: validator.Options{"c": 3, "d": 3}})

		_, err := reg.Call(ctx, "alias", nil, validator.Options{"d": 4})
		require.NoError(t, err)
		assert.Equal(t, validator.Options{"a": 1, "b": 2, "c": 3, "d": 4}, got)
	})

	t.Run("custom options mapper", func(t *testing.T) {
		type settings struct{ Strict bool }
		reg := validator.New(validator.WithOptionsMapper(func(v any) (validator.Options, bool) {
			if s, ok := v.(settings); ok {
				return validator.Options{"strict": s.Strict}, true
			}
			return validator.DefaultOptionsMapper(v)
		}))
		var got validator.Call
		reg.Add("v", validator.CallFunc(func(c validator.Call) any {
			got = c
			return nil
		}))

		_, err := reg.Call(ctx, "v", 1, settings{Strict: true})
		require.NoError(t, err)
		assert.False(t, got.HasArg)
		assert.Equal(t, true, got.Options["strict"])
	})
}

func TestRegistry_Util(t *testing.T) {
	util := map[string]any{"trim": true}
	reg := validator.New(validator.WithUtil(util))
	assert.Equal(t, util, reg.Util())
}

func TestRegistry_ConcurrentAddAndCall(t *testing.T) {
	reg := validator.New()
	reg.Add("isEqual", isEqual())

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := reg.Call(context.Background(), "isEqual", i, i)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			reg.Add("isEqual", isEqual())
		}()
	}
	wg.Wait()
}

func TestRegistry_Configure(t *testing.T) {
	ctx := context.Background()
	reg := validator.New()
	reg.Add("isEqual", isEqual(), validator.Params{DefaultOptions: validator.Options{"field": "a"}})

	err := reg.Configure("isEqual", validator.Params{
		Message:        "%{field} mismatch",
		DefaultOptions: validator.Options{"scope": "form"},
	})
	require.NoError(t, err)

	verr, err := reg.Call(ctx, "isEqual", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "a mismatch", verr.Message())
	assert.Equal(t, "form", verr["scope"])

	before, ok := reg.Entry("isEqual")
	require.True(t, ok)
	require.NoError(t, reg.Configure("isEqual", validator.Params{ArgKeyName: "expected"}))
	assert.Equal(t, "", before.ArgKeyName)

	after, ok := reg.Entry("isEqual")
	require.True(t, ok)
	assert.Equal(t, "expected", after.ArgKeyName)
	assert.Equal(t, "%{field} mismatch", after.Message)

	err = reg.Configure("missing", validator.Params{})
	assert.ErrorIs(t, err, validator.ErrUnknownValidator)
}
