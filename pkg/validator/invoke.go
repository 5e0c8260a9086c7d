package validator

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/dmitrymomot/validatorkit/pkg/logger"
)

// callNamed resolves name and runs its implementation. via is the alias the
// call arrived through, preset the options of an enclosing Ref.
func (r *Registry) callNamed(ctx context.Context, name string, via *Entry, preset Options, value any, args []any) (ValidationError, error) {
	entry, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.run(ctx, entry, entry.Impl, via, preset, value, args)
}

func (r *Registry) run(ctx context.Context, entry *Entry, impl Impl, via *Entry, preset Options, value any, args []any) (ValidationError, error) {
	switch im := impl.(type) {
	case Alias:
		// Alias entries always report their own name.
		return r.callNamed(ctx, string(im), entry, preset, value, args)

	case Ref:
		return r.callNamed(ctx, im.Name, entry, mergeOptions(im.Options, preset), value, args)

	case Chain:
		return r.runChain(ctx, entry, im, via, preset, value, args)

	case ValueFunc, Func, ArgFunc, CallFunc:
		if isEmpty(im) {
			return nil, errors.Wrapf(ErrInvalidImplementation, "%q has a nil function", entry.Name)
		}
		return r.invoke(ctx, entry, im, via, preset, value, args)
	}

	return nil, errors.Wrapf(ErrInvalidImplementation, "%q: %T", entry.Name, impl)
}

// runChain evaluates steps left to right and stops at the first error.
// Function steps run with the chain entry's metadata. Named steps run their
// own entry and keep reporting the alias the chain was reached through.
func (r *Registry) runChain(ctx context.Context, entry *Entry, chain Chain, via *Entry, preset Options, value any, args []any) (ValidationError, error) {
	for _, step := range chain {
		var (
			verr ValidationError
			err  error
		)

		switch st := step.(type) {
		case Alias:
			verr, err = r.callNamed(ctx, string(st), via, preset, value, args)
		case Ref:
			verr, err = r.callNamed(ctx, st.Name, via, mergeOptions(st.Options, preset), value, args)
		default:
			verr, err = r.run(ctx, entry, step, via, preset, value, args)
		}

		if err != nil {
			return nil, err
		}
		if verr != nil {
			return verr, nil
		}
	}
	return nil, nil
}

// invoke normalizes arguments, runs fn and shapes a non-empty result.
func (r *Registry) invoke(ctx context.Context, entry *Entry, fn Impl, via *Entry, preset Options, value any, args []any) (ValidationError, error) {
	argKey := r.argKeyFor(entry, via)
	norm := normalizeArgs(args, r.modeFor(entry, via), argKey, r.optionsMapper)

	var viaDefaults Options
	if via != nil {
		viaDefaults = via.DefaultOptions
	}
	opts := mergeOptions(r.defaultOptions, entry.DefaultOptions, viaDefaults, preset, norm.options)

	if parse := parseFunc(opts["parse"]); parse != nil {
		value = parse(value)
	}

	arg, hasArg := opts[argKey]
	call := Call{
		Context:  ctx,
		Registry: r,
		Name:     entry.Name,
		Value:    value,
		Arg:      arg,
		HasArg:   hasArg,
		Options:  opts,
		Extra:    norm.extra,
	}
	if via != nil {
		call.Alias = via.Name
	}

	result, exc := dispatch(call, fn)
	if exc == nil {
		result = r.resultHandlerFor(entry, via)(result)

		if d, ok := result.(Deferred); ok && !isEmpty(d) {
			resolved, err := d.Resolve(ctx)
			switch {
			case err == nil:
				result = resolved
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return nil, errors.Wrapf(err, "awaiting validator %q", call.Reported())
			default:
				exc = newException(call.Reported(), err)
			}
		}
	}

	if exc != nil {
		handler := r.exceptionHandlerFor(entry, via)
		if handler == nil {
			r.log.DebugContext(ctx, "validator exception propagated",
				logger.Validator(entry.Name),
				logger.Alias(call.Alias),
				logger.Error(exc),
			)
			return nil, exc
		}
		r.log.WarnContext(ctx, "validator exception handled",
			logger.Validator(entry.Name),
			logger.Alias(call.Alias),
			logger.Error(exc),
		)
		result = handler(exc.Cause())
	}

	if isEmpty(result) {
		return nil, nil
	}

	return r.shapeSafely(shaping{
		entry:   entry,
		via:     via,
		name:    call.Reported(),
		value:   value,
		options: opts,
	}, result)
}

// shapeSafely runs the shaper and reports a panic in a custom formatter or a
// misbehaving error value as an exception.
func (r *Registry) shapeSafely(s shaping, raw any) (verr ValidationError, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			verr, err = nil, newException(s.name, rec)
		}
	}()
	return r.shape(s, raw), nil
}

// dispatch calls fn with the convention its type declares and converts a
// panic into an exception.
func dispatch(c Call, fn Impl) (result any, exc *Exception) {
	defer func() {
		if rec := recover(); rec != nil {
			result, exc = nil, newException(c.Reported(), rec)
		}
	}()

	switch f := fn.(type) {
	case ValueFunc:
		return f(c.Value), nil
	case Func:
		return f(c.Value, c.Options), nil
	case ArgFunc:
		return f(c.Value, c.Arg, c.Options), nil
	case CallFunc:
		return f(c), nil
	}
	return nil, nil
}

func parseFunc(v any) ParseFunc {
	switch fn := v.(type) {
	case ParseFunc:
		return fn
	case func(any) any:
		return fn
	}
	return nil
}

func (r *Registry) modeFor(entry, via *Entry) argMode {
	switch {
	case r.simpleArgsFormat || entry.SimpleArgsFormat || (via != nil && via.SimpleArgsFormat):
		return modeSimple
	case r.oneOptionsArg || entry.OneOptionsArg || (via != nil && via.OneOptionsArg):
		return modeOneOptions
	}
	return modeDual
}

func (r *Registry) argKeyFor(entry, via *Entry) string {
	if entry.ArgKeyName != "" {
		return entry.ArgKeyName
	}
	if via != nil && via.ArgKeyName != "" {
		return via.ArgKeyName
	}
	return r.argKeyName
}

func (r *Registry) resultHandlerFor(entry, via *Entry) ResultHandler {
	switch {
	case entry.ResultHandler != nil:
		return entry.ResultHandler
	case via != nil && via.ResultHandler != nil:
		return via.ResultHandler
	case r.resultHandler != nil:
		return r.resultHandler
	}
	return func(result any) any { return result }
}

// exceptionHandlerFor walks entry, alias and registry. PropagateExceptions on
// a level stops the walk there.
func (r *Registry) exceptionHandlerFor(entry, via *Entry) ExceptionHandler {
	if entry.ExceptionHandler != nil {
		return entry.ExceptionHandler
	}
	if entry.PropagateExceptions {
		return nil
	}
	if via != nil {
		if via.ExceptionHandler != nil {
			return via.ExceptionHandler
		}
		if via.PropagateExceptions {
			return nil
		}
	}
	return r.exceptionHandler
}
