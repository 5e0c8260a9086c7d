package validator

import (
	"context"
	"maps"
)

// Options is the normalized key/value mapping every validator receives.
type Options map[string]any

// Clone returns a shallow copy. A nil receiver yields an empty mapping.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	maps.Copy(out, o)
	return out
}

// Impl is the implementation of a registered validator.
type Impl interface {
	isImpl()
}

type (
	// ValueFunc only looks at the value.
	ValueFunc func(value any) any

	// Func receives the value and the normalized options.
	Func func(value any, opts Options) any

	// ArgFunc receives the value, the compared argument and the options.
	// arg is nil when the call did not supply one.
	ArgFunc func(value, arg any, opts Options) any

	// CallFunc receives the whole invocation context.
	CallFunc func(c Call) any

	// Alias forwards to the named validator. The name is looked up on every
	// call, so redefining the target changes the alias.
	Alias string

	// Chain runs its steps left to right and returns the first error.
	Chain []Impl
)

// Ref forwards to the named validator with preset options. Options supplied
// by the caller override the preset.
type Ref struct {
	Name    string
	Options Options
}

func (ValueFunc) isImpl() {}
func (Func) isImpl()      {}
func (ArgFunc) isImpl()   {}
func (CallFunc) isImpl()  {}
func (Alias) isImpl()     {}
func (Chain) isImpl()     {}
func (Ref) isImpl()       {}

// Call is the per-invocation context handed to a CallFunc.
type Call struct {
	Context  context.Context
	Registry *Registry

	// Name is the entry being executed, Alias the name it was reached through.
	Name  string
	Alias string

	Value   any
	Arg     any
	HasArg  bool
	Options Options
	// Extra holds positional arguments that were not consumed as arg or options.
	Extra []any
}

// Reported returns the name that shows up in shaped errors.
func (c Call) Reported() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}

type (
	// MessageFunc computes a message lazily from the value and the formatting context.
	MessageFunc func(value any, values map[string]any) any

	// ResultHandler post-processes a raw validator result before the emptiness test.
	ResultHandler func(result any) any

	// ExceptionHandler converts a recovered panic into an error value.
	// Returning nil reports the value as valid.
	ExceptionHandler func(err error) any

	// ParseFunc replaces the value before the validator runs when set as options["parse"].
	ParseFunc func(value any) any

	// OptionsMapper decides whether a positional argument is an options mapping.
	OptionsMapper func(v any) (Options, bool)

	// FormatStrFunc expands placeholders in a single string.
	FormatStrFunc func(template string, values map[string]any) string

	// FormatMessageFunc expands a message of any supported shape.
	FormatMessageFunc func(message any, values map[string]any) any
)

// Deferred is a result that becomes available later. *async.Future satisfies it.
type Deferred interface {
	Resolve(ctx context.Context) (any, error)
}

// Params is the metadata attached to an entry. Zero fields inherit from the
// alias the entry was reached through and then from the registry.
type Params struct {
	DefaultOptions Options
	ErrorFormat    Format
	// Message overrides the validator's own message: a string, a map or a MessageFunc.
	Message          any
	ResultHandler    ResultHandler
	ExceptionHandler ExceptionHandler
	// PropagateExceptions stops inheriting exception handlers from aliases and the registry.
	PropagateExceptions bool
	SimpleArgsFormat    bool
	OneOptionsArg       bool
	ArgKeyName          string
}

// merge overlays the non-zero fields of p onto a copy of base.
func (base Params) merge(p Params) Params {
	out := base
	if p.DefaultOptions != nil {
		out.DefaultOptions = base.DefaultOptions.Clone()
		maps.Copy(out.DefaultOptions, p.DefaultOptions)
	}
	if p.ErrorFormat != nil {
		out.ErrorFormat = p.ErrorFormat
	}
	if p.Message != nil {
		out.Message = p.Message
	}
	if p.ResultHandler != nil {
		out.ResultHandler = p.ResultHandler
	}
	if p.ExceptionHandler != nil {
		out.ExceptionHandler = p.ExceptionHandler
	}
	if p.ArgKeyName != "" {
		out.ArgKeyName = p.ArgKeyName
	}
	out.PropagateExceptions = out.PropagateExceptions || p.PropagateExceptions
	out.SimpleArgsFormat = out.SimpleArgsFormat || p.SimpleArgsFormat
	out.OneOptionsArg = out.OneOptionsArg || p.OneOptionsArg
	return out
}

// Entry is a registered validator plus its metadata. The pointer returned by
// Registry.Entry is live: changes to Params affect subsequent calls until the
// name is re-added or passed to Registry.Configure, which install a new Entry
// and leave earlier pointers detached.
type Entry struct {
	Name string
	Impl Impl
	Params
}
