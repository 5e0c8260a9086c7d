package validator

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/dmitrymomot/validatorkit/pkg/async"
	"github.com/dmitrymomot/validatorkit/pkg/logger"
)

// Registry holds named validators and the defaults shared by all of them.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	errorFormat      Format
	formatStr        FormatStrFunc
	formatMessage    FormatMessageFunc
	resultHandler    ResultHandler
	exceptionHandler ExceptionHandler
	simpleArgsFormat bool
	oneOptionsArg    bool
	argKeyName       string
	defaultOptions   Options
	optionsMapper    OptionsMapper
	util             map[string]any
	log              *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithErrorFormat replaces the default error format. A nil format disables shaping.
func WithErrorFormat(f Format) Option {
	return func(r *Registry) { r.errorFormat = f }
}

// WithoutErrorFormat disables format templates: errors are returned as {message: ...}
// or as the validator's own formatted object.
func WithoutErrorFormat() Option {
	return func(r *Registry) { r.errorFormat = nil }
}

// WithFormatStr overrides placeholder expansion. Nil is ignored.
func WithFormatStr(fn FormatStrFunc) Option {
	return func(r *Registry) {
		if fn != nil {
			r.formatStr = fn
		}
	}
}

// WithFormatMessage overrides message formatting entirely. Nil is ignored.
func WithFormatMessage(fn FormatMessageFunc) Option {
	return func(r *Registry) {
		if fn != nil {
			r.formatMessage = fn
		}
	}
}

func WithResultHandler(h ResultHandler) Option {
	return func(r *Registry) { r.resultHandler = h }
}

func WithExceptionHandler(h ExceptionHandler) Option {
	return func(r *Registry) { r.exceptionHandler = h }
}

func WithSimpleArgsFormat() Option {
	return func(r *Registry) { r.simpleArgsFormat = true }
}

func WithOneOptionsArg() Option {
	return func(r *Registry) { r.oneOptionsArg = true }
}

// WithArgKeyName sets the options key for the compared argument. Empty names are ignored.
func WithArgKeyName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.argKeyName = name
		}
	}
}

// WithDefaultOptions sets options every call starts from.
func WithDefaultOptions(opts Options) Option {
	return func(r *Registry) { r.defaultOptions = opts.Clone() }
}

// WithOptionsMapper replaces the test deciding which positional arguments are
// option mappings. Nil is ignored.
func WithOptionsMapper(m OptionsMapper) Option {
	return func(r *Registry) {
		if m != nil {
			r.optionsMapper = m
		}
	}
}

// WithUtil stores an opaque bag of helpers for validator authors.
func WithUtil(util map[string]any) Option {
	return func(r *Registry) { r.util = util }
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a Registry using the default error format
// {error: "%{validator}", message: "%{message}", $options: true, $origin: true}.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries:       make(map[string]*Entry),
		errorFormat:   DefaultErrorFormat(),
		formatStr:     FormatStr,
		argKeyName:    DefaultArgKeyName,
		optionsMapper: DefaultOptionsMapper,
		log:           logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers impl under name, replacing any previous entry. Params are
// merged left to right onto the entry metadata.
func (r *Registry) Add(name string, impl Impl, params ...Params) *Registry {
	var p Params
	for _, extra := range params {
		p = p.merge(extra)
	}
	if p.DefaultOptions != nil {
		p.DefaultOptions = p.DefaultOptions.Clone()
	}

	r.mu.Lock()
	_, replaced := r.entries[name]
	r.entries[name] = &Entry{Name: name, Impl: impl, Params: p}
	r.mu.Unlock()

	r.log.Debug("validator registered",
		logger.Validator(name),
		slog.Bool("replaced", replaced),
	)
	return r
}

// AddAll registers every implementation in m with the shared params applied to each.
func (r *Registry) AddAll(m map[string]Impl, shared ...Params) *Registry {
	for _, name := range slices.Sorted(maps.Keys(m)) {
		r.Add(name, m[name], shared...)
	}
	return r
}

// Load is AddAll, kept for symmetry with catalog loading.
func (r *Registry) Load(m map[string]Impl, shared ...Params) *Registry {
	return r.AddAll(m, shared...)
}

// Configure merges params onto an existing entry without touching its implementation.
// The entry is replaced by an updated copy, so calls in flight keep the old
// metadata and pointers obtained from Entry before the call no longer apply.
// Fetch the entry again after Configure to inspect the result.
func (r *Registry) Configure(name string, params Params) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return errors.Wrapf(ErrUnknownValidator, "%q", name)
	}
	p := e.Params.merge(params)
	if p.DefaultOptions != nil {
		p.DefaultOptions = p.DefaultOptions.Clone()
	}
	r.entries[name] = &Entry{Name: name, Impl: e.Impl, Params: p}
	return nil
}

// Remove deletes an entry. Aliases pointing at it fail with ErrUnknownValidator afterwards.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()

	r.log.Debug("validator removed", logger.Validator(name))
}

// Entry returns the live entry for name. See Entry for when it is replaced.
func (r *Registry) Entry(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Entry(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.entries))
}

// Util returns the helper bag passed with WithUtil.
func (r *Registry) Util() map[string]any {
	return r.util
}

// ArgKeyName returns the registry-wide options key for the compared argument.
func (r *Registry) ArgKeyName() string {
	return r.argKeyName
}

// FormatStr expands placeholders with the configured string formatter.
func (r *Registry) FormatStr(template string, values map[string]any) string {
	return r.formatStr(template, values)
}

// FormatMessage expands a message against values. A MessageFunc is called
// first with (values["value"], values). Maps are returned as new maps whose
// keys and values are both expanded, recursing into nested maps. Strings go
// through FormatStr; other values are returned unchanged.
func (r *Registry) FormatMessage(message any, values map[string]any) any {
	if r.formatMessage != nil {
		return r.formatMessage(message, values)
	}
	return formatMessage(message, values, r.formatStr)
}

// Call runs the named validator. It returns a nil ValidationError when the
// value is valid. The error result is reserved for unknown names, invalid
// implementations, unhandled exceptions and context cancellation while a
// deferred result is awaited.
func (r *Registry) Call(ctx context.Context, name string, value any, args ...any) (ValidationError, error) {
	return r.callNamed(ctx, name, nil, nil, value, args)
}

// Validator returns a callable bound to name. The entry is looked up on every call.
func (r *Registry) Validator(name string) Validator {
	return Validator{registry: r, name: name}
}

func (r *Registry) lookup(name string) (*Entry, error) {
	e, ok := r.Entry(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownValidator, "%q", name)
	}
	return e, nil
}

// Validator is a late-bound handle on a registered validator.
type Validator struct {
	registry *Registry
	name     string
}

func (v Validator) Name() string {
	return v.name
}

// Validate runs the validator. See Registry.Call.
func (v Validator) Validate(ctx context.Context, value any, args ...any) (ValidationError, error) {
	return v.registry.Call(ctx, v.name, value, args...)
}

// Curry closes over args and returns a unary validation function.
//
//	minFive := reg.Validator("min").Curry(5)
//	verr, err := minFive(ctx, 3)
func (v Validator) Curry(args ...any) func(ctx context.Context, value any) (ValidationError, error) {
	args = slices.Clone(args)
	return func(ctx context.Context, value any) (ValidationError, error) {
		return v.Validate(ctx, value, args...)
	}
}

// Async runs the validator on its own goroutine.
func (v Validator) Async(ctx context.Context, value any, args ...any) *async.Future[ValidationError] {
	args = slices.Clone(args)
	return async.Async(ctx, value, func(ctx context.Context, value any) (ValidationError, error) {
		return v.Validate(ctx, value, args...)
	})
}
