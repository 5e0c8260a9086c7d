package catalog

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/dmitrymomot/validatorkit/pkg/logger"
	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// Step is one element of a chain definition: a bare name, or a name with
// preset options.
type Step struct {
	Ref     string
	Options validator.Options
}

// Definition describes one registry entry. Exactly one of Alias and Chain
// gives it an implementation; a definition with neither only updates the
// metadata of an entry registered in code.
type Definition struct {
	Alias   string
	Options validator.Options
	Chain   []Step

	Message             any
	ErrorFormat         validator.Format
	DefaultOptions      validator.Options
	ArgKeyName          string
	SimpleArgsFormat    bool
	OneOptionsArg       bool
	PropagateExceptions bool
}

// Impl returns the registry implementation, or nil for metadata-only definitions.
func (d Definition) Impl() validator.Impl {
	switch {
	case d.Alias != "" && len(d.Options) > 0:
		return validator.Ref{Name: d.Alias, Options: d.Options.Clone()}
	case d.Alias != "":
		return validator.Alias(d.Alias)
	case len(d.Chain) > 0:
		chain := make(validator.Chain, 0, len(d.Chain))
		for _, st := range d.Chain {
			if len(st.Options) > 0 {
				chain = append(chain, validator.Ref{Name: st.Ref, Options: st.Options.Clone()})
				continue
			}
			chain = append(chain, validator.Alias(st.Ref))
		}
		return chain
	}
	return nil
}

// Params returns the entry metadata carried by the definition.
func (d Definition) Params() validator.Params {
	return validator.Params{
		DefaultOptions:      d.DefaultOptions,
		ErrorFormat:         d.ErrorFormat,
		Message:             d.Message,
		ArgKeyName:          d.ArgKeyName,
		SimpleArgsFormat:    d.SimpleArgsFormat,
		OneOptionsArg:       d.OneOptionsArg,
		PropagateExceptions: d.PropagateExceptions,
	}
}

// Catalog is a set of named definitions.
type Catalog struct {
	Definitions map[string]Definition
}

// Parse decodes content with parser.
func Parse(ctx context.Context, parser Parser, content string) (*Catalog, error) {
	raw, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, err
	}

	c := &Catalog{Definitions: make(map[string]Definition, len(raw))}
	for name, fields := range raw {
		def, err := decodeDefinition(fields)
		if err != nil {
			return nil, errors.Wrapf(err, "validator %q", name)
		}
		c.Definitions[name] = def
	}
	return c, nil
}

// LoadFile reads a YAML or JSON catalog, choosing the parser by extension.
func LoadFile(ctx context.Context, path string) (*Catalog, error) {
	parser := NewParserForFile(path)
	if parser == nil {
		return nil, errors.Wrapf(ErrUnsupportedFile, "%q", path)
	}
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrLoadingFileCancelled, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(ErrFailedToReadFile, err)
	}
	return Parse(ctx, parser, string(content))
}

// Apply registers the catalog on reg. Definitions with an implementation are
// added first, so metadata-only definitions may target them.
func (c *Catalog) Apply(reg *validator.Registry, opts ...ApplyOption) error {
	cfg := applyConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	names := slices.Sorted(maps.Keys(c.Definitions))
	for _, name := range names {
		def := c.Definitions[name]
		if impl := def.Impl(); impl != nil {
			reg.Add(name, impl, def.Params())
		}
	}

	updated := 0
	for _, name := range names {
		def := c.Definitions[name]
		if def.Impl() != nil {
			continue
		}
		if err := reg.Configure(name, def.Params()); err != nil {
			return err
		}
		updated++
	}

	cfg.log.Info("validator catalog applied",
		logger.Component("catalog"),
		logger.Count(len(names)),
		slog.Int("updated", updated),
	)
	return nil
}

type applyConfig struct {
	log *slog.Logger
}

// ApplyOption configures Apply.
type ApplyOption func(*applyConfig)

// WithLogger reports applied catalogs. Nil is ignored.
func WithLogger(l *slog.Logger) ApplyOption {
	return func(c *applyConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Load reads path and applies it to reg.
func Load(ctx context.Context, reg *validator.Registry, path string, opts ...ApplyOption) error {
	c, err := LoadFile(ctx, path)
	if err != nil {
		return err
	}
	return c.Apply(reg, opts...)
}

// LoadConfigured applies cfg.CatalogPath when it is set.
func LoadConfigured(ctx context.Context, reg *validator.Registry, cfg validator.Config, opts ...ApplyOption) error {
	if cfg.CatalogPath == "" {
		return nil
	}
	return Load(ctx, reg, cfg.CatalogPath, opts...)
}
