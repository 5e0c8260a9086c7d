package catalog

import (
	"github.com/cockroachdb/errors"

	"github.com/dmitrymomot/validatorkit/pkg/validator"
)

// decodeDefinition converts a parsed mapping into a Definition. Keys follow
// the registry parameter names.
func decodeDefinition(fields map[string]any) (Definition, error) {
	var (
		d   Definition
		err error
	)

	for key, v := range fields {
		switch key {
		case "alias":
			d.Alias, err = asString(key, v)
		case "options":
			d.Options, err = asOptions(key, v)
		case "chain":
			d.Chain, err = asChain(v)
		case "message":
			d.Message, err = asMessage(v)
		case "errorFormat":
			var m validator.Options
			m, err = asOptions(key, v)
			d.ErrorFormat = validator.Format(m)
		case "defaultOptions":
			d.DefaultOptions, err = asOptions(key, v)
		case "argKeyName":
			d.ArgKeyName, err = asString(key, v)
		case "simpleArgsFormat":
			d.SimpleArgsFormat, err = asBool(key, v)
		case "oneOptionsArg":
			d.OneOptionsArg, err = asBool(key, v)
		case "propagateExceptions":
			d.PropagateExceptions, err = asBool(key, v)
		default:
			err = errors.Wrapf(ErrInvalidDefinition, "unknown field %q", key)
		}
		if err != nil {
			return Definition{}, err
		}
	}

	if d.Alias != "" && len(d.Chain) > 0 {
		return Definition{}, errors.Wrap(ErrInvalidDefinition, "alias and chain are mutually exclusive")
	}
	if d.Alias == "" && len(d.Options) > 0 {
		return Definition{}, errors.Wrap(ErrInvalidDefinition, "options require an alias")
	}
	return d, nil
}

func asString(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrInvalidDefinition, "%s: expected a string, got %T", key, v)
	}
	return s, nil
}

func asBool(key string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.Wrapf(ErrInvalidDefinition, "%s: expected a boolean, got %T", key, v)
	}
	return b, nil
}

func asOptions(key string, v any) (validator.Options, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDefinition, "%s: expected a mapping, got %T", key, v)
	}
	return validator.Options(m), nil
}

// asMessage accepts a template string or a mapping of templates.
func asMessage(v any) (any, error) {
	switch m := v.(type) {
	case string, map[string]any:
		return m, nil
	}
	return nil, errors.Wrapf(ErrInvalidDefinition, "message: expected a string or mapping, got %T", v)
}

// asChain accepts names and {ref, options} mappings.
func asChain(v any) ([]Step, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDefinition, "chain: expected a list, got %T", v)
	}

	steps := make([]Step, 0, len(items))
	for i, item := range items {
		switch st := item.(type) {
		case string:
			steps = append(steps, Step{Ref: st})
		case map[string]any:
			ref, ok := st["ref"].(string)
			if !ok || ref == "" {
				return nil, errors.Wrapf(ErrInvalidDefinition, "chain[%d]: missing ref", i)
			}
			step := Step{Ref: ref}
			if raw, ok := st["options"]; ok {
				opts, err := asOptions("options", raw)
				if err != nil {
					return nil, errors.Wrapf(err, "chain[%d]", i)
				}
				step.Options = opts
			}
			steps = append(steps, step)
		default:
			return nil, errors.Wrapf(ErrInvalidDefinition, "chain[%d]: expected a name or mapping, got %T", i, item)
		}
	}
	return steps, nil
}
