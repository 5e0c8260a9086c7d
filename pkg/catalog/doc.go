// Package catalog loads validator definitions from YAML or JSON files and
// registers them on a validator.Registry.
//
// A catalog maps validator names to definitions, optionally nested under a
// top-level "validators" key:
//
//	validators:
//	  equal:
//	    alias: isEqual
//	    message: "%{value} must equal %{arg}"
//	  strictEqual:
//	    alias: isEqual
//	    options: {strict: true}
//	  checked:
//	    chain:
//	      - present
//	      - ref: isEqual
//	        options: {field: confirmation}
//	  isEqual:
//	    errorFormat: {code: "%{validator}", $options: false}
//
// A definition with alias becomes a validator.Alias, or a validator.Ref when
// options are present. A chain becomes a validator.Chain of aliases and refs.
// A definition with neither only merges its metadata (message, errorFormat,
// defaultOptions, argKeyName, simpleArgsFormat, oneOptionsArg,
// propagateExceptions) into a validator registered in code, and fails with
// validator.ErrUnknownValidator when there is none.
//
// Functions cannot be expressed in a catalog; implementations are always
// registered in code.
//
// # Usage
//
//	reg := validator.New()
//	rules.Register(reg)
//	if err := catalog.Load(ctx, reg, "validators.yaml"); err != nil {
//		return err
//	}
//
// The path can also come from the environment through validator.Config and
// LoadConfigured.
package catalog
