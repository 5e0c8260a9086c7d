package validator

// Config holds registry settings loadable from the environment with config.Load.
type Config struct {
	// ArgKeyName is the options key the compared argument is written to.
	ArgKeyName string `env:"VALIDATOR_ARG_KEY" envDefault:"arg"`

	// SimpleArgsFormat never takes options from the second positional argument and always calls (value, options).
	SimpleArgsFormat bool `env:"VALIDATOR_SIMPLE_ARGS" envDefault:"false"`

	// OneOptionsArg only takes options from the first positional argument.
	OneOptionsArg bool `env:"VALIDATOR_ONE_OPTIONS_ARG" envDefault:"false"`

	// ErrorKey is the error field holding the reporting validator name.
	ErrorKey string `env:"VALIDATOR_ERROR_KEY" envDefault:"error"`

	// EchoOptions copies call options into shaped errors.
	EchoOptions bool `env:"VALIDATOR_ERROR_ECHO_OPTIONS" envDefault:"true"`

	// EchoOrigin copies the validator's own error fields into shaped errors.
	EchoOrigin bool `env:"VALIDATOR_ERROR_ECHO_ORIGIN" envDefault:"true"`

	// DisableFormat returns formatted messages without a format template.
	DisableFormat bool `env:"VALIDATOR_DISABLE_ERROR_FORMAT" envDefault:"false"`

	// CatalogPath points to a YAML or JSON catalog loaded by the catalog package.
	CatalogPath string `env:"VALIDATOR_CATALOG_PATH"`
}

// FromConfig translates cfg into registry options.
func FromConfig(cfg Config) []Option {
	opts := []Option{WithArgKeyName(cfg.ArgKeyName)}
	if cfg.SimpleArgsFormat {
		opts = append(opts, WithSimpleArgsFormat())
	}
	if cfg.OneOptionsArg {
		opts = append(opts, WithOneOptionsArg())
	}

	if cfg.DisableFormat {
		return append(opts, WithoutErrorFormat())
	}

	errorKey := cfg.ErrorKey
	if errorKey == "" {
		errorKey = "error"
	}
	return append(opts, WithErrorFormat(Format{
		errorKey:    "%{validator}",
		"message":   "%{message}",
		FlagOptions: cfg.EchoOptions,
		FlagOrigin:  cfg.EchoOrigin,
	}))
}
