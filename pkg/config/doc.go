// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct annotated with env tags and
//     caches the result per type, so repeated calls are cheap.
//   - MustLoad and MustLoadEnv panic on failure for start-up code.
//   - ForceReload and ResetCache drop cached values, which tests rely on.
//
// # Usage
//
// The validator registry settings are loaded like any other struct:
//
//	var cfg validator.Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("load validator config: %v", err)
//	}
//	reg := validator.New(validator.FromConfig(cfg)...)
//
// # Error Handling
//
// Errors are marked with the package sentinels and can be tested with
// errors.Is from github.com/cockroachdb/errors:
//
//   - ErrParsingConfig: the environment could not be parsed into the struct.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: a nil pointer was passed to Load.
//   - ErrConfigNotLoaded: a concurrent load failed before caching a value.
package config
