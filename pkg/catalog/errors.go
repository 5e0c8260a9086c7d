package catalog

import "github.com/cockroachdb/errors"

var (
	ErrJSONParsingCancelled = errors.New("json parsing cancelled")
	ErrFailedToParseJSON    = errors.New("failed to parse JSON content")

	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")

	ErrLoadingFileCancelled = errors.New("loading catalog file cancelled")
	ErrFailedToReadFile     = errors.New("failed to read catalog file")
	ErrUnsupportedFile      = errors.New("unsupported catalog file extension")

	// ErrInvalidDefinition is returned for definitions with unknown fields or wrong value types.
	ErrInvalidDefinition = errors.New("invalid validator definition")
)

// wrap attaches sentinel to err so both errors.Is checks and the cause message survive.
func wrap(sentinel, err error) error {
	return errors.Mark(errors.Wrap(err, sentinel.Error()), sentinel)
}
