package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// JSONParser implements Parser for JSON catalogs.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(ctx context.Context, content string) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrap(ErrJSONParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, wrap(ErrFailedToParseJSON, err)
	}

	result, ok, name := definitions(data)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDefinition, "%q: expected an object", name)
	}
	return result, nil
}

func (p *JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}
