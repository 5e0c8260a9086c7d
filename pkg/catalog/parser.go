package catalog

import (
	"context"
	"path/filepath"
	"strings"
)

// Parser decodes catalog content into raw definitions keyed by validator name.
type Parser interface {
	Parse(ctx context.Context, content string) (map[string]map[string]any, error)

	// SupportsFileExtension accepts the extension with or without a leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile returns a parser based on the file extension, or nil.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// definitions unwraps an optional top-level "validators" key and checks that
// every definition is a mapping.
func definitions(data map[string]any) (map[string]map[string]any, bool, string) {
	if nested, ok := data["validators"].(map[string]any); ok && len(data) == 1 {
		data = nested
	}

	result := make(map[string]map[string]any, len(data))
	for name, raw := range data {
		def, ok := raw.(map[string]any)
		if !ok {
			return nil, false, name
		}
		result[name] = def
	}
	return result, true, ""
}
