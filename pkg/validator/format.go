package validator

import (
	"fmt"
	"regexp"
)

// placeholderRegexp finds %{key} and its escaped form %%{key}.
var placeholderRegexp = regexp.MustCompile(`(%?)%\{([^}]+)\}`)

const (
	missingValue = "undefined"
	nilValue     = "null"
)

// FormatStr expands %{key} placeholders against values.
// %%{key} renders as the literal %{key}. Unknown keys render as "undefined"
// and nil values as "null".
//
//	FormatStr("I'm %{age} years old", map[string]any{"age": 21}) // "I'm 21 years old"
func FormatStr(template string, values map[string]any) string {
	return placeholderRegexp.ReplaceAllStringFunc(template, func(match string) string {
		sub := placeholderRegexp.FindStringSubmatch(match)
		if sub[1] == "%" {
			return "%{" + sub[2] + "}"
		}
		return stringify(values, sub[2])
	})
}

func stringify(values map[string]any, key string) string {
	v, ok := values[key]
	if !ok {
		return missingValue
	}
	switch s := v.(type) {
	case nil:
		return nilValue
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// FormatMessage expands a message of any supported shape using FormatStr.
// See Registry.FormatMessage.
func FormatMessage(message any, values map[string]any) any {
	return formatMessage(message, values, FormatStr)
}

func formatMessage(message any, values map[string]any, str FormatStrFunc) any {
	switch fn := message.(type) {
	case MessageFunc:
		message = fn(values["value"], values)
	case func(any, map[string]any) any:
		message = fn(values["value"], values)
	}

	switch m := message.(type) {
	case string:
		return str(m, values)
	case nil:
		return nil
	}

	if m, ok := asMap(message); ok {
		return formatMap(m, values, str)
	}
	return message
}

// formatMap expands both keys and values, so field names may be dynamic.
func formatMap(m map[string]any, values map[string]any, str FormatStrFunc) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[str(k, values)] = formatValue(v, values, str)
	}
	return out
}

func formatValue(v any, values map[string]any, str FormatStrFunc) any {
	if s, ok := v.(string); ok {
		return str(s, values)
	}
	if m, ok := asMap(v); ok {
		return formatMap(m, values, str)
	}
	return v
}

// asMap accepts the map shapes the package produces and consumes.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	case ValidationError:
		return m, true
	case Format:
		return m, true
	}
	return nil, false
}
