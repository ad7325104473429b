package valdix

import (
	"bytes"
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseJSON decodes raw JSON and validates the result in one shot. Numbers
// decode as json.Number so integer precision survives until a schema decides
// how to interpret them. Malformed JSON surfaces as a single custom issue.
func ParseJSON(s Schema, data []byte, opts ...ParseOpt) (any, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return Parse(s, v, opts...)
}

// SafeParseJSON is ParseJSON returning a Result instead of an error.
func SafeParseJSON(s Schema, data []byte, opts ...ParseOpt) Result {
	out, err := ParseJSON(s, data, opts...)
	return toResult(out, err)
}

func decodeJSON(data []byte) (any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		iss := Issue{Code: CodeCustom, Message: fmt.Sprintf("invalid JSON: %v", err)}
		return nil, NewValidationError([]Issue{iss})
	}
	return v, nil
}

// ParseYAML decodes raw YAML and validates the result. Mapping keys are
// normalized to strings so the object/record schemas see the same shape the
// JSON path produces.
func ParseYAML(s Schema, data []byte, opts ...ParseOpt) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		iss := Issue{Code: CodeCustom, Message: fmt.Sprintf("invalid YAML: %v", err)}
		return nil, NewValidationError([]Issue{iss})
	}
	return Parse(s, normalizeYAML(v), opts...)
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}
