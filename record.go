package valdix

import "sort"

// RecordSchema validates homogeneous string-keyed maps: every value against
// the value schema, and — for strict records — every key against a key
// schema. Key and value issues land on the same path segment.
type RecordSchema struct {
	key    Schema // nil for plain records
	value  Schema
	strict bool
}

// Record returns a record schema validating values only.
func Record(value Schema) *RecordSchema { return &RecordSchema{value: value} }

// StrictRecord returns a record schema validating both keys and values.
func StrictRecord(key, value Schema) *RecordSchema {
	return &RecordSchema{key: key, value: value, strict: true}
}

func (s *RecordSchema) Kind() Kind { return KindRecord }

// KeySchema returns the key schema (nil for plain records).
func (s *RecordSchema) KeySchema() Schema { return s.key }

// ValueSchema returns the value schema.
func (s *RecordSchema) ValueSchema() Schema { return s.value }

// IsStrict reports whether keys are validated.
func (s *RecordSchema) IsStrict() bool { return s.strict }

// sortedKeys gives a deterministic iteration order; Go maps do not preserve
// insertion order, so issue emission is keyed alphabetically.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *RecordSchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.(map[string]any)
	if !ok {
		invalidType(p, "record", v)
		return nil, false
	}
	before := len(p.issues)
	out := make(map[string]any, len(in))
	for _, key := range sortedKeys(in) {
		keyOK := true
		if s.strict && s.key != nil {
			p.push(key)
			_, keyOK = s.key.eval(key, p)
			p.pop()
			if !keyOK && p.abortEarly {
				return nil, false
			}
		}
		p.push(key)
		val, valOK := s.value.eval(in[key], p)
		p.pop()
		if !valOK && p.abortEarly {
			return nil, false
		}
		if keyOK && valOK {
			out[key] = val
		}
	}
	return out, len(p.issues) == before
}
