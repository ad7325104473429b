package valdix

// SetSchema validates a slice as a mathematical set: size bounds first, then
// each element, then a re-keying pass into a fresh slice that keeps the first
// occurrence of each canonical key and silently drops later duplicates.
type SetSchema struct {
	item    Schema
	minSize *int
	maxSize *int
}

// Set returns a set schema over the given element schema.
func Set(item Schema) *SetSchema { return &SetSchema{item: item} }

func (s *SetSchema) Kind() Kind { return KindSet }

// Item returns the element schema for read-only reflection.
func (s *SetSchema) Item() Schema { return s.item }

// Bounds returns the configured size bounds (nil when unset).
func (s *SetSchema) Bounds() (lo, hi *int) { return s.minSize, s.maxSize }

func (s *SetSchema) clone() *SetSchema {
	c := *s
	return &c
}

func (s *SetSchema) Min(n int) *SetSchema {
	c := s.clone()
	c.minSize = &n
	return c
}

func (s *SetSchema) Max(n int) *SetSchema {
	c := s.clone()
	c.maxSize = &n
	return c
}

func (s *SetSchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.([]any)
	if !ok {
		invalidType(p, "set", v)
		return nil, false
	}
	before := len(p.issues)
	if s.minSize != nil && len(in) < *s.minSize {
		p.AddIssue(Issue{Code: CodeTooSmall, Minimum: numPtr(float64(*s.minSize)), Inclusive: true, Validation: "set"})
		if p.abortEarly {
			return nil, false
		}
	}
	if s.maxSize != nil && len(in) > *s.maxSize {
		p.AddIssue(Issue{Code: CodeTooBig, Maximum: numPtr(float64(*s.maxSize)), Inclusive: true, Validation: "set"})
		if p.abortEarly {
			return nil, false
		}
	}
	out := make([]any, 0, len(in))
	seen := map[string]struct{}{}
	for i, elem := range in {
		p.push(i)
		val, ok := s.item.eval(elem, p)
		p.pop()
		if !ok {
			if p.abortEarly {
				return nil, false
			}
			continue
		}
		ck := canonicalKey(val)
		if _, dup := seen[ck]; dup {
			continue
		}
		seen[ck] = struct{}{}
		out = append(out, val)
	}
	return out, len(p.issues) == before
}

// MapSchema validates string-keyed maps with both a key schema and a value
// schema, re-keying into a fresh map. Iteration is alphabetical: Go maps do
// not preserve insertion order, so determinism comes from sorting.
type MapSchema struct {
	key     Schema
	value   Schema
	minSize *int
	maxSize *int
}

// Map returns a map schema over the given key and value schemas.
func Map(key, value Schema) *MapSchema { return &MapSchema{key: key, value: value} }

func (s *MapSchema) Kind() Kind { return KindMap }

// KeySchema returns the key schema for read-only reflection.
func (s *MapSchema) KeySchema() Schema { return s.key }

// ValueSchema returns the value schema for read-only reflection.
func (s *MapSchema) ValueSchema() Schema { return s.value }

// Bounds returns the configured size bounds (nil when unset).
func (s *MapSchema) Bounds() (lo, hi *int) { return s.minSize, s.maxSize }

func (s *MapSchema) clone() *MapSchema {
	c := *s
	return &c
}

func (s *MapSchema) Min(n int) *MapSchema {
	c := s.clone()
	c.minSize = &n
	return c
}

func (s *MapSchema) Max(n int) *MapSchema {
	c := s.clone()
	c.maxSize = &n
	return c
}

func (s *MapSchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.(map[string]any)
	if !ok {
		invalidType(p, "map", v)
		return nil, false
	}
	before := len(p.issues)
	if s.minSize != nil && len(in) < *s.minSize {
		p.AddIssue(Issue{Code: CodeTooSmall, Minimum: numPtr(float64(*s.minSize)), Inclusive: true, Validation: "map"})
		if p.abortEarly {
			return nil, false
		}
	}
	if s.maxSize != nil && len(in) > *s.maxSize {
		p.AddIssue(Issue{Code: CodeTooBig, Maximum: numPtr(float64(*s.maxSize)), Inclusive: true, Validation: "map"})
		if p.abortEarly {
			return nil, false
		}
	}
	out := make(map[string]any, len(in))
	for _, key := range sortedKeys(in) {
		p.push(key)
		_, keyOK := s.key.eval(key, p)
		var val any
		valOK := false
		if keyOK {
			val, valOK = s.value.eval(in[key], p)
		}
		p.pop()
		if !keyOK || !valOK {
			if p.abortEarly {
				return nil, false
			}
			continue
		}
		out[key] = val
	}
	return out, len(p.issues) == before
}
