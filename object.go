package valdix

import "sort"

// Shape is the named, order-preserving mapping from field name to child
// schema. It is immutable; builder operations copy it.
type Shape struct {
	keys   []string
	fields map[string]Schema
}

// NewShape builds a shape from alternating declaration order. Used by the
// structural transforms; schema authors normally go through Object().Field.
func NewShape() *Shape { return &Shape{fields: map[string]Schema{}} }

func (sh *Shape) clone() *Shape {
	c := &Shape{
		keys:   make([]string, len(sh.keys)),
		fields: make(map[string]Schema, len(sh.fields)),
	}
	copy(c.keys, sh.keys)
	for k, v := range sh.fields {
		c.fields[k] = v
	}
	return c
}

// set returns a copy with key bound to child, preserving first-declaration
// order for existing keys.
func (sh *Shape) set(key string, child Schema) *Shape {
	c := sh.clone()
	if _, exists := c.fields[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.fields[key] = child
	return c
}

// Keys returns the field names in declaration order.
func (sh *Shape) Keys() []string {
	out := make([]string, len(sh.keys))
	copy(out, sh.keys)
	return out
}

// Field returns the child schema bound to key, or nil.
func (sh *Shape) Field(key string) Schema { return sh.fields[key] }

// Len returns the number of declared fields.
func (sh *Shape) Len() int { return len(sh.keys) }

// ObjectSchema validates map[string]any inputs against a declared shape plus
// an unknown-key policy.
type ObjectSchema struct {
	shape  *Shape
	policy UnknownPolicy
}

// Object returns an empty object schema with the strip policy.
func Object() *ObjectSchema {
	return &ObjectSchema{shape: NewShape(), policy: UnknownStrip}
}

func (s *ObjectSchema) Kind() Kind { return KindObject }

// Shape returns the declared shape for read-only reflection.
func (s *ObjectSchema) Shape() *Shape { return s.shape }

// Policy returns the unknown-key policy.
func (s *ObjectSchema) Policy() UnknownPolicy { return s.policy }

// Field returns a copy with key bound to child. Redeclaring a key replaces
// its schema but keeps its original position.
func (s *ObjectSchema) Field(key string, child Schema) *ObjectSchema {
	return &ObjectSchema{shape: s.shape.set(key, child), policy: s.policy}
}

// Strict reports undeclared input keys as a single unknown_keys issue.
func (s *ObjectSchema) Strict() *ObjectSchema {
	return &ObjectSchema{shape: s.shape, policy: UnknownStrict}
}

// Passthrough copies undeclared input keys into the output.
func (s *ObjectSchema) Passthrough() *ObjectSchema {
	return &ObjectSchema{shape: s.shape, policy: UnknownPassthrough}
}

// Strip drops undeclared input keys (the default).
func (s *ObjectSchema) Strip() *ObjectSchema {
	return &ObjectSchema{shape: s.shape, policy: UnknownStrip}
}

func (s *ObjectSchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.(map[string]any)
	if !ok {
		invalidType(p, "object", v)
		return nil, false
	}
	before := len(p.issues)
	out := make(map[string]any, len(s.shape.keys))

	for _, key := range s.shape.keys {
		child := s.shape.fields[key]
		raw, present := in[key]
		if present {
			p.push(key)
			val, ok := child.eval(raw, p)
			p.pop()
			if ok && !IsMissing(val) {
				out[key] = val
			}
			if !ok && p.abortEarly {
				return nil, false
			}
			continue
		}
		// Missing-key probe: the child tolerates absence only if evaluating
		// it against the sentinel succeeds without recording any issue.
		probe := p.fork()
		val, probeOK := child.eval(missingValue, probe)
		if probeOK && len(probe.issues) == 0 {
			if !IsMissing(val) {
				out[key] = val
			}
			continue
		}
		p.AddIssue(Issue{Code: CodeRequired, Path: []any{key}})
		if p.abortEarly {
			return nil, false
		}
	}

	unknown := make([]string, 0)
	for key := range in {
		if _, declared := s.shape.fields[key]; !declared {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	switch s.policy {
	case UnknownStrict:
		if len(unknown) > 0 {
			p.AddIssue(Issue{Code: CodeUnknownKeys, Keys: unknown})
			if p.abortEarly {
				return nil, false
			}
		}
	case UnknownPassthrough:
		for _, key := range unknown {
			out[key] = in[key]
		}
	}

	return out, len(p.issues) == before
}
