package valdix

// Structural transforms operate on schema trees, not on values. Every
// operation returns a new node; existing nodes are shared, never mutated.

// Pick keeps only the listed fields, preserving declaration order and the
// unknown-key policy. Unknown names are ignored.
func (s *ObjectSchema) Pick(keys ...string) *ObjectSchema {
	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	sh := NewShape()
	for _, k := range s.shape.keys {
		if _, ok := want[k]; ok {
			sh = sh.set(k, s.shape.fields[k])
		}
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

// Omit drops the listed fields, preserving declaration order and the
// unknown-key policy.
func (s *ObjectSchema) Omit(keys ...string) *ObjectSchema {
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	sh := NewShape()
	for _, k := range s.shape.keys {
		if _, ok := drop[k]; !ok {
			sh = sh.set(k, s.shape.fields[k])
		}
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

// Extend adds or replaces fields from other's shape; other's fields win on
// collision. The receiver's unknown-key policy is preserved.
func (s *ObjectSchema) Extend(other *ObjectSchema) *ObjectSchema {
	sh := s.shape
	for _, k := range other.shape.keys {
		sh = sh.set(k, other.shape.fields[k])
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

// Merge combines two object schemas; like Extend, but the result adopts
// other's unknown-key policy, matching the convention that the right side of
// a merge is authoritative.
func (s *ObjectSchema) Merge(other *ObjectSchema) *ObjectSchema {
	merged := s.Extend(other)
	return &ObjectSchema{shape: merged.shape, policy: other.policy}
}

// Keyof derives an enum over the declared field names. Calling it on an
// empty shape is a schema-definition bug and panics.
func (s *ObjectSchema) Keyof() *EnumSchema {
	if s.shape.Len() == 0 {
		panic("valdix: Keyof on empty object shape")
	}
	return Enum(s.shape.keys...)
}

// Partial wraps every declared field in Optional, one level deep. Fields
// already optional are left untouched.
func (s *ObjectSchema) Partial() *ObjectSchema {
	sh := NewShape()
	for _, k := range s.shape.keys {
		child := s.shape.fields[k]
		if child.Kind() != KindOptional {
			child = Optional(child)
		}
		sh = sh.set(k, child)
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

// Required unwraps one level of Optional from every declared field.
func (s *ObjectSchema) Required() *ObjectSchema {
	sh := NewShape()
	for _, k := range s.shape.keys {
		child := s.shape.fields[k]
		if opt, ok := child.(*OptionalSchema); ok {
			child = opt.Inner()
		}
		sh = sh.set(k, child)
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

// DeepPartial recursively makes every field optional at every depth: any
// existing optional wrapper is unwrapped, the node is transformed (objects
// into their shapes, arrays into their item schema, everything else passes
// through), then re-wrapped in Optional.
func (s *ObjectSchema) DeepPartial() *ObjectSchema {
	sh := NewShape()
	for _, k := range s.shape.keys {
		sh = sh.set(k, Optional(deepPartialNode(unwrapOptional(s.shape.fields[k]))))
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

// DeepRequired recursively strips optional wrappers at every depth.
func (s *ObjectSchema) DeepRequired() *ObjectSchema {
	sh := NewShape()
	for _, k := range s.shape.keys {
		sh = sh.set(k, deepRequiredNode(unwrapOptional(s.shape.fields[k])))
	}
	return &ObjectSchema{shape: sh, policy: s.policy}
}

func unwrapOptional(s Schema) Schema {
	if opt, ok := s.(*OptionalSchema); ok {
		return opt.Inner()
	}
	return s
}

func deepPartialNode(s Schema) Schema {
	switch t := s.(type) {
	case *ObjectSchema:
		return t.DeepPartial()
	case *ArraySchema:
		c := t.clone()
		c.item = deepPartialItem(t.item)
		return c
	default:
		return s
	}
}

// deepPartialItem transforms an array's element schema without wrapping it in
// Optional: array elements are never "missing", only object fields are.
func deepPartialItem(s Schema) Schema {
	switch t := unwrapOptional(s).(type) {
	case *ObjectSchema:
		return t.DeepPartial()
	case *ArraySchema:
		c := t.clone()
		c.item = deepPartialItem(t.item)
		return c
	default:
		return s
	}
}

func deepRequiredNode(s Schema) Schema {
	switch t := s.(type) {
	case *ObjectSchema:
		return t.DeepRequired()
	case *ArraySchema:
		c := t.clone()
		c.item = deepRequiredNode(unwrapOptional(t.item))
		return c
	default:
		return s
	}
}
