// Package valdix is a runtime schema-validation engine: schemas are built
// once as immutable node trees, then verify untyped inputs, producing either
// a normalized output or a structured collection of issues with field paths
// and localized messages.
//
// Schemas compose from three node families: primitives hold ordered rule
// lists (String().Min(2).Email()), composites recurse into child schemas
// (Object, Array, Union, ...), and decorators wrap exactly one inner schema
// (Optional, Default, Refine, ...). Every builder operation returns a new
// node sharing unchanged substructure, so a schema instance is safe to reuse
// across concurrent Parse calls.
//
//	user := valdix.Object().
//		Field("name", valdix.String().Min(2)).
//		Field("age", valdix.Number().Int().Min(0)).
//		Field("nickname", valdix.Optional(valdix.String())).
//		Field("role", valdix.Default(valdix.Enum("admin", "user"), "user"))
//
//	out, err := valdix.Parse(user, map[string]any{"name": "Deni", "age": 25})
//
// Parse and ParseAsync throw-style return a *ValidationError; SafeParse and
// SafeParseAsync return a discriminated Result and never fail loudly. The
// process-wide configuration (default locale, abort-early, error map) is
// read-mostly: set it during startup, before concurrent parsing begins.
package valdix
