package valdix

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"
)

// Schema is one immutable validation unit. A schema is built once and may be
// shared across unboundedly many concurrent Parse calls; all per-call state
// lives in the ParseContext.
//
// eval implements both halves of the evaluation protocol: a context created
// by Parse runs fully synchronously, one created by ParseAsync additionally
// permits async refinement/preprocess callbacks to run (threading the
// caller's context.Context to them). Success carries the produced value;
// failure carries nothing — all detail lives in the context's issue list, so
// composites can keep validating siblings after a child fails.
type Schema interface {
	// Kind returns the closed variant tag of this node.
	Kind() Kind

	eval(v any, p *ParseContext) (any, bool)
}

// typeName classifies an input value for invalid_type issues.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case missing:
		return "undefined"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return "number"
	case *big.Int:
		return "bigint"
	case time.Time:
		return "date"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// invalidType records a fatal type mismatch at the node's entry.
func invalidType(p *ParseContext, expected string, v any) {
	p.AddIssue(Issue{Code: CodeInvalidType, Expected: expected, Received: typeName(v)})
}
