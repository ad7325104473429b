package valdix

import (
	"fmt"
	"strconv"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by
// convention). The taxonomy is closed: the reporting layer and the locale
// catalogs switch over exactly this set.
const (
	CodeRequired             = "required"
	CodeInvalidType          = "invalid_type"
	CodeInvalidLiteral       = "invalid_literal"
	CodeInvalidEnumValue     = "invalid_enum_value"
	CodeTooSmall             = "too_small"
	CodeTooBig               = "too_big"
	CodeInvalidString        = "invalid_string"
	CodeInvalidNumber        = "invalid_number"
	CodeInvalidBigInt        = "invalid_bigint"
	CodeInvalidDate          = "invalid_date"
	CodeInvalidArray         = "invalid_array"
	CodeInvalidUnion         = "invalid_union"
	CodeInvalidIntersection  = "invalid_intersection"
	CodeInvalidDiscriminator = "invalid_discriminator"
	CodeUnknownKeys          = "unknown_keys"
	CodeInvalidTupleLength   = "invalid_tuple_length"
	CodeInvalidInstance      = "invalid_instance"
	CodeCustom               = "custom"
)

// Issue represents a single validation violation. Path segments are strings
// (object keys) or ints (array/tuple indexes). Code-specific fields are
// omitted from JSON when unset so the wire shape stays minimal.
type Issue struct {
	Code    string `json:"code"`
	Path    []any  `json:"path"`
	Message string `json:"message"`

	// Type / literal / instance mismatches.
	Expected string `json:"expected,omitempty"`
	Received string `json:"received,omitempty"`

	// Bounds (too_small / too_big / invalid_tuple_length).
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	Inclusive bool     `json:"inclusive,omitempty"`

	// Rule kind for invalid_string / invalid_number / invalid_date / invalid_array.
	Validation string `json:"validation,omitempty"`

	// Enum and discriminator alternatives.
	Options []any `json:"options,omitempty"`

	// Discriminator field name (invalid_discriminator).
	Discriminator string `json:"discriminator,omitempty"`

	// Unknown input keys (unknown_keys), sorted.
	Keys []string `json:"keys,omitempty"`

	// Per-branch issue lists (invalid_union).
	UnionIssues [][]Issue `json:"unionIssues,omitempty"`
}

// DotPath renders the issue path as a dot-joined string ("items.2.price").
// The root path renders as "".
func (i Issue) DotPath() string { return JoinPath(i.Path) }

// JoinPath dot-joins a segment list into the canonical lookup key used by
// ValidationError's index.
func JoinPath(path []any) string {
	if len(path) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for n, seg := range path {
		if n > 0 {
			b.WriteByte('.')
		}
		switch s := seg.(type) {
		case string:
			b.WriteString(s)
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			fmt.Fprintf(b, "%v", s)
		}
	}
	return b.String()
}

// SplitPath parses a dot-joined path back into segments; all-digit segments
// become ints so "items.2" addresses the same issue as []any{"items", 2}.
func SplitPath(path string) []any {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	segs := make([]any, 0, len(parts))
	for _, p := range parts {
		if n, err := strconv.Atoi(p); err == nil {
			segs = append(segs, n)
			continue
		}
		segs = append(segs, p)
	}
	return segs
}

// params flattens the code-specific fields into the map handed to locale
// catalog templates.
func (i Issue) params() map[string]any {
	p := map[string]any{}
	if i.Expected != "" {
		p["expected"] = i.Expected
	}
	if i.Received != "" {
		p["received"] = i.Received
	}
	if i.Minimum != nil {
		p["minimum"] = *i.Minimum
	}
	if i.Maximum != nil {
		p["maximum"] = *i.Maximum
	}
	if i.Validation != "" {
		p["validation"] = i.Validation
	}
	if len(i.Options) > 0 {
		p["options"] = i.Options
	}
	if i.Discriminator != "" {
		p["discriminator"] = i.Discriminator
	}
	if len(i.Keys) > 0 {
		p["keys"] = i.Keys
	}
	return p
}

// numPtr is a shorthand for bound fields on issues.
func numPtr(v float64) *float64 { return &v }
