package valdix

import (
	"encoding/json"
	"math"
	"math/big"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ---------------- string ----------------

// StringRuleKind tags one atomic string rule. Rules are data, not behavior:
// the evaluator switches over the kind in declaration order.
type StringRuleKind int

const (
	StringRuleMin StringRuleKind = iota
	StringRuleMax
	StringRuleLength
	StringRuleRegex
	StringRuleEmail
	StringRuleURL
	StringRuleUUID
	StringRuleDatetime
	StringRuleSlug
	StringRuleCUID
	StringRuleStartsWith
	StringRuleEndsWith
	StringRuleContains
	StringRuleTrim
	StringRuleLowercase
	StringRuleUppercase
)

// StringRule is one atomic constraint or normalization on a string value.
type StringRule struct {
	Kind    StringRuleKind
	N       int            // Min/Max/Length bound.
	Pattern *regexp.Regexp // Regex rule, compiled once at construction.
	Value   string         // StartsWith/EndsWith/Contains operand.
}

// StringSchema validates string inputs against an ordered rule list.
type StringSchema struct {
	rules []StringRule
}

// String returns a new string schema with no rules.
func String() *StringSchema { return &StringSchema{} }

func (s *StringSchema) Kind() Kind { return KindString }

// Rules returns a copy of the rule list for read-only reflection.
func (s *StringSchema) Rules() []StringRule {
	out := make([]StringRule, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *StringSchema) with(r StringRule) *StringSchema {
	rules := make([]StringRule, 0, len(s.rules)+1)
	rules = append(rules, s.rules...)
	rules = append(rules, r)
	return &StringSchema{rules: rules}
}

func (s *StringSchema) Min(n int) *StringSchema { return s.with(StringRule{Kind: StringRuleMin, N: n}) }
func (s *StringSchema) Max(n int) *StringSchema { return s.with(StringRule{Kind: StringRuleMax, N: n}) }
func (s *StringSchema) Length(n int) *StringSchema {
	return s.with(StringRule{Kind: StringRuleLength, N: n})
}

// Regex adds a pattern rule. The expression is compiled here, once; Go
// regexps carry no matching state, so a single compiled pattern is safe for
// concurrent reuse across parses.
func (s *StringSchema) Regex(expr string) *StringSchema {
	return s.with(StringRule{Kind: StringRuleRegex, Pattern: regexp.MustCompile(expr)})
}

func (s *StringSchema) Email() *StringSchema    { return s.with(StringRule{Kind: StringRuleEmail}) }
func (s *StringSchema) URL() *StringSchema      { return s.with(StringRule{Kind: StringRuleURL}) }
func (s *StringSchema) UUID() *StringSchema     { return s.with(StringRule{Kind: StringRuleUUID}) }
func (s *StringSchema) Datetime() *StringSchema { return s.with(StringRule{Kind: StringRuleDatetime}) }
func (s *StringSchema) Slug() *StringSchema     { return s.with(StringRule{Kind: StringRuleSlug}) }
func (s *StringSchema) CUID() *StringSchema     { return s.with(StringRule{Kind: StringRuleCUID}) }
func (s *StringSchema) StartsWith(v string) *StringSchema {
	return s.with(StringRule{Kind: StringRuleStartsWith, Value: v})
}
func (s *StringSchema) EndsWith(v string) *StringSchema {
	return s.with(StringRule{Kind: StringRuleEndsWith, Value: v})
}
func (s *StringSchema) Contains(v string) *StringSchema {
	return s.with(StringRule{Kind: StringRuleContains, Value: v})
}

// Trim, Lowercase and Uppercase are normalization rules: they rewrite the
// value at their position in the rule order and never emit issues.
func (s *StringSchema) Trim() *StringSchema      { return s.with(StringRule{Kind: StringRuleTrim}) }
func (s *StringSchema) Lowercase() *StringSchema { return s.with(StringRule{Kind: StringRuleLowercase}) }
func (s *StringSchema) Uppercase() *StringSchema { return s.with(StringRule{Kind: StringRuleUppercase}) }

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	cuidPattern  = regexp.MustCompile(`^c[0-9a-z]{24}$`)
)

func (s *StringSchema) eval(v any, p *ParseContext) (any, bool) {
	str, ok := v.(string)
	if !ok {
		invalidType(p, "string", v)
		return nil, false
	}
	before := len(p.issues)
	for _, r := range s.rules {
		switch r.Kind {
		case StringRuleTrim:
			str = strings.TrimSpace(str)
			continue
		case StringRuleLowercase:
			str = strings.ToLower(str)
			continue
		case StringRuleUppercase:
			str = strings.ToUpper(str)
			continue
		}
		if iss, bad := checkStringRule(str, r); bad {
			p.AddIssue(iss)
			if p.abortEarly {
				return nil, false
			}
		}
	}
	return str, len(p.issues) == before
}

func checkStringRule(str string, r StringRule) (Issue, bool) {
	switch r.Kind {
	case StringRuleMin:
		if len([]rune(str)) < r.N {
			return Issue{Code: CodeTooSmall, Minimum: numPtr(float64(r.N)), Inclusive: true}, true
		}
	case StringRuleMax:
		if len([]rune(str)) > r.N {
			return Issue{Code: CodeTooBig, Maximum: numPtr(float64(r.N)), Inclusive: true}, true
		}
	case StringRuleLength:
		if len([]rune(str)) != r.N {
			return Issue{Code: CodeInvalidString, Validation: "length"}, true
		}
	case StringRuleRegex:
		if !r.Pattern.MatchString(str) {
			return Issue{Code: CodeInvalidString, Validation: "regex"}, true
		}
	case StringRuleEmail:
		if !emailPattern.MatchString(str) {
			return Issue{Code: CodeInvalidString, Validation: "email"}, true
		}
	case StringRuleURL:
		u, err := url.Parse(str)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Issue{Code: CodeInvalidString, Validation: "url"}, true
		}
	case StringRuleUUID:
		if _, err := uuid.Parse(str); err != nil {
			return Issue{Code: CodeInvalidString, Validation: "uuid"}, true
		}
	case StringRuleDatetime:
		if _, err := time.Parse(time.RFC3339, str); err != nil {
			return Issue{Code: CodeInvalidString, Validation: "datetime"}, true
		}
	case StringRuleSlug:
		if !slugPattern.MatchString(str) {
			return Issue{Code: CodeInvalidString, Validation: "slug"}, true
		}
	case StringRuleCUID:
		if !cuidPattern.MatchString(str) {
			return Issue{Code: CodeInvalidString, Validation: "cuid"}, true
		}
	case StringRuleStartsWith:
		if !strings.HasPrefix(str, r.Value) {
			return Issue{Code: CodeInvalidString, Validation: "starts_with"}, true
		}
	case StringRuleEndsWith:
		if !strings.HasSuffix(str, r.Value) {
			return Issue{Code: CodeInvalidString, Validation: "ends_with"}, true
		}
	case StringRuleContains:
		if !strings.Contains(str, r.Value) {
			return Issue{Code: CodeInvalidString, Validation: "contains"}, true
		}
	}
	return Issue{}, false
}

// ---------------- number ----------------

// NumberRuleKind tags one atomic number rule.
type NumberRuleKind int

const (
	NumberRuleMin NumberRuleKind = iota
	NumberRuleMax
	NumberRuleInt
	NumberRuleMultipleOf
	NumberRuleFinite
)

// NumberRule is one atomic constraint on a numeric value.
type NumberRule struct {
	Kind      NumberRuleKind
	Bound     float64
	Inclusive bool
}

// NumberSchema validates numeric inputs (float64, the int/uint families, and
// json.Number) and normalizes the output to float64.
type NumberSchema struct {
	rules []NumberRule
}

// Number returns a new number schema with no rules.
func Number() *NumberSchema { return &NumberSchema{} }

func (s *NumberSchema) Kind() Kind { return KindNumber }

// Rules returns a copy of the rule list for read-only reflection.
func (s *NumberSchema) Rules() []NumberRule {
	out := make([]NumberRule, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *NumberSchema) with(r NumberRule) *NumberSchema {
	rules := make([]NumberRule, 0, len(s.rules)+1)
	rules = append(rules, s.rules...)
	rules = append(rules, r)
	return &NumberSchema{rules: rules}
}

func (s *NumberSchema) Min(v float64) *NumberSchema {
	return s.with(NumberRule{Kind: NumberRuleMin, Bound: v, Inclusive: true})
}
func (s *NumberSchema) Max(v float64) *NumberSchema {
	return s.with(NumberRule{Kind: NumberRuleMax, Bound: v, Inclusive: true})
}
func (s *NumberSchema) Gt(v float64) *NumberSchema {
	return s.with(NumberRule{Kind: NumberRuleMin, Bound: v})
}
func (s *NumberSchema) Lt(v float64) *NumberSchema {
	return s.with(NumberRule{Kind: NumberRuleMax, Bound: v})
}
func (s *NumberSchema) Int() *NumberSchema { return s.with(NumberRule{Kind: NumberRuleInt}) }
func (s *NumberSchema) MultipleOf(v float64) *NumberSchema {
	return s.with(NumberRule{Kind: NumberRuleMultipleOf, Bound: v})
}
func (s *NumberSchema) Finite() *NumberSchema { return s.with(NumberRule{Kind: NumberRuleFinite}) }

func (s *NumberSchema) Positive() *NumberSchema    { return s.Gt(0) }
func (s *NumberSchema) Negative() *NumberSchema    { return s.Lt(0) }
func (s *NumberSchema) Nonnegative() *NumberSchema { return s.Min(0) }
func (s *NumberSchema) Nonpositive() *NumberSchema { return s.Max(0) }

// asFloat widens any supported numeric input to float64.
func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func (s *NumberSchema) eval(v any, p *ParseContext) (any, bool) {
	f, ok := asFloat(v)
	if !ok {
		invalidType(p, "number", v)
		return nil, false
	}
	before := len(p.issues)
	for _, r := range s.rules {
		var iss Issue
		bad := false
		switch r.Kind {
		case NumberRuleMin:
			if f < r.Bound || (!r.Inclusive && f == r.Bound) {
				iss = Issue{Code: CodeTooSmall, Minimum: numPtr(r.Bound), Inclusive: r.Inclusive}
				bad = true
			}
		case NumberRuleMax:
			if f > r.Bound || (!r.Inclusive && f == r.Bound) {
				iss = Issue{Code: CodeTooBig, Maximum: numPtr(r.Bound), Inclusive: r.Inclusive}
				bad = true
			}
		case NumberRuleInt:
			if math.Trunc(f) != f || math.IsInf(f, 0) || math.IsNaN(f) {
				iss = Issue{Code: CodeInvalidNumber, Validation: "integer"}
				bad = true
			}
		case NumberRuleMultipleOf:
			if r.Bound == 0 || math.Abs(math.Mod(f, r.Bound)) > 1e-9 {
				iss = Issue{Code: CodeInvalidNumber, Validation: "multiple_of"}
				bad = true
			}
		case NumberRuleFinite:
			if math.IsInf(f, 0) || math.IsNaN(f) {
				iss = Issue{Code: CodeInvalidNumber, Validation: "finite"}
				bad = true
			}
		}
		if bad {
			p.AddIssue(iss)
			if p.abortEarly {
				return nil, false
			}
		}
	}
	return f, len(p.issues) == before
}

// ---------------- bigint ----------------

// BigIntRuleKind tags one atomic bigint rule.
type BigIntRuleKind int

const (
	BigIntRuleMin BigIntRuleKind = iota
	BigIntRuleMax
)

// BigIntRule is one atomic constraint on a big integer value.
type BigIntRule struct {
	Kind      BigIntRuleKind
	Bound     *big.Int
	Inclusive bool
}

// BigIntSchema validates arbitrary-precision integers. It accepts *big.Int,
// the int/uint families, and integral json.Number values; output is always a
// fresh *big.Int.
type BigIntSchema struct {
	rules []BigIntRule
}

// BigInt returns a new bigint schema with no rules.
func BigInt() *BigIntSchema { return &BigIntSchema{} }

func (s *BigIntSchema) Kind() Kind { return KindBigInt }

// Rules returns a copy of the rule list for read-only reflection.
func (s *BigIntSchema) Rules() []BigIntRule {
	out := make([]BigIntRule, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *BigIntSchema) with(r BigIntRule) *BigIntSchema {
	rules := make([]BigIntRule, 0, len(s.rules)+1)
	rules = append(rules, s.rules...)
	rules = append(rules, r)
	return &BigIntSchema{rules: rules}
}

func (s *BigIntSchema) Min(v *big.Int) *BigIntSchema {
	return s.with(BigIntRule{Kind: BigIntRuleMin, Bound: new(big.Int).Set(v), Inclusive: true})
}
func (s *BigIntSchema) Max(v *big.Int) *BigIntSchema {
	return s.with(BigIntRule{Kind: BigIntRuleMax, Bound: new(big.Int).Set(v), Inclusive: true})
}
func (s *BigIntSchema) Positive() *BigIntSchema {
	return s.with(BigIntRule{Kind: BigIntRuleMin, Bound: big.NewInt(0)})
}
func (s *BigIntSchema) Negative() *BigIntSchema {
	return s.with(BigIntRule{Kind: BigIntRuleMax, Bound: big.NewInt(0)})
}
func (s *BigIntSchema) Nonnegative() *BigIntSchema { return s.Min(big.NewInt(0)) }

func asBigInt(v any) (*big.Int, bool) {
	switch t := v.(type) {
	case *big.Int:
		return new(big.Int).Set(t), true
	case int:
		return big.NewInt(int64(t)), true
	case int64:
		return big.NewInt(t), true
	case uint64:
		return new(big.Int).SetUint64(t), true
	case json.Number:
		b, ok := new(big.Int).SetString(t.String(), 10)
		return b, ok
	default:
		return nil, false
	}
}

func (s *BigIntSchema) eval(v any, p *ParseContext) (any, bool) {
	b, ok := asBigInt(v)
	if !ok {
		switch v.(type) {
		case json.Number, float64:
			p.AddIssue(Issue{Code: CodeInvalidBigInt})
		default:
			invalidType(p, "bigint", v)
		}
		return nil, false
	}
	before := len(p.issues)
	for _, r := range s.rules {
		cmp := b.Cmp(r.Bound)
		switch r.Kind {
		case BigIntRuleMin:
			if cmp < 0 || (!r.Inclusive && cmp == 0) {
				f, _ := new(big.Float).SetInt(r.Bound).Float64()
				p.AddIssue(Issue{Code: CodeTooSmall, Minimum: numPtr(f), Inclusive: r.Inclusive})
				if p.abortEarly {
					return nil, false
				}
			}
		case BigIntRuleMax:
			if cmp > 0 || (!r.Inclusive && cmp == 0) {
				f, _ := new(big.Float).SetInt(r.Bound).Float64()
				p.AddIssue(Issue{Code: CodeTooBig, Maximum: numPtr(f), Inclusive: r.Inclusive})
				if p.abortEarly {
					return nil, false
				}
			}
		}
	}
	return b, len(p.issues) == before
}

// ---------------- bool ----------------

// BoolSchema validates bool inputs.
type BoolSchema struct{}

// Bool returns the bool schema.
func Bool() *BoolSchema { return &BoolSchema{} }

func (s *BoolSchema) Kind() Kind { return KindBool }

func (s *BoolSchema) eval(v any, p *ParseContext) (any, bool) {
	b, ok := v.(bool)
	if !ok {
		invalidType(p, "bool", v)
		return nil, false
	}
	return b, true
}

// ---------------- date ----------------

// DateRuleKind tags one atomic date rule.
type DateRuleKind int

const (
	DateRuleMin DateRuleKind = iota
	DateRuleMax
)

// DateRule is one atomic constraint on a time value.
type DateRule struct {
	Kind  DateRuleKind
	Bound time.Time
}

// DateSchema validates time.Time inputs. With Coerce it also accepts RFC 3339
// strings, parsing them before rule checks.
type DateSchema struct {
	rules  []DateRule
	coerce bool
}

// Date returns a new date schema with no rules.
func Date() *DateSchema { return &DateSchema{} }

func (s *DateSchema) Kind() Kind { return KindDate }

// Rules returns a copy of the rule list for read-only reflection.
func (s *DateSchema) Rules() []DateRule {
	out := make([]DateRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Coerces reports whether RFC 3339 string inputs are accepted.
func (s *DateSchema) Coerces() bool { return s.coerce }

func (s *DateSchema) clone() *DateSchema {
	rules := make([]DateRule, 0, len(s.rules)+1)
	rules = append(rules, s.rules...)
	return &DateSchema{rules: rules, coerce: s.coerce}
}

// Coerce accepts RFC 3339 strings in addition to time.Time values.
func (s *DateSchema) Coerce() *DateSchema {
	c := s.clone()
	c.coerce = true
	return c
}

func (s *DateSchema) Min(t time.Time) *DateSchema {
	c := s.clone()
	c.rules = append(c.rules, DateRule{Kind: DateRuleMin, Bound: t})
	return c
}

func (s *DateSchema) Max(t time.Time) *DateSchema {
	c := s.clone()
	c.rules = append(c.rules, DateRule{Kind: DateRuleMax, Bound: t})
	return c
}

func (s *DateSchema) eval(v any, p *ParseContext) (any, bool) {
	var t time.Time
	switch in := v.(type) {
	case time.Time:
		t = in
	case string:
		if !s.coerce {
			invalidType(p, "date", v)
			return nil, false
		}
		parsed, err := time.Parse(time.RFC3339, in)
		if err != nil {
			p.AddIssue(Issue{Code: CodeInvalidDate, Validation: "rfc3339"})
			return nil, false
		}
		t = parsed
	default:
		invalidType(p, "date", v)
		return nil, false
	}
	before := len(p.issues)
	for _, r := range s.rules {
		switch r.Kind {
		case DateRuleMin:
			if t.Before(r.Bound) {
				p.AddIssue(Issue{Code: CodeTooSmall, Minimum: numPtr(float64(r.Bound.Unix())), Inclusive: true, Validation: "date"})
				if p.abortEarly {
					return nil, false
				}
			}
		case DateRuleMax:
			if t.After(r.Bound) {
				p.AddIssue(Issue{Code: CodeTooBig, Maximum: numPtr(float64(r.Bound.Unix())), Inclusive: true, Validation: "date"})
				if p.abortEarly {
					return nil, false
				}
			}
		}
	}
	return t, len(p.issues) == before
}
