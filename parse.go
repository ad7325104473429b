package valdix

import (
	"context"
	"fmt"
)

// ParseOpt bundles per-call parsing options. The zero value inherits the
// process-wide defaults; the last option in a variadic list wins.
type ParseOpt struct {
	// Locale overrides the default message catalog for this call.
	Locale string
	// AbortEarly stops at the first issue (OR-ed with the global default).
	AbortEarly bool
	// ErrorMap overrides messages for this call only; it takes precedence
	// over the global error map and the locale catalogs.
	ErrorMap ErrorMap
}

func pickOpt(opts []ParseOpt) ParseOpt {
	if len(opts) > 0 {
		return opts[len(opts)-1]
	}
	return ParseOpt{}
}

// Result is the discriminated outcome of SafeParse/SafeParseAsync. Exactly
// one of Data (Success true) or Error (Success false) is meaningful.
type Result struct {
	Success bool
	Data    any
	Error   *ValidationError
}

// Parse validates v against s and returns the normalized output, or a
// *ValidationError aggregating every collected issue.
func Parse(s Schema, v any, opts ...ParseOpt) (any, error) {
	p := newParseContext(context.Background(), false, pickOpt(opts))
	return finish(s, v, p)
}

// SafeParse is Parse without the error return convention: it never returns a
// non-nil error through panic or otherwise, only a Result.
func SafeParse(s Schema, v any, opts ...ParseOpt) Result {
	out, err := Parse(s, v, opts...)
	return toResult(out, err)
}

// ParseAsync validates v against s, permitting async refinement and
// preprocess callbacks to run with ctx. Child evaluation order is identical
// to the synchronous path.
func ParseAsync(ctx context.Context, s Schema, v any, opts ...ParseOpt) (any, error) {
	p := newParseContext(ctx, true, pickOpt(opts))
	return finish(s, v, p)
}

// SafeParseAsync is ParseAsync returning a Result instead of an error.
func SafeParseAsync(ctx context.Context, s Schema, v any, opts ...ParseOpt) Result {
	out, err := ParseAsync(ctx, s, v, opts...)
	return toResult(out, err)
}

// ParseAs parses and asserts the output to T. A type mismatch between the
// schema's output and T surfaces as a custom issue, not a panic.
func ParseAs[T any](s Schema, v any, opts ...ParseOpt) (T, error) {
	out, err := Parse(s, v, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := out.(T)
	if !ok {
		var zero T
		iss := Issue{Code: CodeCustom, Message: fmt.Sprintf("schema output %T is not %T", out, zero)}
		return zero, NewValidationError([]Issue{iss})
	}
	return t, nil
}

func finish(s Schema, v any, p *ParseContext) (any, error) {
	out, ok := s.eval(v, p)
	if !ok || len(p.issues) > 0 {
		return nil, NewValidationError(p.issues)
	}
	if IsMissing(out) {
		// A bare optional/undefined at the top level resolves to no value.
		return nil, nil
	}
	return out, nil
}

func toResult(out any, err error) Result {
	if err == nil {
		return Result{Success: true, Data: out}
	}
	ve, _ := AsValidationError(err)
	return Result{Success: false, Error: ve}
}
