package valdix

import (
	"context"
	"fmt"
)

// RefineResult is the explicit tri-state outcome of a refinement callback:
// pass, fail with a message, or fail with a structured issue. Callbacks never
// signal failure by panicking; a panic that does escape one is caught at the
// refinement boundary and converted into a custom issue.
type RefineResult struct {
	failed  bool
	message string
	issue   *Issue
}

// Pass reports a successful refinement.
func Pass() RefineResult { return RefineResult{} }

// Fail reports a failed refinement with a plain message.
func Fail(message string) RefineResult { return RefineResult{failed: true, message: message} }

// FailWith reports a failed refinement with a structured issue. The issue's
// path is treated as a suffix of the current location.
func FailWith(iss Issue) RefineResult { return RefineResult{failed: true, issue: &iss} }

// RefineFunc inspects an already-validated value.
type RefineFunc func(v any) RefineResult

// AsyncRefineFunc is a refinement that may perform I/O; it only runs under
// ParseAsync, which threads the caller's context through.
type AsyncRefineFunc func(ctx context.Context, v any) RefineResult

// RefineSchema runs a predicate over the inner schema's output.
type RefineSchema struct {
	inner   Schema
	fn      RefineFunc
	asyncFn AsyncRefineFunc
}

// Refine wraps s with a synchronous refinement.
func Refine(s Schema, fn RefineFunc) *RefineSchema { return &RefineSchema{inner: s, fn: fn} }

// RefineAsync wraps s with an asynchronous refinement. Evaluating it under
// Parse (rather than ParseAsync) records a custom issue.
func RefineAsync(s Schema, fn AsyncRefineFunc) *RefineSchema {
	return &RefineSchema{inner: s, asyncFn: fn}
}

func (s *RefineSchema) Kind() Kind { return KindRefine }

// Inner returns the wrapped schema.
func (s *RefineSchema) Inner() Schema { return s.inner }

// IsAsync reports whether the refinement requires ParseAsync.
func (s *RefineSchema) IsAsync() bool { return s.asyncFn != nil }

// guard runs fn, converting an escaped panic into a failure result.
func guard(fn func() RefineResult) (res RefineResult) {
	defer func() {
		if r := recover(); r != nil {
			res = FailWith(Issue{Code: CodeCustom, Message: fmt.Sprintf("refinement panicked: %v", r)})
		}
	}()
	return fn()
}

func (s *RefineSchema) eval(v any, p *ParseContext) (any, bool) {
	val, ok := s.inner.eval(v, p)
	if !ok {
		return nil, false
	}
	if IsMissing(val) {
		return val, true
	}
	var res RefineResult
	if s.asyncFn != nil {
		if !p.async {
			p.AddIssue(Issue{Code: CodeCustom, Message: "async refinement requires ParseAsync"})
			return nil, false
		}
		res = guard(func() RefineResult { return s.asyncFn(p.Context(), val) })
	} else {
		res = guard(func() RefineResult { return s.fn(val) })
	}
	if !res.failed {
		return val, true
	}
	if res.issue != nil {
		p.AddIssue(*res.issue)
	} else {
		p.AddIssue(Issue{Code: CodeCustom, Message: res.message})
	}
	return nil, false
}

// RefineContext collects issues from a super-refinement. Paths given to
// AddIssue are suffixes of the current location.
type RefineContext struct {
	p     *ParseContext
	added int
}

// AddIssue records a structured issue. Code defaults to custom when unset.
func (rc *RefineContext) AddIssue(iss Issue) {
	if iss.Code == "" {
		iss.Code = CodeCustom
	}
	rc.p.AddIssue(iss)
	rc.added++
}

// Path returns a copy of the current absolute path.
func (rc *RefineContext) Path() []any { return rc.p.Path() }

// SuperRefineFunc inspects a value and reports any number of issues.
type SuperRefineFunc func(v any, rc *RefineContext)

// AsyncSuperRefineFunc is the ParseAsync-only variant of SuperRefineFunc.
type AsyncSuperRefineFunc func(ctx context.Context, v any, rc *RefineContext)

// SuperRefineSchema runs a multi-issue inspection over the inner output; it
// fails when the callback records at least one issue.
type SuperRefineSchema struct {
	inner   Schema
	fn      SuperRefineFunc
	asyncFn AsyncSuperRefineFunc
}

// SuperRefine wraps s with a synchronous multi-issue refinement.
func SuperRefine(s Schema, fn SuperRefineFunc) *SuperRefineSchema {
	return &SuperRefineSchema{inner: s, fn: fn}
}

// SuperRefineAsync wraps s with an asynchronous multi-issue refinement.
func SuperRefineAsync(s Schema, fn AsyncSuperRefineFunc) *SuperRefineSchema {
	return &SuperRefineSchema{inner: s, asyncFn: fn}
}

func (s *SuperRefineSchema) Kind() Kind { return KindSuperRefine }

// Inner returns the wrapped schema.
func (s *SuperRefineSchema) Inner() Schema { return s.inner }

// IsAsync reports whether the refinement requires ParseAsync.
func (s *SuperRefineSchema) IsAsync() bool { return s.asyncFn != nil }

func (s *SuperRefineSchema) eval(v any, p *ParseContext) (any, bool) {
	val, ok := s.inner.eval(v, p)
	if !ok {
		return nil, false
	}
	if IsMissing(val) {
		return val, true
	}
	rc := &RefineContext{p: p}
	run := func() (err any) {
		defer func() { err = recover() }()
		if s.asyncFn != nil {
			s.asyncFn(p.Context(), val, rc)
		} else {
			s.fn(val, rc)
		}
		return nil
	}
	if s.asyncFn != nil && !p.async {
		p.AddIssue(Issue{Code: CodeCustom, Message: "async refinement requires ParseAsync"})
		return nil, false
	}
	if r := run(); r != nil {
		p.AddIssue(Issue{Code: CodeCustom, Message: fmt.Sprintf("refinement panicked: %v", r)})
		return nil, false
	}
	if rc.added > 0 {
		return nil, false
	}
	return val, true
}

// TransformFunc maps a validated value to a new one. A returned error is
// converted into a custom issue at the transform boundary.
type TransformFunc func(v any) (any, error)

// TransformSchema maps the inner schema's output through a function.
type TransformSchema struct {
	inner Schema
	fn    TransformFunc
}

// Transform wraps s with an output mapping.
func Transform(s Schema, fn TransformFunc) *TransformSchema {
	return &TransformSchema{inner: s, fn: fn}
}

func (s *TransformSchema) Kind() Kind { return KindTransform }

// Inner returns the wrapped schema.
func (s *TransformSchema) Inner() Schema { return s.inner }

func (s *TransformSchema) eval(v any, p *ParseContext) (any, bool) {
	val, ok := s.inner.eval(v, p)
	if !ok {
		return nil, false
	}
	if IsMissing(val) {
		return val, true
	}
	out, err := func() (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("transform panicked: %v", r)
			}
		}()
		return s.fn(val)
	}()
	if err != nil {
		p.AddIssue(Issue{Code: CodeCustom, Message: err.Error()})
		return nil, false
	}
	return out, true
}

// PipelineSchema feeds the output of the first schema into the second.
type PipelineSchema struct {
	in  Schema
	out Schema
}

// Pipe chains two schemas: in validates and produces, out validates the
// produced value.
func Pipe(in, out Schema) *PipelineSchema { return &PipelineSchema{in: in, out: out} }

func (s *PipelineSchema) Kind() Kind { return KindPipeline }

// Stages returns the two stages for read-only reflection.
func (s *PipelineSchema) Stages() (in, out Schema) { return s.in, s.out }

func (s *PipelineSchema) eval(v any, p *ParseContext) (any, bool) {
	val, ok := s.in.eval(v, p)
	if !ok {
		return nil, false
	}
	return s.out.eval(val, p)
}

// PreprocessFunc rewrites the raw input before the inner schema sees it.
type PreprocessFunc func(v any) any

// AsyncPreprocessFunc is the ParseAsync-only variant of PreprocessFunc.
type AsyncPreprocessFunc func(ctx context.Context, v any) any

// PreprocessSchema rewrites the input, then delegates to the inner schema.
type PreprocessSchema struct {
	inner   Schema
	fn      PreprocessFunc
	asyncFn AsyncPreprocessFunc
}

// Preprocess wraps s with an input rewrite.
func Preprocess(s Schema, fn PreprocessFunc) *PreprocessSchema {
	return &PreprocessSchema{inner: s, fn: fn}
}

// PreprocessAsync wraps s with an asynchronous input rewrite.
func PreprocessAsync(s Schema, fn AsyncPreprocessFunc) *PreprocessSchema {
	return &PreprocessSchema{inner: s, asyncFn: fn}
}

func (s *PreprocessSchema) Kind() Kind { return KindPreprocess }

// Inner returns the wrapped schema.
func (s *PreprocessSchema) Inner() Schema { return s.inner }

// IsAsync reports whether the preprocess requires ParseAsync.
func (s *PreprocessSchema) IsAsync() bool { return s.asyncFn != nil }

func (s *PreprocessSchema) eval(v any, p *ParseContext) (any, bool) {
	if s.asyncFn != nil && !p.async {
		p.AddIssue(Issue{Code: CodeCustom, Message: "async preprocess requires ParseAsync"})
		return nil, false
	}
	rewritten, err := func() (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("preprocess panicked: %v", r)
			}
		}()
		if s.asyncFn != nil {
			return s.asyncFn(p.Context(), v), nil
		}
		return s.fn(v), nil
	}()
	if err != nil {
		p.AddIssue(Issue{Code: CodeCustom, Message: err.Error()})
		return nil, false
	}
	return s.inner.eval(rewritten, p)
}
