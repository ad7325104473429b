package valdix

import (
	"context"

	"github.com/denisetiya/Valdix/i18n"
)

// ParseContext is the mutable, single-owner state of one top-level parse call
// (or one speculative branch of it). Nodes push and pop path segments around
// recursive descent and append finalized issues; settings are fixed at
// construction and never change mid-parse.
type ParseContext struct {
	ctx   context.Context
	async bool

	path   []any
	issues []Issue

	locale     string
	abortEarly bool
	errorMap   ErrorMap
	globalMap  ErrorMap
}

func newParseContext(ctx context.Context, async bool, opt ParseOpt) *ParseContext {
	cfg := globalConfig
	locale := opt.Locale
	if locale == "" {
		locale = cfg.Locale
	}
	return &ParseContext{
		ctx:        ctx,
		async:      async,
		locale:     locale,
		abortEarly: opt.AbortEarly || cfg.AbortEarly,
		errorMap:   opt.ErrorMap,
		globalMap:  cfg.ErrorMap,
	}
}

// Context returns the context.Context threaded through an async parse. For
// synchronous parses it returns context.Background().
func (p *ParseContext) Context() context.Context {
	if p.ctx == nil {
		return context.Background()
	}
	return p.ctx
}

// Path returns a copy of the current path stack.
func (p *ParseContext) Path() []any {
	out := make([]any, len(p.path))
	copy(out, p.path)
	return out
}

func (p *ParseContext) push(seg any) { p.path = append(p.path, seg) }
func (p *ParseContext) pop()         { p.path = p.path[:len(p.path)-1] }

// AddIssue finalizes and appends an issue. The full path is the current stack
// plus any issue-local suffix; the message is resolved once, at append time,
// through the parse error map, the global error map, the active locale
// catalog, the English catalog, and a generic default, in that order. Later
// context mutations never retroactively alter an appended issue.
func (p *ParseContext) AddIssue(iss Issue) {
	full := make([]any, 0, len(p.path)+len(iss.Path))
	full = append(full, p.path...)
	full = append(full, iss.Path...)
	iss.Path = full
	if iss.Message == "" {
		iss.Message = p.resolveMessage(iss)
	}
	p.issues = append(p.issues, iss)
}

func (p *ParseContext) resolveMessage(iss Issue) string {
	if p.errorMap != nil {
		if msg := p.errorMap(iss); msg != "" {
			return msg
		}
	}
	if p.globalMap != nil {
		if msg := p.globalMap(iss); msg != "" {
			return msg
		}
	}
	return i18n.Message(p.locale, iss.Code, iss.params())
}

// Issues returns the issues collected so far, in emission order.
func (p *ParseContext) Issues() []Issue { return p.issues }

// fork produces a speculative child context sharing settings but owning an
// independent issue list. The path stack is copied so issues recorded on the
// fork already carry absolute paths when the parent absorbs them.
func (p *ParseContext) fork() *ParseContext {
	f := &ParseContext{
		ctx:        p.ctx,
		async:      p.async,
		locale:     p.locale,
		abortEarly: p.abortEarly,
		errorMap:   p.errorMap,
		globalMap:  p.globalMap,
	}
	f.path = append(f.path, p.path...)
	return f
}

// absorb appends a fork's issues to the parent, keeping emission order.
func (p *ParseContext) absorb(f *ParseContext) {
	p.issues = append(p.issues, f.issues...)
}
