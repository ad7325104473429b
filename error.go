package valdix

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ValidationError aggregates the issues collected by one failed parse. It is
// immutable after construction; the path index is built lazily on first
// lookup and reused for subsequent Find/FindAll/Contains calls.
type ValidationError struct {
	issues []Issue

	once  sync.Once
	index map[string][]Issue
}

// NewValidationError wraps an issue list. The slice is owned by the error
// afterwards; callers must not mutate it.
func NewValidationError(issues []Issue) *ValidationError {
	return &ValidationError{issues: issues}
}

// Error summarizes the first few issues, teacher-style: "code at path; ...".
func (e *ValidationError) Error() string {
	if e == nil || len(e.issues) == 0 {
		return "validation failed"
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(e.issues)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := e.issues[i]
		p := it.DotPath()
		if p == "" {
			p = "(root)"
		}
		fmt.Fprintf(b, "%s at %s", it.Code, p)
	}
	if n := len(e.issues); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Issues returns the collected issues in emission order. The returned slice
// is a copy; the aggregate stays immutable.
func (e *ValidationError) Issues() []Issue {
	out := make([]Issue, len(e.issues))
	copy(out, e.issues)
	return out
}

// Len returns the number of collected issues.
func (e *ValidationError) Len() int { return len(e.issues) }

func (e *ValidationError) buildIndex() {
	e.once.Do(func() {
		e.index = make(map[string][]Issue, len(e.issues))
		for _, iss := range e.issues {
			k := iss.DotPath()
			e.index[k] = append(e.index[k], iss)
		}
	})
}

// keyFor accepts either a dot-joined string path or an explicit segment list.
func keyFor(path any) string {
	switch p := path.(type) {
	case string:
		return JoinPath(SplitPath(p))
	case []any:
		return JoinPath(p)
	case []string:
		segs := make([]any, len(p))
		for i, s := range p {
			segs[i] = s
		}
		return JoinPath(segs)
	default:
		return fmt.Sprintf("%v", p)
	}
}

// Find returns the first issue recorded at path, or nil. Path may be a
// dot-joined string or a segment slice.
func (e *ValidationError) Find(path any) *Issue {
	e.buildIndex()
	if got := e.index[keyFor(path)]; len(got) > 0 {
		iss := got[0]
		return &iss
	}
	return nil
}

// FindAll returns every issue recorded at path in emission order.
func (e *ValidationError) FindAll(path any) []Issue {
	e.buildIndex()
	got := e.index[keyFor(path)]
	out := make([]Issue, len(got))
	copy(out, got)
	return out
}

// Contains reports whether any issue was recorded at path.
func (e *ValidationError) Contains(path any) bool {
	e.buildIndex()
	return len(e.index[keyFor(path)]) > 0
}

// Flattened is the legacy grouping: path-less issues land in FormErrors,
// everything else is keyed by dot path.
type Flattened struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// Flatten groups issue messages by field in a single pass.
func (e *ValidationError) Flatten() Flattened {
	out := Flattened{FieldErrors: map[string][]string{}}
	for _, iss := range e.issues {
		if len(iss.Path) == 0 {
			out.FormErrors = append(out.FormErrors, iss.Message)
			continue
		}
		k := iss.DotPath()
		out.FieldErrors[k] = append(out.FieldErrors[k], iss.Message)
	}
	return out
}

// AsValidationError extracts a *ValidationError using errors.As internally.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
