package valdix

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PathStyle selects how Summary renders issue locations.
type PathStyle int

const (
	PathStyleDots  PathStyle = iota // Machine path: "items.2.price".
	PathStyleLabel                  // Humanized: "Items item 3 price".
)

// SummaryOptions tunes ValidationError.Summary.
type SummaryOptions struct {
	// Dedupe collapses issues sharing field, code and message.
	Dedupe bool
	// Limit caps the number of entries (0 means no cap).
	Limit int
	// Style selects dot paths or humanized labels.
	Style PathStyle
}

// SummaryItem is one row of a summarized error report.
type SummaryItem struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var titleCaser = cases.Title(language.English)

// splitWords breaks a snake_case or camelCase segment into lowercase words.
func splitWords(seg string) []string {
	seg = strings.ReplaceAll(seg, "_", " ")
	seg = strings.ReplaceAll(seg, "-", " ")
	var b strings.Builder
	for i, r := range seg {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.Fields(strings.ToLower(b.String()))
}

// Label humanizes a path: snake/camel segments become words, the first word
// is title-cased, and numeric segments render as an "item N" suffix merged
// onto the preceding label (indexes are shown 1-based).
func Label(path []any) string {
	words := make([]string, 0, len(path)*2)
	for _, seg := range path {
		switch t := seg.(type) {
		case int:
			words = append(words, "item", strconv.Itoa(t+1))
		case string:
			words = append(words, splitWords(t)...)
		default:
			words = append(words, fmt.Sprintf("%v", t))
		}
	}
	if len(words) == 0 {
		return ""
	}
	words[0] = titleCaser.String(words[0])
	return strings.Join(words, " ")
}

// Summary renders the issue list as report rows, optionally deduplicated by
// the field+code+message triple and capped at a result count.
func (e *ValidationError) Summary(opts SummaryOptions) []SummaryItem {
	out := make([]SummaryItem, 0, len(e.issues))
	seen := map[string]struct{}{}
	for _, iss := range e.issues {
		field := iss.DotPath()
		if opts.Style == PathStyleLabel {
			field = Label(iss.Path)
		}
		if opts.Dedupe {
			k := field + "\x00" + iss.Code + "\x00" + iss.Message
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, SummaryItem{Field: field, Code: iss.Code, Message: iss.Message})
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}

// FieldError is one field-level entry of a Response.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the API-facing error body derived from a failed parse:
// field-level entries keyed by dot path plus path-less form-level messages.
type Response struct {
	Success    bool         `json:"success"`
	Errors     []FieldError `json:"errors"`
	FormErrors []string     `json:"formErrors,omitempty"`
}

// ResponseOptions tunes ToResponse.
type ResponseOptions struct {
	// Labels renders Field as a humanized label instead of a dot path.
	Labels bool
}

// ToResponse derives field-level and form-level groupings from the issue
// list in a single pass.
func (e *ValidationError) ToResponse(opts ResponseOptions) Response {
	resp := Response{Errors: make([]FieldError, 0, len(e.issues))}
	for _, iss := range e.issues {
		if len(iss.Path) == 0 {
			resp.FormErrors = append(resp.FormErrors, iss.Message)
			continue
		}
		field := iss.DotPath()
		if opts.Labels {
			field = Label(iss.Path)
		}
		resp.Errors = append(resp.Errors, FieldError{Field: field, Code: iss.Code, Message: iss.Message})
	}
	return resp
}

// ProblemDetails is an RFC 9457 problem-details body carrying the field
// errors as an extension member.
type ProblemDetails struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Status int          `json:"status"`
	Detail string       `json:"detail,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

// ProblemDetailsOptions tunes ToProblemDetails.
type ProblemDetailsOptions struct {
	// Type overrides the problem type URI ("about:blank" when empty).
	Type string
	// Status overrides the HTTP status (422 when zero).
	Status int
	// Labels renders field names as humanized labels.
	Labels bool
}

// ToProblemDetails builds an RFC 9457 body from the issue list.
func (e *ValidationError) ToProblemDetails(opts ProblemDetailsOptions) ProblemDetails {
	pd := ProblemDetails{
		Type:   opts.Type,
		Title:  "Validation failed",
		Status: opts.Status,
	}
	if pd.Type == "" {
		pd.Type = "about:blank"
	}
	if pd.Status == 0 {
		pd.Status = 422
	}
	pd.Detail = e.Error()
	resp := e.ToResponse(ResponseOptions{Labels: opts.Labels})
	pd.Errors = resp.Errors
	for _, msg := range resp.FormErrors {
		pd.Errors = append(pd.Errors, FieldError{Code: CodeCustom, Message: msg})
	}
	return pd
}
