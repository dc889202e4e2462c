package validation

import (
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New()}
}

// Check runs every chain of rules against form, in order. Sanitized values
// replace the submitted ones in the result; untouched fields pass through.
func (v *Validator) Check(rules Rules, form url.Values) *Result {
	res := &Result{
		values: make(map[string]string, len(form)),
		dates:  map[string]time.Time{},
	}
	for k := range form {
		res.values[k] = form.Get(k)
	}
	for _, c := range rules {
		c.run(v, res)
	}
	return res
}

func (v *Validator) tag(value, tag string) bool {
	return v.v.Var(value, tag) == nil
}

type FieldError struct {
	Field   string
	Message string
	Value   string
}

type Result struct {
	Errors []FieldError
	values map[string]string
	dates  map[string]time.Time
}

func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// Value is the field after sanitizing, or the raw submission for fields no
// rule touched.
func (r *Result) Value(field string) string { return r.values[field] }

// Date is the parsed value of a field that went through ToDate, nil when the
// field was empty or invalid.
func (r *Result) Date(field string) *time.Time {
	t, ok := r.dates[field]
	if !ok {
		return nil
	}
	return &t
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape replaces markup-significant characters with HTML entities.
func Escape(s string) string { return escaper.Replace(s) }

var isoLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
}

// ParseISO8601 accepts a calendar date, optionally followed by a time of day
// and zone offset.
func ParseISO8601(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
