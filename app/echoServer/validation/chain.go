package validation

import "strings"

const defaultMessage = "Invalid value"

type Rules []*Chain

type step struct {
	// exactly one of these is set
	sanitize func(v string) string
	check    func(val *Validator, v string) bool
	toDate   bool

	message string
}

// Chain is the ordered list of steps for one form field. A failing check
// records an error and the chain carries on, so a field can collect several
// messages.
type Chain struct {
	field    string
	message  string
	optional bool
	steps    []step
}

// Body starts a chain for field. message, when given, is used by every check
// that has no WithMessage of its own.
func Body(field string, message ...string) *Chain {
	c := &Chain{field: field}
	if len(message) > 0 {
		c.message = message[0]
	}
	return c
}

func (c *Chain) Trim() *Chain {
	c.steps = append(c.steps, step{sanitize: strings.TrimSpace})
	return c
}

func (c *Chain) Escape() *Chain {
	c.steps = append(c.steps, step{sanitize: Escape})
	return c
}

// NotEmpty fails on the empty string.
func (c *Chain) NotEmpty() *Chain {
	return c.addCheck(func(val *Validator, v string) bool { return val.tag(v, "required") })
}

// Alphanumeric fails unless the value is one or more ASCII letters or digits.
func (c *Chain) Alphanumeric() *Chain {
	return c.addCheck(func(val *Validator, v string) bool { return v != "" && val.tag(v, "alphanum") })
}

func (c *Chain) ISO8601() *Chain {
	return c.addCheck(func(_ *Validator, v string) bool {
		_, ok := ParseISO8601(v)
		return ok
	})
}

// ToDate stores the parsed date of a valid value in the result.
func (c *Chain) ToDate() *Chain {
	c.steps = append(c.steps, step{toDate: true})
	return c
}

// Optional skips the whole chain when the field is missing or empty.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

// WithMessage sets the message of the most recent check.
func (c *Chain) WithMessage(msg string) *Chain {
	for i := len(c.steps) - 1; i >= 0; i-- {
		if c.steps[i].check != nil {
			c.steps[i].message = msg
			break
		}
	}
	return c
}

func (c *Chain) addCheck(fn func(val *Validator, v string) bool) *Chain {
	c.steps = append(c.steps, step{check: fn})
	return c
}

func (c *Chain) run(val *Validator, res *Result) {
	v := res.values[c.field]
	if c.optional && v == "" {
		return
	}
	for _, s := range c.steps {
		switch {
		case s.sanitize != nil:
			v = s.sanitize(v)
		case s.check != nil:
			if !s.check(val, v) {
				res.Errors = append(res.Errors, FieldError{Field: c.field, Message: c.messageFor(s), Value: v})
			}
		case s.toDate:
			if t, ok := ParseISO8601(v); ok {
				res.dates[c.field] = t
			}
		}
	}
	res.values[c.field] = v
}

func (c *Chain) messageFor(s step) string {
	if s.message != "" {
		return s.message
	}
	if c.message != "" {
		return c.message
	}
	return defaultMessage
}
