// Package validate holds the client-side field checks run when a field
// loses focus and again when its form is submitted. Checks are pure; the
// only visible effect is the mark each field receives.
package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Mark is the visual state of a field after validation.
type Mark string

const (
	Neutral Mark = ""
	Valid   Mark = "is-valid"
	Invalid Mark = "is-invalid"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`^https?://.+`)
)

// Email reports whether v looks like local@domain.tld.
func Email(v string) bool {
	return emailPattern.MatchString(v)
}

// Port reports whether v is an integer in [1, 65535].
func Port(v string) bool {
	return IntRange(1, 65535)(v)
}

// URL reports whether v starts with http:// or https:// followed by something.
func URL(v string) bool {
	return urlPattern.MatchString(v)
}

// IntRange returns a predicate accepting integers in [min, max].
func IntRange(min, max int) func(string) bool {
	return func(v string) bool {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return false
		}
		return n >= min && n <= max
	}
}

// Rule checks one field.
type Rule struct {
	Field   string
	Check   func(string) bool
	Message string
}

// Result is the outcome of validating a whole form.
type Result struct {
	Errors []string        `json:"errors"`
	Marks  map[string]Mark `json:"marks"`
}

// OK reports whether every rule passed.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Validator runs a fixed rule set.
type Validator struct {
	rules []Rule
}

// New creates a Validator. Rules run in the order given.
func New(rules ...Rule) *Validator {
	return &Validator{rules: rules}
}

// ConfigForm returns the validator for the panel's configuration form.
func ConfigForm() *Validator {
	return New(
		Rule{Field: "fb_email", Check: Email, Message: "Invalid Facebook email"},
		Rule{Field: "proxy_port", Check: Port, Message: "Proxy port must be between 1 and 65535"},
		Rule{Field: "facebook_redirect_uri", Check: URL, Message: "Callback URL must start with http:// or https://"},
		Rule{Field: "browser_timeout", Check: IntRange(1, 300), Message: "Browser timeout must be between 1 and 300 seconds"},
	)
}

// Fields lists the fields the validator has rules for.
func (v *Validator) Fields() []string {
	fields := make([]string, 0, len(v.rules))
	for _, r := range v.rules {
		fields = append(fields, r.Field)
	}
	return fields
}

// Check validates a single field, as done on blur. Fields without a rule,
// and empty values, are Neutral.
func (v *Validator) Check(field, value string) Mark {
	if strings.TrimSpace(value) == "" {
		return Neutral
	}
	mark := Neutral
	for _, r := range v.rules {
		if r.Field != field {
			continue
		}
		if !r.Check(value) {
			return Invalid
		}
		mark = Valid
	}
	return mark
}

// Validate runs every rule against values, as done on submit.
func (v *Validator) Validate(values map[string]string) Result {
	res := Result{Marks: make(map[string]Mark, len(v.rules))}
	for _, r := range v.rules {
		value := values[r.Field]
		if strings.TrimSpace(value) == "" {
			if _, seen := res.Marks[r.Field]; !seen {
				res.Marks[r.Field] = Neutral
			}
			continue
		}
		if r.Check(value) {
			if res.Marks[r.Field] != Invalid {
				res.Marks[r.Field] = Valid
			}
			continue
		}
		res.Marks[r.Field] = Invalid
		res.Errors = append(res.Errors, r.Message)
	}
	return res
}
