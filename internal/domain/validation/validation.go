package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// NonField is the key for messages that concern the whole record.
const NonField = "non_field_errors"

// Error is a set of field-level validation messages.
type Error struct {
	Fields map[string]string
}

func New(field, message string) *Error {
	e := &Error{}
	e.Add(field, message)
	return e
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, field+": "+message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records the first message for field.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Err returns nil when no message was recorded.
func (e *Error) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Error) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "This field is required.")
	}
}

func (e *Error) MaxLength(field, value string, max int) {
	if len([]rune(value)) > max {
		e.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

func (e *Error) Choice(field, value string, allowed ...string) {
	for _, option := range allowed {
		if value == option {
			return
		}
	}
	e.Add(field, fmt.Sprintf("%q is not a valid choice.", value))
}

func (e *Error) MinFloat(field string, value, min float64) {
	if value < min {
		e.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %g.", min))
	}
}

func (e *Error) MinInt(field string, value, min int) {
	if value < min {
		e.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %d.", min))
	}
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^(?:\+38)?(?:\(0[0-9][0-9]\)[ .-]?[0-9]{3}[ .-]?[0-9]{2}[ .-]?[0-9]{2}|044[ .-]?[0-9]{3}[ .-]?[0-9]{2}[ .-]?[0-9]{2}|0[0-9][0-9][0-9]{7})$`)
)

func (e *Error) Email(field, value string) {
	if !emailPattern.MatchString(value) {
		e.Add(field, "Enter a valid email address.")
	}
}

// Phone accepts Ukrainian numbers with an optional +38 prefix.
func (e *Error) Phone(field, value string) {
	if !phonePattern.MatchString(value) {
		e.Add(field, "Enter a valid phone number.")
	}
}

// Range returns the codes "from".."to" as strings.
func Range(from, to int) []string {
	codes := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		codes = append(codes, fmt.Sprintf("%d", i))
	}
	return codes
}
