package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Error collects per-field validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	slices.Sort(keys)

	msgs := make([]string, 0, len(keys))
	for _, field := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// positiveDecimal records an error under field unless value is a positive number.
func positiveDecimal(errors map[string]string, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		errors[field] = field + " is required"
		return
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		errors[field] = field + " not a valid number"
		return
	}
	if !d.IsPositive() {
		errors[field] = field + " must be positive"
	}
}

// date records an error under field unless value is a YYYY-MM-DD date.
func date(errors map[string]string, field, value string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		errors[field] = field + " must be in YYYY-MM-DD format"
	}
}
