// Package model defines the core data structures for imtricks.
package model

import (
	"fmt"
	"strings"
)

// Severity classifies a toast and selects its accent color.
type Severity int

// Severity levels. Default is the zero value so an unset severity renders neutral.
const (
	SeverityDefault Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityDanger
)

// SeverityNames maps severity levels to human-readable names.
var SeverityNames = map[Severity]string{
	SeverityDefault: "default",
	SeveritySuccess: "success",
	SeverityWarning: "warning",
	SeverityDanger:  "danger",
}

// Severities returns all severity levels in ascending order.
func Severities() []Severity {
	return []Severity{SeverityDefault, SeveritySuccess, SeverityWarning, SeverityDanger}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	if name, ok := SeverityNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of the defined levels.
func (s Severity) Valid() bool {
	_, ok := SeverityNames[s]
	return ok
}

// ParseSeverity parses a severity name (case-insensitive).
// Accepts "error" as an alias for danger and "info" as an alias for default.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "info", "":
		return SeverityDefault, nil
	case "success":
		return SeveritySuccess, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "danger", "error":
		return SeverityDanger, nil
	default:
		return SeverityDefault, fmt.Errorf("invalid severity %q: must be success, warning, danger, or default", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
