// Package validation holds input validation helpers used by the stores and
// state containers before a create or update is attempted.
package validation

import (
	"fmt"
	"strings"
)

// ValidateName rejects empty or whitespace-only entity names. kind names the
// entity for the message ("field", "tag", ...).
func ValidateName(name, kind string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	return nil
}

// NormalizePath ensures an endpoint path begins with "/". Empty input
// normalizes to "/".
func NormalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

// ValidateMethod checks an HTTP method against the supported set.
func ValidateMethod(method string) error {
	switch strings.ToUpper(method) {
	case "GET", "POST", "PUT", "PATCH", "DELETE":
		return nil
	default:
		return fmt.Errorf("unsupported HTTP method: %s", method)
	}
}

// EqualFold reports whether two names collide under the case-insensitive
// uniqueness rule.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
