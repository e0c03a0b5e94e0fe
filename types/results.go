package types

import "time"

// DeletionResult reports the outcome of a delete operation. Blocked and
// not-found deletes are routine conditions, not errors, so they travel as
// values. Message and Err are distinct channels: Message carries success
// detail (e.g. how many endpoints a cascade detached), Err carries the reason
// a delete was refused.
type DeletionResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Deleted returns a successful result with an optional detail message.
func Deleted(message string) DeletionResult {
	return DeletionResult{OK: true, Message: message}
}

// DeletionBlocked returns a refused result carrying the blocking reason.
func DeletionBlocked(reason string) DeletionResult {
	return DeletionResult{OK: false, Err: reason}
}

// ToastKind classifies a transient notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

// Toast is a transient UI notification. Not persisted.
type Toast struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Kind     ToastKind     `json:"type"`
	Duration time.Duration `json:"duration"`
}
