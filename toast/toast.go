// Package toast is the fire-and-forget notification sink the stores and state
// containers report through. The core never reads toast state back.
package toast

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mediancode/apidesign/types"
)

// DefaultDuration applies when a caller passes a zero duration.
const DefaultDuration = 4 * time.Second

// Sink receives notifications.
type Sink interface {
	Show(message string, kind types.ToastKind, duration time.Duration)
}

// Recorder keeps every toast for inspection. Used by tests and the CLI.
type Recorder struct {
	Toasts []types.Toast
}

func (r *Recorder) Show(message string, kind types.ToastKind, duration time.Duration) {
	if duration == 0 {
		duration = DefaultDuration
	}
	r.Toasts = append(r.Toasts, types.Toast{
		ID:       uuid.New().String(),
		Message:  message,
		Kind:     kind,
		Duration: duration,
	})
}

// Last returns the most recent toast, or nil.
func (r *Recorder) Last() *types.Toast {
	if len(r.Toasts) == 0 {
		return nil
	}
	return &r.Toasts[len(r.Toasts)-1]
}

// Logger forwards toasts to a zerolog logger.
type Logger struct {
	Log zerolog.Logger
}

func (l *Logger) Show(message string, kind types.ToastKind, duration time.Duration) {
	ev := l.Log.Info()
	if kind == types.ToastError {
		ev = l.Log.Error()
	}
	ev.Str("kind", string(kind)).Msg(message)
}

// Discard drops every toast.
type Discard struct{}

func (Discard) Show(string, types.ToastKind, time.Duration) {}
