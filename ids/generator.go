// Package ids produces the string identifiers used by every entity-creation
// call site. IDs take the form "{prefix}-{timestamp}-{counter}" and draw from
// one shared monotonic counter, so interleaved calls never collide. The
// generator is seedable for reproducible sequences in tests.
package ids

import (
	"fmt"
	"sync"
	"time"
)

// Generator issues monotonically increasing identifiers. The zero value is
// not usable; construct with New.
type Generator struct {
	mu      sync.Mutex
	counter uint64
	// timeFunc returns the timestamp component in milliseconds.
	// Overridable for testing.
	timeFunc func() int64
	// fixed, when set via Seed, pins the timestamp component.
	fixed *int64
}

// New returns a generator using wall-clock millisecond timestamps.
func New() *Generator {
	return &Generator{
		timeFunc: func() int64 { return time.Now().UnixMilli() },
	}
}

// Seed resets the shared counter and pins the timestamp component so tests
// get reproducible sequences. Passing a negative timestamp unpins it.
func (g *Generator) Seed(counter uint64, timestamp int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = counter
	if timestamp < 0 {
		g.fixed = nil
		return
	}
	g.fixed = &timestamp
}

// Generate returns the next identifier for the given prefix, incrementing the
// shared counter.
func (g *Generator) Generate(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ts := g.timeFunc()
	if g.fixed != nil {
		ts = *g.fixed
	}
	id := fmt.Sprintf("%s-%d-%d", prefix, ts, g.counter)
	g.counter++
	return id
}

// GenerateParamID returns the next identifier with the "param" prefix. It
// shares the counter with Generate, so interleaved calls still produce
// strictly increasing suffixes.
func (g *Generator) GenerateParamID() string {
	return g.Generate("param")
}

// Counter reports the current counter value. Used when loading a workspace to
// advance a fresh generator past previously issued IDs.
func (g *Generator) Counter() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counter
}
