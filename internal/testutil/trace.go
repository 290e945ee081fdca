// Package testutil provides deterministic stand-ins for values that
// normally differ between runs.
package testutil

import (
	"fmt"
	"sync"
)

// FixedTraceID returns the same trace id on every call.
// If id is empty, Generate returns "test-trace-default".
type FixedTraceID struct {
	id string
}

// NewFixedTraceID creates a generator that always returns id.
func NewFixedTraceID(id string) *FixedTraceID {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedTraceID{id: id}
}

// Generate returns the fixed trace id.
func (g *FixedTraceID) Generate() string {
	return g.id
}

// SequenceTraceID returns "trace-1", "trace-2", ... and can be reset so a
// test can replay the same run with identical ids.
//
// Thread-safety: All methods are safe for concurrent use.
type SequenceTraceID struct {
	mu  sync.Mutex
	seq int64
}

// NewSequenceTraceID creates a generator whose first id is "trace-1".
func NewSequenceTraceID() *SequenceTraceID {
	return &SequenceTraceID{}
}

// Generate returns the next id in the sequence.
func (g *SequenceTraceID) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("trace-%d", g.seq)
}

// Reset restarts the sequence at "trace-1".
func (g *SequenceTraceID) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
