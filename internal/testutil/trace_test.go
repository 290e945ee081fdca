package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTraceID_ReturnsSameID(t *testing.T) {
	gen := NewFixedTraceID("trace-123")

	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())
}

func TestFixedTraceID_EmptyIDDefault(t *testing.T) {
	gen := NewFixedTraceID("")
	assert.Equal(t, "test-trace-default", gen.Generate())
}

func TestSequenceTraceID_Sequence(t *testing.T) {
	gen := NewSequenceTraceID()

	assert.Equal(t, "trace-1", gen.Generate())
	assert.Equal(t, "trace-2", gen.Generate())

	gen.Reset()
	assert.Equal(t, "trace-1", gen.Generate())
}

func TestSequenceTraceID_ThreadSafe(t *testing.T) {
	gen := NewSequenceTraceID()

	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, dup := seen.LoadOrStore(gen.Generate(), true)
				assert.False(t, dup, "ids must be unique")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "trace-1001", gen.Generate())
}
