package raster

import (
	"fmt"
	"sync/atomic"
)

// Source is an opaque handle to imagery owned outside the engine.
// ID must be stable: two sources with the same ID are treated as the same
// input when expressions are compared or memoized.
type Source interface {
	ID() string
	Load() (*Raster, error)
}

// InMemory serves an already-built Raster.
type InMemory struct {
	id string
	r  *Raster
}

var inMemorySeq atomic.Uint64

// NewInMemory wraps r with a process-unique ID.
func NewInMemory(r *Raster) *InMemory {
	return &InMemory{id: fmt.Sprintf("mem:%d", inMemorySeq.Add(1)), r: r}
}

// NewNamedInMemory wraps r under a caller-chosen ID.
func NewNamedInMemory(id string, r *Raster) *InMemory {
	return &InMemory{id: id, r: r}
}

// ID implements Source.
func (s *InMemory) ID() string { return s.id }

// Load implements Source.
func (s *InMemory) Load() (*Raster, error) {
	if s.r == nil {
		return nil, fmt.Errorf("source %s: %w", s.id, ErrInvalidArgument)
	}

	return s.r, nil
}
