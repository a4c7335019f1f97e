package form

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for rows and fields.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues time-sortable UUIDv7 strings.
type UUIDGenerator struct{}

// NewID returns a new UUIDv7.
func (UUIDGenerator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator issues prefix-1, prefix-2, ... and is safe for concurrent
// use. Tests and importers use it for reproducible ids.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator returns a generator starting at prefix-1.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next id in the sequence.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
