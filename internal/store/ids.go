package store

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator issues identifiers that are unique for the process lifetime.
// Callers must treat the values as opaque: no ordering or structure is
// guaranteed.
type IDGenerator interface {
	Next() string
}

// UUIDGenerator issues random UUID strings.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() string { return uuid.NewString() }

// SequenceGenerator issues "prefix-1", "prefix-2", ... and exists for tests
// that need predictable identifiers.
type SequenceGenerator struct {
	Prefix string
	n      atomic.Uint64
}

func (g *SequenceGenerator) Next() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.n.Add(1))
}
