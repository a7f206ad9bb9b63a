package symtab

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Identity names one table for provenance checks.
// It is assigned once at construction and shared by every clone.
type Identity string

// IdentityGenerator produces table identities.
// Implementations must never return the same Identity twice.
type IdentityGenerator interface {
	Generate() Identity
}

// UUIDv7Generator generates time-sortable UUIDv7 identities.
//
// Format: "0192f0c4-6f1e-7b3a-9c41-2d5e8f7a6b10" (36 characters)
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 identity.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() Identity {
	return Identity(uuid.Must(uuid.NewV7()).String())
}

// SequenceGenerator returns identities "<prefix>-1", "<prefix>-2", ...
//
// Used for deterministic traces. Tables only get distinct identities if they
// draw from the same generator instance.
//
// Thread-safety: SequenceGenerator is safe for concurrent use.
type SequenceGenerator struct {
	prefix string
	seq    atomic.Int64
}

// NewSequenceGenerator creates a generator starting at 1.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next identity in sequence.
func (g *SequenceGenerator) Generate() Identity {
	return Identity(fmt.Sprintf("%s-%d", g.prefix, g.seq.Add(1)))
}

// Current returns how many identities have been issued.
func (g *SequenceGenerator) Current() int64 {
	return g.seq.Load()
}
