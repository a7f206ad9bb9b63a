package symtab

import (
	"cmp"
	"fmt"

	"github.com/roach88/symtab/internal/interner"
)

// Resolvable is what a symbol needs from its table: read access to the
// store and the table's identity. Symbols never hold a mutable handle.
type Resolvable interface {
	// Resolve returns the string stored at id.
	Resolve(id interner.ID) (string, error)

	// Identity returns the identity of the backing table.
	Identity() Identity
}

// Symbol is an interned value of domain T. Comparing symbols is O(1).
//
// Symbols are comparable: two symbols of the same Domain value are == iff
// Equal reports true, so they work directly as map keys. Key gives a
// domain-independent map key.
//
// The zero Symbol belongs to no table; it never resolves.
type Symbol[T any] struct {
	id     interner.ID
	domain Domain[T]
	src    Resolvable
}

// Key is a comparable form of a symbol, usable as a map key.
type Key struct {
	ID     interner.ID
	Origin Identity
}

func newSymbol[T any](id interner.ID, d Domain[T], src Resolvable) Symbol[T] {
	return Symbol[T]{id: id, domain: d, src: src}
}

// ID returns the raw identifier with the domain type erased.
func (s Symbol[T]) ID() interner.ID {
	return s.id
}

// Origin returns the identity of the table that minted s.
func (s Symbol[T]) Origin() Identity {
	if s.src == nil {
		return ""
	}
	return s.src.Identity()
}

// Domain returns the domain s was interned under.
func (s Symbol[T]) Domain() Domain[T] {
	return s.domain
}

// IsZero reports whether s is the zero Symbol.
func (s Symbol[T]) IsZero() bool {
	return s.src == nil
}

// Key returns the comparable (ID, Origin) pair for s.
func (s Symbol[T]) Key() Key {
	return Key{ID: s.id, Origin: s.Origin()}
}

// Value resolves s through its originating table and decodes it.
func (s Symbol[T]) Value() (T, error) {
	var zero T
	if s.src == nil {
		return zero, NewInvalidIDError(s.domain.Name(), s.id, fmt.Errorf("zero symbol has no table"))
	}

	str, err := s.src.Resolve(s.id)
	if err != nil {
		return zero, NewInvalidIDError(s.domain.Name(), s.id, err)
	}
	v, err := s.domain.decode(str)
	if err != nil {
		return zero, NewParseError(s.domain.Name(), s.id, str, err)
	}
	return v, nil
}

// Text resolves s and re-encodes the recovered value.
func (s Symbol[T]) Text() (string, error) {
	v, err := s.Value()
	if err != nil {
		return "", err
	}
	return s.domain.encode(v), nil
}

// String implements fmt.Stringer. A symbol that fails to resolve renders
// as "<unresolved symbol #id: reason>" rather than panicking.
func (s Symbol[T]) String() string {
	text, err := s.Text()
	if err != nil {
		return fmt.Sprintf("<unresolved symbol #%d: %v>", s.id, err)
	}
	return text
}

// Equal reports whether s and o have the same ID and the same origin.
func (s Symbol[T]) Equal(o Symbol[T]) bool {
	return s.id == o.id && s.Origin() == o.Origin()
}

// Compare orders symbols by ID, then by origin.
func (s Symbol[T]) Compare(o Symbol[T]) int {
	if c := cmp.Compare(s.id, o.id); c != 0 {
		return c
	}
	return cmp.Compare(s.Origin(), o.Origin())
}

// Hash returns a hash of s computed from its ID alone. Equal symbols
// always hash alike.
func (s Symbol[T]) Hash() uint64 {
	return uint64(s.id)
}
