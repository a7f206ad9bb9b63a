package interner

import (
	"errors"
	"fmt"
)

// ID is the raw, untyped identifier of a stored string.
// An ID uniquely determines a string within the store that issued it.
type ID uint64

// Sentinel is the reserved cell at position 0. It always holds "".
const Sentinel ID = 0

// Marker identifies the logical domain a string was interned under.
// Markers are explicit values chosen by the caller, usually a domain name.
type Marker string

// Interner is a backing store for a symbol table.
//
// Intern must return the same ID for the same string under any marker, and
// distinct IDs for distinct strings. Keeping typing out of the store lets n
// domains with the same string representation share one cell.
type Interner interface {
	// Intern stores val if absent and records m against its cell.
	Intern(val string, m Marker) ID

	// Resolve returns the string stored at id. It returns an
	// *InvalidIDError if the store never issued id.
	Resolve(id ID) (string, error)

	// GetInterned returns the ID of val only if val was interned under m.
	// It never mutates the store.
	GetInterned(val string, m Marker) (ID, bool)
}

// Cell is a read-only snapshot of one stored record.
type Cell struct {
	Value   string   `json:"value"`
	Markers []Marker `json:"markers"`
}

// Inspector is implemented by stores that can report their contents.
type Inspector interface {
	// Len returns the number of cells, including the sentinel.
	Len() int

	// Cells returns a snapshot of every cell in ID order.
	Cells() []Cell
}

// ErrInvalidID is matched by every *InvalidIDError.
var ErrInvalidID = errors.New("invalid identifier")

// InvalidIDError reports a Resolve call for an ID the store never issued.
type InvalidIDError struct {
	// ID is the rejected identifier.
	ID ID

	// Len is the number of cells the store held at the time.
	Len int
}

// Error implements the error interface.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%s: id %d not issued by store (cells=%d)", ErrInvalidID, e.ID, e.Len)
}

// Is reports whether target is ErrInvalidID.
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}
