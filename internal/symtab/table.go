package symtab

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/symtab/internal/interner"
)

// Flavor selects the backing store a table is built on.
type Flavor int

const (
	// FlavorArray is the slice-backed store: O(n) intern, O(1) resolve.
	FlavorArray Flavor = iota + 1
)

// String returns the flavor name as accepted by ParseFlavor.
func (f Flavor) String() string {
	switch f {
	case FlavorArray:
		return "array"
	default:
		return fmt.Sprintf("Flavor(%d)", int(f))
	}
}

// ParseFlavor maps a flavor name to a Flavor.
func ParseFlavor(s string) (Flavor, error) {
	switch s {
	case "array":
		return FlavorArray, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFlavor, s)
	}
}

// Option configures a Table.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	generator IdentityGenerator
	form      *norm.Form
}

// WithLogger sets the logger used for table events.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithIdentityGenerator sets the source of the table's identity.
// Defaults to UUIDv7Generator.
func WithIdentityGenerator(g IdentityGenerator) Option {
	return func(c *config) { c.generator = g }
}

// WithNormalization applies a Unicode normalization form to every encoded
// value before it reaches the store, for both intern and lookup. Values
// that are not already in that form resolve to their normalized spelling.
func WithNormalization(form norm.Form) Option {
	return func(c *config) { c.form = &form }
}

// Table mediates typed access to a shared interner and stamps every symbol
// it mints with its identity.
//
// A *Table is a handle: Clone returns another handle on the same store and
// identity. The store lives as long as any handle or symbol references it.
type Table struct {
	shared *shared
}

var (
	_ Resolvable = (*Table)(nil)
	_ Resolvable = (*shared)(nil)
)

type shared struct {
	mu       sync.RWMutex
	store    interner.Interner
	identity Identity
	logger   *slog.Logger
	form     *norm.Form
}

// New creates a table backed by the store the flavor names.
// Returns ErrUnknownFlavor for flavors outside the supported set.
func New(flavor Flavor, opts ...Option) (*Table, error) {
	switch flavor {
	case FlavorArray:
		return FromInterner(interner.NewArray(), opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlavor, flavor)
	}
}

// MustNew is like New but panics on error.
// Use only in tests or with a known flavor constant.
func MustNew(flavor Flavor, opts ...Option) *Table {
	t, err := New(flavor, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// FromInterner creates a table over a caller-provided store. The table
// takes ownership: the store must not be used directly afterwards.
func FromInterner(in interner.Interner, opts ...Option) *Table {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.generator == nil {
		cfg.generator = UUIDv7Generator{}
	}

	return &Table{shared: &shared{
		store:    in,
		identity: cfg.generator.Generate(),
		logger:   cfg.logger,
		form:     cfg.form,
	}}
}

// Clone returns a new handle on the same store and identity.
func (t *Table) Clone() *Table {
	return &Table{shared: t.shared}
}

// Identity implements Resolvable.
func (t *Table) Identity() Identity {
	return t.shared.Identity()
}

// Resolve implements Resolvable. It reads the store without any
// provenance check; typed callers should use the package-level Resolve.
func (t *Table) Resolve(id interner.ID) (string, error) {
	return t.shared.Resolve(id)
}

// Symbols hold the shared state rather than the handle, so symbols minted
// through any clone compare equal with ==.
func (s *shared) Identity() Identity {
	return s.identity
}

func (s *shared) Resolve(id interner.ID) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Resolve(id)
}

// Len returns the number of cells in the store, if the store reports it.
// Returns -1 otherwise.
func (t *Table) Len() int {
	t.shared.mu.RLock()
	defer t.shared.mu.RUnlock()
	if in, ok := t.shared.store.(interner.Inspector); ok {
		return in.Len()
	}
	return -1
}

// Cells returns a snapshot of the store contents. The second result is
// false if the store cannot report its contents.
func (t *Table) Cells() ([]interner.Cell, bool) {
	t.shared.mu.RLock()
	defer t.shared.mu.RUnlock()
	if in, ok := t.shared.store.(interner.Inspector); ok {
		return in.Cells(), true
	}
	return nil, false
}

// key converts a domain value into the string the store sees.
func (t *Table) key(s string) string {
	if t.shared.form != nil {
		return t.shared.form.String(s)
	}
	return s
}

func (t *Table) intern(val string, m interner.Marker) interner.ID {
	t.shared.mu.Lock()
	defer t.shared.mu.Unlock()
	return t.shared.store.Intern(t.key(val), m)
}

func (t *Table) lookup(val string, m interner.Marker) (interner.ID, bool) {
	t.shared.mu.RLock()
	defer t.shared.mu.RUnlock()
	return t.shared.store.GetInterned(t.key(val), m)
}

// Intern stores v under d and returns its symbol.
// Interning the same encoded value again, under any domain, reuses its ID.
// It panics with ErrZeroDomain if d is the zero Domain.
func Intern[T any](t *Table, d Domain[T], v T) Symbol[T] {
	id := t.intern(d.encode(v), d.Marker())
	t.shared.logger.Debug("symbol interned",
		"table", t.Identity(),
		"domain", d.Name(),
		"id", id,
	)
	return newSymbol(id, d, t.shared)
}

// Resolve recovers the value behind sym.
//
// The symbol's origin is checked before the store is read: a symbol minted
// by another table always yields a TABLE_MISMATCH error, even if this table
// holds the same string.
func Resolve[T any](t *Table, sym Symbol[T]) (T, error) {
	var zero T
	if sym.Origin() != t.Identity() {
		t.shared.logger.Warn("symbol resolved against foreign table",
			"table", t.Identity(),
			"origin", sym.Origin(),
			"domain", sym.domain.Name(),
			"id", sym.id,
		)
		return zero, NewMismatchError(t.Identity(), sym.Origin(), sym.domain.Name(), sym.id)
	}

	s, err := t.Resolve(sym.id)
	if err != nil {
		return zero, NewInvalidIDError(sym.domain.Name(), sym.id, err)
	}

	v, err := sym.domain.decode(s)
	if err != nil {
		return zero, NewParseError(sym.domain.Name(), sym.id, s, err)
	}
	return v, nil
}

// GetInterned returns the symbol for v if v was already interned under d.
// It never mutates the store.
func GetInterned[T any](t *Table, d Domain[T], v T) (Symbol[T], bool) {
	if d.IsZero() {
		return Symbol[T]{}, false
	}
	id, ok := t.lookup(d.encode(v), d.Marker())
	if !ok {
		return Symbol[T]{}, false
	}
	return newSymbol(id, d, t.shared), true
}

// HasInterned reports whether v was interned under d.
func HasInterned[T any](t *Table, d Domain[T], v T) bool {
	_, ok := GetInterned(t, d, v)
	return ok
}
