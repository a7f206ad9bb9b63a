// Package interner provides the backing stores behind a symbol table.
//
// A store maps a (string, marker) pair to a raw ID and back. Strings are
// stored once no matter how many domains reference them: the marker only
// records which domains have seen a string, it never splits storage.
//
// This package imports nothing internal. Typing and provenance live one
// layer up in symtab.
//
// Key constraints:
//   - ID 0 is the reserved sentinel cell holding the empty string
//   - Stores are append-only; cells are never removed or merged
//   - Stores are not safe for concurrent use on their own
package interner
