// Package symtab provides typed symbol tables over a shared interner.
//
// A Table owns one backing store and mints Symbol[T] handles. A symbol is
// an ID plus a domain plus a reference back to its table, so it compares in
// O(1) and can recover its value without the caller keeping the table at
// hand.
//
// Domains let unrelated value spaces share one store safely:
//
//	users := symtab.StringDomain[UserID]("user")
//	hosts := symtab.StringDomain[Hostname]("host")
//
//	tbl := symtab.MustNew(symtab.FlavorArray)
//	u := symtab.Intern(tbl, users, "alice") // Symbol[UserID]
//	h := symtab.Intern(tbl, hosts, "alice") // Symbol[Hostname]
//
// u and h share a cell in the store but have different Go types, so one
// cannot be passed where the other is expected.
//
// # Provenance
//
// Every table is stamped with an Identity at construction. Resolve checks
// a symbol's origin against the table before reading the store and returns
// a TABLE_MISMATCH error for symbols minted elsewhere.
//
// # Concurrency
//
// The store sits behind a read/write lock: Intern takes it exclusively,
// everything else shares it. Tables are built for a single logical owner;
// the lock keeps accidental overlap memory-safe.
package symtab
