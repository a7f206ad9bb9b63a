// Package harness runs scripted scenarios against symbol tables.
//
// A scenario builds a set of named tables and domains, executes a list of
// steps against them, checks per-step expectations and final assertions,
// and renders a trace for golden file comparison.
//
// # Scenario Format
//
//	name: cross_table
//	description: "A symbol only resolves on the table that minted it"
//	tables: [a, b]
//	domains:
//	  - { name: word, kind: string }
//	  - { name: port, kind: int }
//	steps:
//	  - { op: intern, table: a, domain: word, value: "hello", bind: h1, expect: { id: 1 } }
//	  - { op: resolve, table: b, symbol: h1, expect: { error: TABLE_MISMATCH } }
//	  - { op: has, table: a, domain: word, value: "toad", expect: { found: false } }
//	  - { op: chars, symbol: h1, expect: { forward: "hello", backward: "olleh" } }
//	assertions:
//	  - { type: cell_count, table: a, count: 2 }
//
// # Operations
//
//   - intern: interns value under domain on table; bind names the symbol
//   - lookup: looks value up without interning; bind names the symbol if found
//   - has: reports whether value is interned under domain
//   - resolve: resolves a bound symbol on table
//   - chars: iterates a bound symbol's characters forward and backward
//
// # Deterministic Testing
//
// Tables are built in declaration order with identities table-1, table-2,
// and so on, so traces are identical across runs.
package harness
