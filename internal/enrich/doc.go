// Package enrich expands normalized quote rows into full price records.
//
// The transform is pure apart from guid generation: no store access, no
// shared state, one immutable record per input row.
package enrich
