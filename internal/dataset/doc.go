// Package dataset loads raw used-vehicle listings from a tabular source and
// produces the canonical in-memory table the rest of the application queries.
//
// Loading is a fixed sequence: parse raw rows, drop rows missing any required
// column, drop exact duplicates, rename the raw "long" column to the "lon"
// display alias, and coerce coordinate fields to numbers (dropping rows that
// fail to parse). The resulting Table is immutable; filters downstream always
// build new views.
//
// Sources are pluggable behind the Source interface: CSV, Excel (xlsx), and
// SQLite files are supported, selected by extension via Open. The Cache type
// provides the externally-owned memoization of Load keyed by path identity
// (path, size, mtime); the loader itself stays cache-free and deterministic.
package dataset
