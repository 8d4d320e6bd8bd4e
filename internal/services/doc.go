// Package services orchestrates the search flow: load (through the dataset
// cache), filter, aggregate. Every search is a full synchronous recomputation
// from the immutable canonical table; there is no incremental state between
// requests.
package services
