// Package store implements the in-process entity storage core: one
// mutex-guarded collection per entity kind with generated identifiers,
// default materialization of partial records, and kind-specific list
// ordering. The store is the single authority for all six record kinds;
// absence is reported as a boolean, never an error. Flat-file persistence
// lives above this package (see internal/app), not inside it.
package store
