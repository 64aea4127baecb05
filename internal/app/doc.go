// Package app is the application layer, the only component that references
// multiple domain components. It orchestrates the entity stores, runs guild
// roster reconciliation, and owns the flat-file snapshot persistence that
// backs the in-memory store across restarts.
package app
