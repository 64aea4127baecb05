// Package domain holds the entity types shared across the dashboard: the six
// stored record kinds, their typed partials for create/update, and the roster
// entry consumed by guild reconciliation. It has no behavior beyond small
// accessors and depends on nothing but the standard library.
package domain
