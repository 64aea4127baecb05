package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/BubbleXIV/dashboard-new/internal/domain"
	"github.com/BubbleXIV/dashboard-new/internal/metrics"
)

// Store is the generic collection behind every entity kind. T is the stored
// record type, P its partial (pointer-field) type. construct materializes a
// complete record from a partial; merge overwrites only the fields the
// partial supplies; less defines the kind's list order (nil falls back to
// identifier order, used only for snapshot stability).
//
// Every operation takes the write or read lock for its whole duration, so
// operations on one collection never observe a half-applied record.
type Store[T domain.Record, P any] struct {
	mu        sync.RWMutex
	items     map[string]T
	ids       IDGenerator
	clock     clockwork.Clock
	kind      string
	construct func(id string, now time.Time, partial P) T
	merge     func(existing T, partial P) T
	less      func(a, b T) bool
}

func newStore[T domain.Record, P any](
	kind string,
	ids IDGenerator,
	clock clockwork.Clock,
	construct func(id string, now time.Time, partial P) T,
	merge func(existing T, partial P) T,
	less func(a, b T) bool,
) *Store[T, P] {
	return &Store[T, P]{
		items:     make(map[string]T),
		ids:       ids,
		clock:     clock,
		kind:      kind,
		construct: construct,
		merge:     merge,
		less:      less,
	}
}

// Create materializes the partial into a complete record with a fresh
// identifier and creation timestamp, inserts it, and returns the stored
// record. It always succeeds given a valid partial.
func (s *Store[T, P]) Create(_ context.Context, partial P) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.construct(s.ids.Next(), s.clock.Now().UTC(), partial)
	s.items[record.RecordID()] = record

	metrics.StoreOpsTotal.WithLabelValues(s.kind, "create").Inc()
	metrics.StoreRecordsCurrent.WithLabelValues(s.kind).Set(float64(len(s.items)))
	return record
}

// Get returns the record with the given identifier, or false if absent.
func (s *Store[T, P]) Get(_ context.Context, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics.StoreOpsTotal.WithLabelValues(s.kind, "get").Inc()
	record, ok := s.items[id]
	return record, ok
}

// Update merges the supplied fields onto the existing record. Omitted fields
// keep their prior value; nested documents are replaced whole when supplied.
// Returns false if no record has the given identifier.
func (s *Store[T, P]) Update(_ context.Context, id string, partial P) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.StoreOpsTotal.WithLabelValues(s.kind, "update").Inc()
	existing, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}

	record := s.merge(existing, partial)
	s.items[id] = record
	return record, true
}

// Delete removes the record outright and reports whether it was present.
func (s *Store[T, P]) Delete(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.StoreOpsTotal.WithLabelValues(s.kind, "delete").Inc()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	metrics.StoreRecordsCurrent.WithLabelValues(s.kind).Set(float64(len(s.items)))
	return true
}

// All returns every record in the collection in the kind's list order.
func (s *Store[T, P]) All(_ context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(func(T) bool { return true })
}

// Restore replaces the whole collection with the given records. Used once at
// startup to load a persisted snapshot.
func (s *Store[T, P]) Restore(_ context.Context, records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]T, len(records))
	for _, record := range records {
		s.items[record.RecordID()] = record
	}
	metrics.StoreRecordsCurrent.WithLabelValues(s.kind).Set(float64(len(s.items)))
}

// find returns the first record matching the predicate. With the uniqueness
// invariants of this package there is at most one match, so scan order does
// not matter.
func (s *Store[T, P]) find(match func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.items {
		if match(record) {
			return record, true
		}
	}
	var zero T
	return zero, false
}

// list returns all records matching the predicate in the kind's list order.
// The result is never nil.
func (s *Store[T, P]) list(match func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(match)
}

// collect filters and sorts under an already-held lock.
func (s *Store[T, P]) collect(match func(T) bool) []T {
	records := make([]T, 0, len(s.items))
	for _, record := range s.items {
		if match(record) {
			records = append(records, record)
		}
	}

	if s.less != nil {
		sort.SliceStable(records, func(i, j int) bool { return s.less(records[i], records[j]) })
	} else {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].RecordID() < records[j].RecordID()
		})
	}
	return records
}
