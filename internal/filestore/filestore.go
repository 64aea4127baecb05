// Package filestore reads and writes whole-document JSON flat files beneath
// a fixed root directory, addressed by logical name. A missing file reads as
// an empty document; any other failure is surfaced as an I/O error, exactly
// once, with no internal retries.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/BubbleXIV/dashboard-new/internal/metrics"
)

// ErrInvalidName is returned for document names that are empty or would
// resolve outside the root directory.
var ErrInvalidName = errors.New("invalid document name")

// Document is one persisted key-value document.
type Document map[string]json.RawMessage

// Store is the flat-file codec. Concurrent calls on the same name serialize
// on a per-name mutex; writes go to a temp file first and are renamed into
// place, so a reader never observes a partially written document.
type Store struct {
	root  string
	clock clockwork.Clock

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(root string, clock clockwork.Clock) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create file store root: %w", err)
	}
	return &Store{
		root:  root,
		clock: clock,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Read parses the named document. A nonexistent file yields an empty
// document, not an error.
func (s *Store) Read(name string) (Document, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	lock := s.nameLock(name)
	lock.Lock()
	defer lock.Unlock()

	start := s.clock.Now()
	defer func() {
		metrics.FileOpDuration.WithLabelValues("read").Observe(s.clock.Since(start).Seconds())
	}()

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		metrics.FileOpsTotal.WithLabelValues("read", "missing").Inc()
		return Document{}, nil
	}
	if err != nil {
		metrics.FileOpsTotal.WithLabelValues("read", "error").Inc()
		return nil, fmt.Errorf("read document %q: %w", name, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		metrics.FileOpsTotal.WithLabelValues("read", "error").Inc()
		return nil, fmt.Errorf("parse document %q: %w", name, err)
	}
	if doc == nil {
		doc = Document{}
	}

	metrics.FileOpsTotal.WithLabelValues("read", "ok").Inc()
	return doc, nil
}

// Write serializes the document with indented, human-readable formatting and
// replaces the named file atomically (write to temp, then rename).
func (s *Store) Write(name string, doc Document) error {
	if err := validateName(name); err != nil {
		return err
	}

	lock := s.nameLock(name)
	lock.Lock()
	defer lock.Unlock()

	start := s.clock.Now()
	defer func() {
		metrics.FileOpDuration.WithLabelValues("write").Observe(s.clock.Since(start).Seconds())
	}()

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		metrics.FileOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("serialize document %q: %w", name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.root, name+"-*.tmp")
	if err != nil {
		metrics.FileOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("create temp file for %q: %w", name, err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		metrics.FileOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("write document %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		metrics.FileOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("close temp file for %q: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		_ = os.Remove(tmp.Name())
		metrics.FileOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("replace document %q: %w", name, err)
	}

	metrics.FileOpsTotal.WithLabelValues("write", "ok").Inc()
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+".json")
}

func (s *Store) nameLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[name] = lock
	}
	return lock
}

// validateName rejects names that could escape the root directory. Names are
// logical identifiers ("users", "guilds"), never paths.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
