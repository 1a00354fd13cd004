// Package draft persists the annotation document to disk so a crashed or
// closed session can be restored. Saves are debounced: callers schedule a
// save after every committed mutation and only the last schedule within the
// delay window actually writes.
package draft

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/snapmark/internal/scene"
)

// FileName is the fixed draft key inside the draft directory. One draft per
// machine; starting a new session overwrites the previous one on its first
// save.
const FileName = "snapmark-draft.json"

// DefaultDelay is the debounce window between a scheduled save and the
// write.
const DefaultDelay = 2 * time.Second

// Store writes and reads the draft file.
type Store struct {
	path  string
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewStore creates a store rooted at dir. A non-positive delay falls back to
// DefaultDelay.
func NewStore(dir string, delay time.Duration) *Store {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Store{path: filepath.Join(dir, FileName), delay: delay}
}

// Path returns the draft file location.
func (s *Store) Path() string { return s.path }

// Schedule queues doc for writing after the debounce delay. A later call
// replaces the queued document and restarts the delay; the live scene is
// never touched from the timer goroutine because doc is already a copy.
func (s *Store) Schedule(doc scene.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.Save(doc); err != nil {
			log.Printf("draft: autosave failed: %v", err)
		}
	})
}

// Flush cancels any pending debounced save and writes doc immediately.
func (s *Store) Flush(doc scene.Document) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.Save(doc)
}

// Save writes doc atomically: the JSON lands in a uniquely named temp file
// in the same directory and is renamed over the draft, so a reader never
// sees a half-written draft and a failed write leaves the previous one
// intact.
func (s *Store) Save(doc scene.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("draft dir: %w", err)
	}
	tmp := s.path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace draft: %w", err)
	}
	return nil
}

// Load reads the stored draft. A missing file returns an empty document and
// ok=false rather than an error.
func (s *Store) Load() (scene.Document, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return scene.Document{}, false, nil
	}
	if err != nil {
		return scene.Document{}, false, fmt.Errorf("read draft: %w", err)
	}
	var doc scene.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return scene.Document{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return doc, true, nil
}

// Clear removes the draft file, typically after a successful export.
func (s *Store) Clear() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
