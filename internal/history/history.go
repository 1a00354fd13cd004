// Package history provides bounded undo/redo over full deep snapshots of a
// scene's annotation lists. A snapshot is taken once per completed gesture,
// never per intermediate pointer move.
package history

import (
	"log"

	"github.com/example/snapmark/internal/scene"
)

// Depth caps the number of retained snapshots. Pushing past it evicts the
// oldest entry.
const Depth = 20

// Log is a linear history with branch-discard semantics: a new save after an
// undo truncates every entry beyond the current index before appending.
type Log struct {
	entries []scene.Snapshot
	index   int
}

// New returns an empty log. The session owner is expected to save the
// initial scene state as the first entry so the first gesture can be undone.
func New() *Log {
	return &Log{index: -1}
}

// Save records a deep snapshot of s and makes it the current entry,
// discarding any redo tail first and evicting the oldest entry when the
// depth cap is exceeded.
func (l *Log) Save(s *scene.Scene) {
	l.entries = l.entries[:l.index+1]
	l.entries = append(l.entries, s.Snapshot())
	l.index++
	if len(l.entries) > Depth {
		l.entries = l.entries[1:]
		l.index--
	}
}

// Undo steps back one entry and restores it into s. It reports whether a
// restore happened; at the oldest entry it is a logged no-op.
func (l *Log) Undo(s *scene.Scene) bool {
	if l.index <= 0 {
		log.Printf("history: nothing to undo")
		return false
	}
	l.index--
	s.Restore(l.entries[l.index])
	return true
}

// Redo steps forward one entry and restores it into s. It reports whether a
// restore happened; at the newest entry it is a logged no-op.
func (l *Log) Redo(s *scene.Scene) bool {
	if l.index+1 >= len(l.entries) {
		log.Printf("history: nothing to redo")
		return false
	}
	l.index++
	s.Restore(l.entries[l.index])
	return true
}

// Len reports the number of stored entries.
func (l *Log) Len() int { return len(l.entries) }

// Index reports the position of the current entry, -1 when empty.
func (l *Log) Index() int { return l.index }

// CanUndo reports whether Undo would restore an entry.
func (l *Log) CanUndo() bool { return l.index > 0 }

// CanRedo reports whether Redo would restore an entry.
func (l *Log) CanRedo() bool { return l.index+1 < len(l.entries) }
