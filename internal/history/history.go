// Package history implements the undo/redo log: a bounded stack of
// structural scene snapshots with a debounced coalescing window that folds
// bursts of continuous edits (drags, key-repeat) into single entries.
package history

import (
	"time"

	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

const (
	// DefaultCapacity bounds the undo stack; the oldest snapshot is
	// evicted when a push would exceed it.
	DefaultCapacity = 120
	// DefaultWindow is the coalescing timeout. Every qualifying action
	// inside the window resets it instead of pushing again.
	DefaultWindow = 250 * time.Millisecond
)

// Log is the history engine. All snapshots are deep clones: nothing on
// either stack shares state with the live scene, and restores always hand
// back a fresh clone.
//
// The stack holds past states only; the live scene is never on it. A
// discrete operation therefore calls Commit first and mutates after.
// Bursts call StartCoalesce before each mutation instead: the first call
// pushes the pre-burst state and later calls only re-arm the window, so
// a drag of N move events costs one entry, not N.
type Log struct {
	Capacity int
	Window   time.Duration

	undo []*scene.Scene
	redo []*scene.Scene

	coalescing bool
	// burstMark is the snapshot pushed when the open burst started, kept
	// so CancelCoalesce can retract it.
	burstMark *scene.Scene
	sched     Scheduler
}

// NewLog creates a history log. sched drives the coalescing window; nil
// leaves the window open until EndCoalesce or CancelCoalesce.
func NewLog(sched Scheduler) *Log {
	return &Log{
		Capacity: DefaultCapacity,
		Window:   DefaultWindow,
		sched:    sched,
	}
}

// Commit pushes a snapshot of the given state onto the undo stack and
// discards any redo future.
func (l *Log) Commit(s *scene.Scene) {
	l.undo = append(l.undo, s.Clone())
	if len(l.undo) > l.Capacity {
		l.undo = l.undo[1:]
	}
	l.redo = nil
}

// StartCoalesce opens (or extends) a coalescing burst. The first call
// commits the pre-burst state; every call re-arms the window, during
// which further calls push nothing. Window expiry just closes the burst:
// the post-burst state is live, not stacked, so the burst costs exactly
// one undo entry.
func (l *Log) StartCoalesce(s *scene.Scene) {
	if !l.coalescing {
		l.Commit(s)
		l.coalescing = true
		l.burstMark = l.undo[len(l.undo)-1]
	}
	if l.sched != nil {
		l.sched.Schedule(l.Window, l.expire)
	}
}

// EndCoalesce closes an open burst immediately, keeping its opening
// snapshot, so the next mutation starts a fresh history step. No-op when
// no burst is open.
func (l *Log) EndCoalesce() {
	if !l.coalescing {
		return
	}
	if l.sched != nil {
		l.sched.Cancel()
	}
	l.coalescing = false
	l.burstMark = nil
}

// CancelCoalesce closes an open burst and retracts its opening snapshot,
// for interactions that finished with no net change. The undo stack is
// left as it was before the burst opened. No-op when no burst is open.
func (l *Log) CancelCoalesce() {
	if !l.coalescing {
		return
	}
	if l.sched != nil {
		l.sched.Cancel()
	}
	l.coalescing = false
	if l.burstMark != nil && len(l.undo) > 0 && l.undo[len(l.undo)-1] == l.burstMark {
		l.undo = l.undo[:len(l.undo)-1]
	}
	l.burstMark = nil
}

func (l *Log) expire() {
	l.coalescing = false
	l.burstMark = nil
}

// Coalescing reports whether a burst window is open.
func (l *Log) Coalescing() bool {
	return l.coalescing
}

// Undo pops the most recent snapshot and returns a fresh clone of it,
// pushing the given live state onto the redo stack. An open burst is
// closed first: its opening snapshot is what gets popped, and the
// burst's final state lands on the redo stack via the live-state push.
// ok=false when there is nothing to undo; the live state is then
// untouched.
func (l *Log) Undo(current *scene.Scene) (*scene.Scene, bool) {
	l.EndCoalesce()
	if len(l.undo) == 0 {
		return nil, false
	}
	snap := l.undo[len(l.undo)-1]
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, current.Clone())
	return snap.Clone(), true
}

// Redo pops the most recent redo snapshot and returns a fresh clone,
// pushing the live state onto the undo stack. ok=false when the redo
// stack is empty.
func (l *Log) Redo(current *scene.Scene) (*scene.Scene, bool) {
	if len(l.redo) == 0 {
		return nil, false
	}
	snap := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, current.Clone())
	if len(l.undo) > l.Capacity {
		l.undo = l.undo[1:]
	}
	return snap.Clone(), true
}

// JumpTo truncates the undo stack to [0..index], clears redo, and returns
// a fresh clone of the snapshot at index. Any open burst is closed.
// Out-of-range indexes are rejected with ok=false and leave everything
// untouched.
func (l *Log) JumpTo(index int) (*scene.Scene, bool) {
	if index < 0 || index >= len(l.undo) {
		return nil, false
	}
	l.EndCoalesce()
	snap := l.undo[index]
	l.undo = l.undo[:index+1]
	l.redo = nil
	return snap.Clone(), true
}

// UndoDepth returns the number of undo snapshots.
func (l *Log) UndoDepth() int { return len(l.undo) }

// RedoDepth returns the number of redo snapshots.
func (l *Log) RedoDepth() int { return len(l.redo) }

// CanUndo reports whether an undo snapshot is available.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether a redo snapshot is available.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }
