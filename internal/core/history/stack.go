package history

import (
	"errors"
	"sync"
	"time"

	"github.com/bethropolis/stage/internal/logger"
)

// DefaultMaxEntries bounds the undo sequence when no limit is configured.
const DefaultMaxEntries = 1000

const logTag = "history"

// entry wraps an action with metadata.
type entry struct {
	action    Action
	timestamp time.Time
}

// Entry describes a history entry for menus and the status bar.
type Entry struct {
	Description string
	Timestamp   time.Time
	Null        bool
}

// Stack holds the undo (past) and redo (future) sequences of one document.
// It is not reentrant: actions and observers must not call back into it.
type Stack struct {
	mu sync.Mutex

	past   []*entry // oldest first
	future []*entry // most recently undone last

	locator    Locator
	observer   Observer
	maxEntries int
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithObserver registers the observer notified after every change.
func WithObserver(o Observer) StackOption {
	return func(s *Stack) { s.observer = o }
}

// WithMaxEntries bounds the undo sequence; the oldest entries are evicted.
// Non-positive values select DefaultMaxEntries.
func WithMaxEntries(n int) StackOption {
	return func(s *Stack) {
		if n <= 0 {
			n = DefaultMaxEntries
		}
		s.maxEntries = n
	}
}

// NewStack creates an empty history that applies actions through loc.
func NewStack(loc Locator, opts ...StackOption) *Stack {
	s := &Stack{
		locator:    loc,
		maxEntries: DefaultMaxEntries,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetObserver replaces the observer.
func (s *Stack) SetObserver(o Observer) {
	s.mu.Lock()
	s.observer = o
	s.mu.Unlock()
}

// PushHard records a as a new entry and discards the redo history.
func (s *Stack) PushHard(a Action) {
	if a == nil {
		return
	}
	s.mu.Lock()
	s.pushLocked(a)
	s.mu.Unlock()

	logger.DebugTagf(logTag, "History: Pushed %q. Past: %d", Describe(a), s.UndoCount())
	s.notify()
}

// PushCoalescing merges a into the most recent entry when it continues the
// same edit, and otherwise records it like PushHard. Either way the redo
// history is discarded.
func (s *Stack) PushCoalescing(a Action) {
	if a == nil {
		return
	}
	s.mu.Lock()
	merged := false
	if n := len(s.past); n > 0 {
		top := s.past[n-1]
		if top.action.IsExtensionOf(a) {
			if err := top.action.Extend(a); err != nil {
				logger.ErrorTagf(logTag, "History: Cannot extend %q, recording as new entry: %v", Describe(top.action), err)
			} else {
				top.timestamp = time.Now()
				s.future = nil
				merged = true
			}
		}
	}
	if !merged {
		s.pushLocked(a)
	}
	s.mu.Unlock()

	if merged {
		logger.DebugTagf(logTag, "History: Extended top entry with %q", Describe(a))
	}
	s.notify()
}

func (s *Stack) pushLocked(a Action) {
	s.past = append(s.past, &entry{action: a, timestamp: time.Now()})
	s.future = nil

	if len(s.past) > s.maxEntries {
		excess := len(s.past) - s.maxEntries
		s.past = s.past[excess:]
	}
}

// Undo reverts the most recent non-null entry, discarding null entries on
// the way. It reports whether an entry was undone. A non-nil error lists
// entities that could not be found; the entry still moves to the redo
// sequence.
func (s *Stack) Undo() (bool, error) {
	return s.step("undo", &s.past, &s.future, Action.Undo)
}

// Redo reapplies the most recently undone non-null entry. Failures are
// reported like Undo.
func (s *Stack) Redo() (bool, error) {
	return s.step("redo", &s.future, &s.past, Action.Redo)
}

// step drains null entries from src, applies the first non-null one and
// moves it to dst. Emptiness is checked before every pop.
func (s *Stack) step(op string, src, dst *[]*entry, apply func(Action, Locator) error) (bool, error) {
	s.mu.Lock()
	var found *entry
	dropped := 0
	for len(*src) > 0 {
		last := (*src)[len(*src)-1]
		*src = (*src)[:len(*src)-1]
		if !last.action.IsNull() {
			found = last
			break
		}
		dropped++
	}
	loc := s.locator
	s.mu.Unlock()

	if dropped > 0 {
		logger.DebugTagf(logTag, "History: Discarded %d null entries during %s", dropped, op)
	}
	if found == nil {
		if dropped > 0 {
			s.notify()
		} else {
			logger.DebugTagf(logTag, "History: Nothing to %s.", op)
		}
		return false, nil
	}

	err := apply(found.action, loc)
	if err != nil {
		var lookup *LookupError
		if errors.As(err, &lookup) {
			logger.WarnTagf(logTag, "History: %s of %q incomplete: %v", op, Describe(found.action), err)
		} else {
			logger.ErrorTagf(logTag, "History: %s of %q failed: %v", op, Describe(found.action), err)
		}
	}

	s.mu.Lock()
	*dst = append(*dst, found)
	s.mu.Unlock()

	logger.DebugTagf(logTag, "History: %s %q. Past: %d, Future: %d", op, Describe(found.action), s.UndoCount(), s.RedoCount())
	s.notify()
	return true, err
}

func (s *Stack) notify() {
	s.mu.Lock()
	o := s.observer
	canUndo, canRedo := len(s.past) > 0, len(s.future) > 0
	s.mu.Unlock()

	if o != nil {
		o.OnHistoryChanged(canUndo, canRedo)
	}
}

// Clear empties both sequences. Call this when the document is closed or
// replaced.
func (s *Stack) Clear() {
	s.mu.Lock()
	s.past = nil
	s.future = nil
	s.mu.Unlock()

	logger.DebugTagf(logTag, "History: Cleared.")
	s.notify()
}

// CanUndo returns true if there are entries that can be undone.
func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo returns true if there are entries that can be redone.
func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// UndoCount returns the length of the undo sequence, null entries included.
func (s *Stack) UndoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past)
}

// RedoCount returns the length of the redo sequence.
func (s *Stack) RedoCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future)
}

// PeekUndo describes the entry the next Undo would apply.
func (s *Stack) PeekUndo() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return peek(s.past)
}

// PeekRedo describes the entry the next Redo would apply.
func (s *Stack) PeekRedo() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return peek(s.future)
}

func peek(seq []*entry) (Entry, bool) {
	for i := len(seq) - 1; i >= 0; i-- {
		if !seq[i].action.IsNull() {
			return describe(seq[i]), true
		}
	}
	return Entry{}, false
}

// UndoInfo lists the undo sequence, oldest first.
func (s *Stack) UndoInfo() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return describeAll(s.past)
}

// RedoInfo lists the redo sequence, most recently undone last.
func (s *Stack) RedoInfo() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return describeAll(s.future)
}

func describe(e *entry) Entry {
	return Entry{
		Description: Describe(e.action),
		Timestamp:   e.timestamp,
		Null:        e.action.IsNull(),
	}
}

func describeAll(seq []*entry) []Entry {
	result := make([]Entry, len(seq))
	for i, e := range seq {
		result[i] = describe(e)
	}
	return result
}
