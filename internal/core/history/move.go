package history

import (
	"errors"
	"fmt"

	"github.com/bethropolis/stage/internal/types"
)

// DefaultNullTolerance is the per-axis distance, in grid units, under which
// a move is treated as jitter and kept out of the visible history.
const DefaultNullTolerance = 2

// MoveAction records one entity moving from an origin to a final position.
type MoveAction struct {
	origin    Snapshot
	final     Snapshot
	tolerance int
}

// MoveOption configures a MoveAction.
type MoveOption func(*MoveAction)

// WithTolerance overrides DefaultNullTolerance. Negative values mean zero.
func WithTolerance(n int) MoveOption {
	return func(m *MoveAction) {
		if n < 0 {
			n = 0
		}
		m.tolerance = n
	}
}

// NewMoveAction records target moving from one position to another.
// Only target's key is kept; the entity itself is not referenced.
func NewMoveAction(target Identifiable, from, to types.Position, opts ...MoveOption) *MoveAction {
	key := target.Key()
	m := &MoveAction{
		origin:    Snapshot{Key: key, Pos: from},
		final:     Snapshot{Key: key, Pos: to},
		tolerance: DefaultNullTolerance,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Origin returns the snapshot taken when the move started.
func (m *MoveAction) Origin() Snapshot { return m.origin }

// Final returns the snapshot of the latest known destination.
func (m *MoveAction) Final() Snapshot { return m.final }

// Key returns the moved entity's identity.
func (m *MoveAction) Key() Key { return m.origin.Key }

// Undo moves the entity back to its origin.
func (m *MoveAction) Undo(loc Locator) error {
	return m.apply(loc, "undo", m.final.Key, m.origin.Pos)
}

// Redo moves the entity to its final position.
func (m *MoveAction) Redo(loc Locator) error {
	return m.apply(loc, "redo", m.origin.Key, m.final.Pos)
}

func (m *MoveAction) apply(loc Locator, op string, key Key, pos types.Position) error {
	h, err := loc.Resolve(key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &LookupError{Op: op, Key: key}
		}
		return fmt.Errorf("%s move %s: %w", op, key, err)
	}
	h.SetPosition(pos)
	return nil
}

// IsExtensionOf reports whether other is a move of the same entity that
// started from the same place. Final positions are ignored.
func (m *MoveAction) IsExtensionOf(other Action) bool {
	o, ok := other.(*MoveAction)
	if !ok || o == nil {
		return false
	}
	return m.origin.Equal(o.origin)
}

// Extend takes over other's destination. The origin never changes, so any
// chain of extensions still undoes to where the drag began.
func (m *MoveAction) Extend(other Action) error {
	if !m.IsExtensionOf(other) {
		return fmt.Errorf("extend move %s with %T: %w", m.origin.Key, other, ErrContractViolation)
	}
	m.final = other.(*MoveAction).final
	return nil
}

// IsNull reports whether the move stays within the tolerance on both axes.
func (m *MoveAction) IsNull() bool {
	dx, dy := m.final.Pos.Sub(m.origin.Pos)
	return abs(dx) <= m.tolerance && abs(dy) <= m.tolerance
}

// Description returns a human-readable description.
func (m *MoveAction) Description() string {
	return fmt.Sprintf("Move %s %v -> %v", m.origin.Key.Kind, m.origin.Pos, m.final.Pos)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
