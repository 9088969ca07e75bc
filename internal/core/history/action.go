// Package history provides undo/redo functionality via a coalescing action stack.
package history

import (
	"fmt"

	"github.com/bethropolis/stage/internal/types"
)

// Key names a scene entity independently of where it currently sits.
type Key struct {
	Kind string
	ID   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s", k.Kind, k.ID)
}

// Snapshot is an immutable record of an entity's identity and position.
type Snapshot struct {
	Key Key
	Pos types.Position
}

// SameIdentity reports whether both snapshots describe the same entity,
// regardless of position.
func (s Snapshot) SameIdentity(o Snapshot) bool {
	return s.Key == o.Key
}

// Equal reports whether identity and position both match.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Key == o.Key && s.Pos == o.Pos
}

// Identifiable is a live entity that can name itself.
type Identifiable interface {
	Key() Key
}

// Handle is a resolved, mutable reference to a live entity.
// Handles are only obtained through a Locator and are never kept by actions.
type Handle interface {
	SetPosition(pos types.Position)
}

// Locator resolves identity keys into live handles.
// Resolve returns an error wrapping ErrNotFound when no such entity exists.
type Locator interface {
	Resolve(key Key) (Handle, error)
}

// Action is a single undoable edit.
type Action interface {
	// Undo restores the state from before the action.
	Undo(loc Locator) error

	// Redo reapplies the action.
	Redo(loc Locator) error

	// IsExtensionOf reports whether other continues the same logical edit,
	// so that it can be folded into this action with Extend.
	IsExtensionOf(other Action) bool

	// Extend merges other into the receiver. It returns ErrContractViolation,
	// leaving the receiver untouched, if other is not an extension.
	Extend(other Action) error

	// IsNull reports whether applying the action changes nothing observable.
	IsNull() bool
}

// Describer is implemented by actions that can label themselves for menus
// and the status bar.
type Describer interface {
	Description() string
}

// Describe returns a's description, or a generic label.
func Describe(a Action) string {
	if d, ok := a.(Describer); ok {
		return d.Description()
	}
	return fmt.Sprintf("%T", a)
}

// Observer is notified whenever undo/redo availability may have changed.
type Observer interface {
	OnHistoryChanged(canUndo, canRedo bool)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(canUndo, canRedo bool)

// OnHistoryChanged calls f.
func (f ObserverFunc) OnHistoryChanged(canUndo, canRedo bool) {
	f(canUndo, canRedo)
}
