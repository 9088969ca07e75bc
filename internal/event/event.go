// internal/event/event.go
package event

import (
	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Editing session events
	TypeHistoryChanged   // Undo/redo availability may have changed
	TypeSceneLoaded      // A scene replaced the current document
	TypeEntityMoved      // An entity moved (drag, nudge, undo or redo)
	TypeSelectionChanged // The selection set changed
	TypeLookupFailed     // Undo/redo could not find an entity

	// Input Events
	TypeKeyPressed // Raw key press event forwarded

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins

	TypeThemeChanged // Fired when the theme is changed
)

func (t Type) String() string {
	switch t {
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeSceneLoaded:
		return "SceneLoaded"
	case TypeEntityMoved:
		return "EntityMoved"
	case TypeSelectionChanged:
		return "SelectionChanged"
	case TypeLookupFailed:
		return "LookupFailed"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	case TypeThemeChanged:
		return "ThemeChanged"
	default:
		return "Unknown"
	}
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// HistoryChangedData mirrors history.Observer.
type HistoryChangedData struct {
	CanUndo bool
	CanRedo bool
}

// SceneLoadedData names the scene now being edited.
type SceneLoadedData struct {
	Name     string
	FilePath string
	Entities int
}

// EntityMovedData describes one entity changing position.
type EntityMovedData struct {
	Key  history.Key
	From types.Position
	To   types.Position
}

// SelectionChangedData carries the selected keys in selection order.
type SelectionChangedData struct {
	Keys []history.Key
}

// LookupFailedData reports an entity an undo or redo could not resolve.
type LookupFailedData struct {
	Op  string
	Key history.Key
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	Name string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
