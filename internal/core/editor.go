// internal/core/editor.go
package core

import (
	"errors"

	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/core/clipboard"
	"github.com/bethropolis/stage/internal/core/cursor"
	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/core/selection"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/types"
)

// ErrNoFilePath is returned when saving a scene that was never given a path.
var ErrNoFilePath = errors.New("no file name")

// Editor is the editing session for one open scene. It owns the scene, its
// undo history and the interaction state (cursor, selection, drag).
// An Editor is driven from a single goroutine.
type Editor struct {
	scene    *scene.Scene
	filePath string
	history  *history.Stack

	cursorManager    *cursor.Manager
	selectionManager *selection.Manager
	clipboardManager *clipboard.Manager
	eventManager     *event.Manager

	tolerance  int
	maxEntries int
	nudgeStep  int
	scrollOff  int

	drag     *dragState // Non-nil while a drag gesture is open
	modified bool       // Scene changed since load or save
}

// NewEditor creates a new Editor for sc using cfg for its settings.
// A nil cfg uses the defaults.
func NewEditor(sc *scene.Scene, cfg *config.Config) *Editor {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	e := &Editor{
		scene:            sc,
		selectionManager: selection.NewManager(),
		clipboardManager: clipboard.NewManager(cfg.Editor.SystemClipboard),
		tolerance:        cfg.History.NullTolerance,
		maxEntries:       cfg.History.MaxEntries,
		nudgeStep:        cfg.Editor.NudgeStep,
		scrollOff:        cfg.Editor.ScrollOff,
	}
	e.cursorManager = cursor.NewManager(e)
	e.history = e.newHistory(sc)
	return e
}

func (e *Editor) newHistory(sc *scene.Scene) *history.Stack {
	return history.NewStack(sc,
		history.WithMaxEntries(e.maxEntries),
		history.WithObserver(history.ObserverFunc(e.onHistoryChanged)),
	)
}

// onHistoryChanged bridges the history observer onto the event bus.
func (e *Editor) onHistoryChanged(canUndo, canRedo bool) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
			CanUndo: canUndo,
			CanRedo: canRedo,
		})
	}
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager, which may be nil.
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// Configure applies settings from a (re)loaded configuration. The null
// tolerance only affects actions created afterwards.
func (e *Editor) Configure(cfg *config.Config) {
	e.SetTolerance(cfg.History.NullTolerance)
	e.nudgeStep = cfg.Editor.NudgeStep
	e.scrollOff = cfg.Editor.ScrollOff
	e.clipboardManager.SetUseSystem(cfg.Editor.SystemClipboard)
	e.cursorManager.ScrollToCursor()
}

// SetTolerance sets the per-axis distance under which moves are null.
func (e *Editor) SetTolerance(n int) {
	if n < 0 {
		n = 0
	}
	if n != e.tolerance {
		logger.InfoTagf("core", "Null tolerance changed %d -> %d", e.tolerance, n)
	}
	e.tolerance = n
}

// Tolerance returns the current null tolerance.
func (e *Editor) Tolerance() int {
	return e.tolerance
}

// Replace swaps in a new scene. History, selection and drag state are
// discarded because old actions refer to entities of the previous scene.
func (e *Editor) Replace(sc *scene.Scene, filePath string) {
	e.scene = sc
	e.filePath = filePath
	e.drag = nil
	e.modified = false
	e.selectionManager.ClearSelection()
	e.history = e.newHistory(sc)
	e.cursorManager.SetPosition(types.Position{})

	logger.InfoTagf("core", "Editing scene %q (%d entities)", sc.Name, sc.Len())
	e.dispatch(event.TypeSceneLoaded, event.SceneLoadedData{
		Name:     sc.Name,
		FilePath: filePath,
		Entities: sc.Len(),
	})
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{})
	e.onHistoryChanged(false, false)
}

// Scene returns the scene being edited.
func (e *Editor) Scene() *scene.Scene {
	return e.scene
}

// FilePath returns the path the scene was loaded from, if any.
func (e *Editor) FilePath() string {
	return e.filePath
}

// SetFilePath records where the scene is saved.
func (e *Editor) SetFilePath(path string) {
	e.filePath = path
}

// IsModified reports whether the scene changed since it was loaded or saved.
func (e *Editor) IsModified() bool {
	return e.modified
}

// Save writes the scene to path, or to FilePath when path is empty, and
// remembers path for later saves.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.filePath
	}
	if path == "" {
		return ErrNoFilePath
	}
	if err := scene.Save(e.scene, path); err != nil {
		return err
	}
	e.filePath = path
	e.modified = false
	return nil
}

// History returns the undo stack.
func (e *Editor) History() *history.Stack {
	return e.history
}

// SceneSize returns the grid dimensions of the scene.
func (e *Editor) SceneSize() (int, int) {
	return e.scene.Width, e.scene.Height
}

// ScrollOff returns the viewport margin kept around the cursor.
func (e *Editor) ScrollOff() int {
	return e.scrollOff
}

// SetViewSize updates the cached view dimensions. Called on resize or before drawing.
func (e *Editor) SetViewSize(width, height int) {
	e.cursorManager.SetViewSize(width, height)
}

// GetViewport returns the grid cell at the top-left of the view.
func (e *Editor) GetViewport() types.Position {
	return e.cursorManager.GetViewport()
}

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.cursorManager.GetPosition()
}

// SetCursor moves the cursor, clamped to the scene.
func (e *Editor) SetCursor(pos types.Position) {
	e.cursorManager.SetPosition(pos)
}

// IsDragging reports whether a drag gesture is open.
func (e *Editor) IsDragging() bool {
	return e.drag != nil
}
