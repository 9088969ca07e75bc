package app

import (
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/statusbar"
	"github.com/bethropolis/stage/internal/theme"
)

// subscribe wires the status bar and screen to editor events.
func (a *App) subscribe() {
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
	a.eventManager.Subscribe(event.TypeSceneLoaded, a.handleSceneLoaded)
	a.eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	a.eventManager.Subscribe(event.TypeLookupFailed, a.handleLookupFailed)
	a.eventManager.Subscribe(event.TypeEntityMoved, a.handleEntityMoved)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

// handleHistoryChanged shows whether a visible undo or redo is available.
// Null entries make the stack non-empty without offering a step, so the
// stack is consulted rather than the event flags.
func (a *App) handleHistoryChanged(e event.Event) bool {
	h := a.editor.History()
	next, canUndo := h.PeekUndo()
	_, canRedo := h.PeekRedo()
	a.statusBar.SetHistoryInfo(statusbar.HistoryInfo{
		CanUndo:  canUndo,
		CanRedo:  canRedo,
		NextUndo: next.Description,
	})
	return false // Not consumed
}

func (a *App) handleSceneLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.SceneLoadedData); ok {
		a.statusBar.SetSceneInfo(data.Name)
		a.statusBar.SetTemporaryMessage("Loaded %q (%d entities)", data.Name, data.Entities)
	}
	return false
}

func (a *App) handleSelectionChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SelectionChangedData); ok {
		a.statusBar.SetSelectionInfo(len(data.Keys))
	}
	return false
}

// handleLookupFailed tells the user an undo or redo skipped an entity that
// no longer exists.
func (a *App) handleLookupFailed(e event.Event) bool {
	if data, ok := e.Data.(event.LookupFailedData); ok {
		a.statusBar.SetWarning("%s skipped %s: no longer in the scene", data.Op, data.Key)
	}
	return false
}

func (a *App) handleEntityMoved(e event.Event) bool {
	if data, ok := e.Data.(event.EntityMovedData); ok {
		logger.DebugTagf("app", "%s moved %v -> %v", data.Key, data.From, data.To)
	}
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	a.tuiManager.SetStyle(a.GetTheme().GetStyle(theme.StyleDefault))
	return false
}
