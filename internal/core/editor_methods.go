package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/scene"
)

// Cursor operations delegated to cursorManager
func (e *Editor) MoveCursor(dx, dy int) {
	e.cursorManager.MoveCursor(dx, dy)
	logger.DebugTagf("core", "MoveCursor: Delta(%d,%d) → NewCursor%v", dx, dy, e.GetCursor())
}

func (e *Editor) PageMove(deltaPages int) {
	e.cursorManager.PageMove(deltaPages)
	logger.DebugTagf("core", "PageMove: Delta(%d) → NewCursor%v", deltaPages, e.GetCursor())
}

// --- Selection ---

// SelectAtCursor replaces the selection with the top-most entity under the
// cursor. An empty cell clears the selection.
func (e *Editor) SelectAtCursor() bool {
	ent, ok := e.scene.At(e.GetCursor())
	if !ok {
		e.ClearSelection()
		return false
	}
	e.selectionManager.Select(ent.Key())
	e.selectionChanged()
	return true
}

// ToggleAtCursor adds or removes the entity under the cursor.
func (e *Editor) ToggleAtCursor() bool {
	ent, ok := e.scene.At(e.GetCursor())
	if !ok {
		return false
	}
	e.selectionManager.Toggle(ent.Key())
	e.selectionChanged()
	return true
}

// SelectRef adds the entity named by ref ("kind:id" or bare id) to the
// selection.
func (e *Editor) SelectRef(ref string) error {
	ent, ok := e.scene.Lookup(ref)
	if !ok {
		return fmt.Errorf("select %q: %w", ref, history.ErrNotFound)
	}
	if e.selectionManager.Add(ent.Key()) {
		e.selectionChanged()
	}
	return nil
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	if !e.selectionManager.HasSelection() {
		return
	}
	e.selectionManager.ClearSelection()
	e.selectionChanged()
}

// HasSelection reports whether anything is selected.
func (e *Editor) HasSelection() bool {
	return e.selectionManager.HasSelection()
}

// IsSelected reports whether key is selected.
func (e *Editor) IsSelected(key history.Key) bool {
	return e.selectionManager.Contains(key)
}

// SelectedEntities resolves the selection against the scene. Entities that
// no longer exist are dropped from the selection.
func (e *Editor) SelectedEntities() []*scene.Entity {
	if e.selectionManager.Prune(e.exists) > 0 {
		e.selectionChanged()
	}
	keys := e.selectionManager.Keys()
	out := make([]*scene.Entity, 0, len(keys))
	for _, k := range keys {
		if ent, ok := e.scene.Get(k); ok {
			out = append(out, ent)
		}
	}
	return out
}

func (e *Editor) exists(k history.Key) bool {
	_, ok := e.scene.Get(k)
	return ok
}

func (e *Editor) selectionChanged() {
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Keys: e.selectionManager.Keys()})
}

// targets returns the selection, or the entity under the cursor when
// nothing is selected.
func (e *Editor) targets() []*scene.Entity {
	if e.selectionManager.HasSelection() {
		return e.SelectedEntities()
	}
	if ent, ok := e.scene.At(e.GetCursor()); ok {
		return []*scene.Entity{ent}
	}
	return nil
}

// YankSelection copies a description of the selected entities to the
// clipboard. Returns how many entities were copied and whether the system
// clipboard was used.
func (e *Editor) YankSelection() (int, bool) {
	ents := e.targets()
	if len(ents) == 0 {
		return 0, false
	}
	var sb strings.Builder
	for _, ent := range ents {
		fmt.Fprintf(&sb, "%s %s %v\n", ent.Kind, ent.ID, ent.Pos)
	}
	return len(ents), e.clipboardManager.Yank(sb.String())
}

// ClipboardContents returns the last yanked text.
func (e *Editor) ClipboardContents() string {
	return e.clipboardManager.Contents()
}

// --- History ---

// Undo reverts the most recent visible edit. An open drag is finished
// first. Entities that can no longer be found are reported through the
// returned error and TypeLookupFailed events; the history still moves.
func (e *Editor) Undo() (bool, error) {
	e.EndDrag()
	stepped, err := e.history.Undo()
	e.modified = e.modified || stepped
	e.reportLookups(err)
	return stepped, err
}

// Redo reapplies the most recently undone visible edit.
func (e *Editor) Redo() (bool, error) {
	e.EndDrag()
	stepped, err := e.history.Redo()
	e.modified = e.modified || stepped
	e.reportLookups(err)
	return stepped, err
}

func (e *Editor) reportLookups(err error) {
	for _, le := range lookupErrors(err) {
		e.dispatch(event.TypeLookupFailed, event.LookupFailedData{Op: le.Op, Key: le.Key})
	}
}

// lookupErrors collects every LookupError in err's tree, including the
// branches of joined errors.
func lookupErrors(err error) []*history.LookupError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*history.LookupError
		for _, e := range joined.Unwrap() {
			out = append(out, lookupErrors(e)...)
		}
		return out
	}
	var le *history.LookupError
	if errors.As(err, &le) {
		return []*history.LookupError{le}
	}
	return nil
}

// Delete removes the target entities from the scene. Deletion is not an
// undoable edit; history entries that refer to deleted entities report
// lookup failures when stepped over.
func (e *Editor) Delete() int {
	e.EndDrag()
	ents := e.targets()
	for _, ent := range ents {
		e.scene.Remove(ent.Key())
		e.selectionManager.Remove(ent.Key())
	}
	if len(ents) > 0 {
		e.modified = true
		logger.InfoTagf("core", "Deleted %d entities", len(ents))
		e.selectionChanged()
	}
	return len(ents)
}
