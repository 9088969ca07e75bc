package modehandler

import (
	"github.com/bethropolis/stage/internal/types"
	"github.com/gdamore/tcell/v2"
)

// mouseState tracks a drag started with the primary button.
type mouseState struct {
	dragging bool
	last     types.Position
}

// HandleMouseEvent handles a mouse event already translated to a scene
// position. Pressing on an entity grabs it, moving with the button held
// drags, and releasing drops. Returns true if a redraw is needed.
func (mh *ModeHandler) HandleMouseEvent(ev *tcell.EventMouse, pos types.Position) bool {
	if mh.currentMode == ModeCommand {
		return false
	}
	ed := mh.editor
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !mh.mouse.dragging:
		if mh.currentMode == ModeDrag {
			// A keyboard drag is open; a click drops it.
			ed.EndDrag()
			mh.leaveDrag()
		}
		ed.SetCursor(pos)
		ent, ok := ed.Scene().At(pos)
		if !ok {
			ed.ClearSelection()
			return true
		}
		// Pressing inside the selection drags all of it.
		if !ed.IsSelected(ent.Key()) {
			ed.SelectAtCursor()
		}
		if !ed.BeginDrag() {
			return true
		}
		mh.currentMode = ModeDrag
		mh.mouse = mouseState{dragging: true, last: pos}
		return true

	case pressed && mh.mouse.dragging:
		dx, dy := pos.Sub(mh.mouse.last)
		if dx == 0 && dy == 0 {
			return false
		}
		ed.DragBy(dx, dy)
		ed.SetCursor(pos)
		mh.mouse.last = pos
		return true

	case !pressed && mh.mouse.dragging:
		ed.EndDrag()
		mh.leaveDrag()
		return true
	}
	return false
}
