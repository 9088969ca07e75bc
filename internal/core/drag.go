package core

import (
	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/types"
)

// dragState tracks an open gesture. Every step is recorded as a composite
// move from the gesture origins, so the history coalesces the whole drag
// into one entry.
type dragState struct {
	entities []*scene.Entity
	origins  []types.Position
	dx, dy   int
	pushed   bool
}

// BeginDrag opens a gesture on the selection, or on the entity under the
// cursor, which then becomes the selection. Returns false when there is
// nothing to drag.
func (e *Editor) BeginDrag() bool {
	if e.drag != nil {
		return true
	}
	ents := e.targets()
	if len(ents) == 0 {
		return false
	}
	if !e.selectionManager.HasSelection() {
		e.selectionManager.Select(ents[0].Key())
		e.selectionChanged()
	}

	d := &dragState{
		entities: ents,
		origins:  make([]types.Position, len(ents)),
	}
	for i, ent := range ents {
		d.origins[i] = ent.Pos
	}
	e.drag = d
	logger.DebugTagf("core", "Drag started with %d entities", len(ents))
	return true
}

// DragBy moves the dragged entities by (dx, dy), opening a gesture if none
// is open.
func (e *Editor) DragBy(dx, dy int) bool {
	if e.drag == nil && !e.BeginDrag() {
		return false
	}
	e.drag.dx += dx
	e.drag.dy += dy
	e.applyDrag()
	return true
}

// EndDrag closes the open gesture. The next drag starts a new history entry.
func (e *Editor) EndDrag() bool {
	if e.drag == nil {
		return false
	}
	logger.DebugTagf("core", "Drag ended at offset (%d,%d)", e.drag.dx, e.drag.dy)
	e.drag = nil
	return true
}

// CancelDrag puts the dragged entities back where the gesture began. The
// gesture's history entry becomes null, so undo skips it.
func (e *Editor) CancelDrag() bool {
	if e.drag == nil {
		return false
	}
	if e.drag.pushed {
		e.drag.dx, e.drag.dy = 0, 0
		e.applyDrag()
	}
	logger.DebugTagf("core", "Drag cancelled")
	e.drag = nil
	return true
}

func (e *Editor) applyDrag() {
	d := e.drag
	moves := make([]history.Action, 0, len(d.entities))
	for i, ent := range d.entities {
		to := d.origins[i].Add(d.dx, d.dy)
		e.moveEntity(ent, to)
		moves = append(moves, history.NewMoveAction(ent, d.origins[i], to, history.WithTolerance(e.tolerance)))
	}
	e.history.PushCoalescing(history.NewCompositeAction(moves...))
	d.pushed = true
}

// Nudge moves the targets by (dx, dy) steps of the configured nudge size as
// one undoable edit. During a drag the nudge extends the drag instead.
// Nudges are deliberate, so they are never null unless they go nowhere.
func (e *Editor) Nudge(dx, dy int) int {
	dx, dy = dx*e.nudgeStep, dy*e.nudgeStep
	if e.drag != nil {
		e.DragBy(dx, dy)
		return len(e.drag.entities)
	}

	ents := e.targets()
	if len(ents) == 0 {
		return 0
	}
	moves := make([]history.Action, 0, len(ents))
	for _, ent := range ents {
		from := ent.Pos
		to := from.Add(dx, dy)
		e.moveEntity(ent, to)
		moves = append(moves, history.NewMoveAction(ent, from, to, history.WithTolerance(0)))
	}
	e.history.PushHard(history.NewCompositeAction(moves...))
	return len(ents)
}

func (e *Editor) moveEntity(ent *scene.Entity, to types.Position) {
	from := ent.Pos
	if from == to {
		return
	}
	ent.SetPosition(to)
	e.modified = true
	e.dispatch(event.TypeEntityMoved, event.EntityMovedData{Key: ent.Key(), From: from, To: to})
}
