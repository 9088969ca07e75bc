package history

import (
	"fmt"

	"github.com/bethropolis/stage/internal/types"
)

// fakeEntity is a minimal live entity for tests.
type fakeEntity struct {
	key Key
	pos types.Position
}

func (e *fakeEntity) Key() Key { return e.key }
func (e *fakeEntity) SetPosition(pos types.Position) { e.pos = pos }

// fakeScene resolves keys from a map and counts lookups.
type fakeScene struct {
	entities map[Key]*fakeEntity
	lookups  int
}

func newFakeScene() *fakeScene {
	return &fakeScene{entities: make(map[Key]*fakeEntity)}
}

func (s *fakeScene) add(id string, x, y int) *fakeEntity {
	e := &fakeEntity{key: Key{Kind: "object", ID: id}, pos: types.Position{X: x, Y: y}}
	s.entities[e.key] = e
	return e
}

func (s *fakeScene) remove(e *fakeEntity) {
	delete(s.entities, e.key)
}

func (s *fakeScene) Resolve(key Key) (Handle, error) {
	s.lookups++
	e, ok := s.entities[key]
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", key, ErrNotFound)
	}
	return e, nil
}

func pos(x, y int) types.Position {
	return types.Position{X: x, Y: y}
}

// move builds a move of e and applies it, the way an editor would while
// dragging.
func move(e *fakeEntity, from, to types.Position, opts ...MoveOption) *MoveAction {
	e.pos = to
	return NewMoveAction(e, from, to, opts...)
}

// recordingObserver keeps every notification it receives.
type recordingObserver struct {
	calls [][2]bool
}

func (r *recordingObserver) OnHistoryChanged(canUndo, canRedo bool) {
	r.calls = append(r.calls, [2]bool{canUndo, canRedo})
}

func (r *recordingObserver) last() [2]bool {
	if len(r.calls) == 0 {
		return [2]bool{}
	}
	return r.calls[len(r.calls)-1]
}
