package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/types"
)

var (
	ErrDuplicateID = errors.New("duplicate entity id")
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Scene is a named grid of entities. It implements history.Locator.
type Scene struct {
	mu       sync.RWMutex
	Name     string
	Width    int
	Height   int
	entities map[history.Key]*Entity
	nextSeq  int
}

// New creates an empty scene.
func New(name string, width, height int) *Scene {
	return &Scene{
		Name:     name,
		Width:    width,
		Height:   height,
		entities: make(map[history.Key]*Entity),
	}
}

// Add inserts e. Entities are unique by kind and id.
func (s *Scene) Add(e *Entity) error {
	if !e.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	if e.W <= 0 {
		e.W = 1
	}
	if e.H <= 0 {
		e.H = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := e.Key()
	if _, exists := s.entities[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, key)
	}
	e.seq = s.nextSeq
	s.nextSeq++
	s.entities[key] = e
	return nil
}

// Remove deletes the entity with key and returns it.
func (s *Scene) Remove(key history.Key) (*Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[key]
	if ok {
		delete(s.entities, key)
		logger.DebugTagf("scene", "Removed %s", key)
	}
	return e, ok
}

// Get returns the entity with key.
func (s *Scene) Get(key history.Key) (*Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[key]
	return e, ok
}

// Len returns the number of entities.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Resolve looks up a live entity for the history stack.
func (s *Scene) Resolve(key history.Key) (history.Handle, error) {
	e, ok := s.Get(key)
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", s.Name, history.ErrNotFound)
	}
	return e, nil
}

// Entities returns all entities in drawing order: by layer, then kind, then
// insertion.
func (s *Scene) Entities() []*Entity {
	s.mu.RLock()
	list := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		list = append(list, e)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if ra, rb := a.Kind.rank(), b.Kind.rank(); ra != rb {
			return ra < rb
		}
		return a.seq < b.seq
	})
	return list
}

// At returns the top-most entity covering pos.
func (s *Scene) At(pos types.Position) (*Entity, bool) {
	list := s.Entities()
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Bounds().Contains(pos) {
			return list[i], true
		}
	}
	return nil, false
}

// InBounds reports whether pos lies on the scene grid.
func (s *Scene) InBounds(pos types.Position) bool {
	return types.Rect{W: s.Width, H: s.Height}.Contains(pos)
}

// Lookup finds an entity by "kind:id" or by bare id. A bare id that exists
// under several kinds is ambiguous and reports false.
func (s *Scene) Lookup(ref string) (*Entity, bool) {
	if kind, id, ok := strings.Cut(ref, ":"); ok {
		return s.Get(history.Key{Kind: kind, ID: id})
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *Entity
	for key, e := range s.entities {
		if key.ID != ref {
			continue
		}
		if found != nil {
			return nil, false
		}
		found = e
	}
	return found, found != nil
}
