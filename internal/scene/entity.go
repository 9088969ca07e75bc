// Package scene holds the entities of a level and resolves them by identity.
package scene

import (
	"fmt"

	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/types"
)

// Kind classifies an entity.
type Kind string

const (
	KindObject   Kind = "object"
	KindSprite   Kind = "sprite"
	KindPath     Kind = "path"
	KindLocation Kind = "location"
	KindComment  Kind = "comment"
)

// Kinds lists every known kind in drawing order, bottom first.
var Kinds = []Kind{KindLocation, KindPath, KindObject, KindSprite, KindComment}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k.rank() >= 0
}

// rank orders kinds for drawing and hit testing. Higher draws on top.
func (k Kind) rank() int {
	for i, known := range Kinds {
		if k == known {
			return i
		}
	}
	return -1
}

// Glyph is the cell drawn for an entity of this kind.
func (k Kind) Glyph() rune {
	switch k {
	case KindObject:
		return '■'
	case KindSprite:
		return '◆'
	case KindPath:
		return '•'
	case KindLocation:
		return '⌖'
	case KindComment:
		return '¶'
	default:
		return '?'
	}
}

// Entity is a positioned item in a scene.
type Entity struct {
	ID    string
	Kind  Kind
	Pos   types.Position
	W     int
	H     int
	Layer int
	Text  string // Comment body or label

	seq int // insertion order, breaks draw-order ties
}

// NewEntity creates a 1x1 entity.
func NewEntity(id string, kind Kind, pos types.Position) *Entity {
	return &Entity{ID: id, Kind: kind, Pos: pos, W: 1, H: 1}
}

// Key identifies the entity independently of its position.
func (e *Entity) Key() history.Key {
	return history.Key{Kind: string(e.Kind), ID: e.ID}
}

// SetPosition moves the entity.
func (e *Entity) SetPosition(pos types.Position) {
	e.Pos = pos
}

// Bounds returns the area the entity covers.
func (e *Entity) Bounds() types.Rect {
	return types.Rect{Pos: e.Pos, W: e.W, H: e.H}
}

// Label is a short human-readable name.
func (e *Entity) Label() string {
	if e.Text != "" && e.Kind != KindComment {
		return fmt.Sprintf("%s %q", e.Kind, e.Text)
	}
	return fmt.Sprintf("%s %s", e.Kind, shortID(e.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
