// internal/types/position.go
package types

import "fmt"

// Position is a location on the scene grid.
// X grows to the right, Y grows downward. Both are in grid units.
type Position struct {
	X int
	Y int
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Sub returns the per-axis difference p - o.
func (p Position) Sub(o Position) (dx, dy int) {
	return p.X - o.X, p.Y - o.Y
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned area anchored at its top-left corner.
type Rect struct {
	Pos Position
	W   int
	H   int
}

// Contains reports whether pos lies inside r. Empty rects contain nothing.
func (r Rect) Contains(pos Position) bool {
	if r.W <= 0 || r.H <= 0 {
		return false
	}
	return pos.X >= r.Pos.X && pos.X < r.Pos.X+r.W &&
		pos.Y >= r.Pos.Y && pos.Y < r.Pos.Y+r.H
}
