package cursor

import (
	"testing"

	"github.com/bethropolis/stage/internal/types"
	"github.com/stretchr/testify/assert"
)

type fakeEditor struct {
	w, h, off int
}

func (f fakeEditor) SceneSize() (int, int) { return f.w, f.h }
func (f fakeEditor) ScrollOff() int        { return f.off }

func TestManager_SetPositionClamps(t *testing.T) {
	m := NewManager(fakeEditor{w: 10, h: 5})
	tests := []struct {
		in, want types.Position
	}{
		{types.Position{X: 3, Y: 2}, types.Position{X: 3, Y: 2}},
		{types.Position{X: -1, Y: 9}, types.Position{X: 0, Y: 4}},
		{types.Position{X: 12, Y: -3}, types.Position{X: 9, Y: 0}},
	}
	for _, tt := range tests {
		m.SetPosition(tt.in)
		assert.Equal(t, tt.want, m.GetPosition(), "input %v", tt.in)
	}
}

func TestManager_ScrollKeepsMargin(t *testing.T) {
	m := NewManager(fakeEditor{w: 100, h: 100, off: 2})
	m.SetViewSize(10, 10)

	m.MoveCursor(0, 8)
	assert.Equal(t, types.Position{X: 0, Y: 1}, m.GetViewport())

	m.MoveCursor(12, 0)
	assert.Equal(t, types.Position{X: 5, Y: 1}, m.GetViewport())

	m.SetPosition(types.Position{})
	assert.Equal(t, types.Position{}, m.GetViewport())
}

func TestManager_PageMove(t *testing.T) {
	m := NewManager(fakeEditor{w: 10, h: 50})
	m.PageMove(1)
	assert.Equal(t, types.Position{}, m.GetPosition(), "no view yet")

	m.SetViewSize(10, 20)
	m.PageMove(2)
	assert.Equal(t, 40, m.GetPosition().Y)
}
