package cursor

import (
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/types"
)

// Editor is the interface cursor manager expects from the editor
type Editor interface {
	SceneSize() (width, height int)
	ScrollOff() int
}

// Manager handles cursor positioning and viewport management
type Manager struct {
	editor       Editor
	position     types.Position
	viewportTop  int
	viewportLeft int
	viewWidth    int
	viewHeight   int
}

// NewManager creates a new cursor manager
func NewManager(editor Editor) *Manager {
	return &Manager{editor: editor}
}

// SetViewSize updates the view dimensions
func (m *Manager) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
	m.ScrollToCursor()
}

// GetViewport returns the grid cell shown at the top-left of the view.
func (m *Manager) GetViewport() types.Position {
	return types.Position{X: m.viewportLeft, Y: m.viewportTop}
}

// GetPosition returns the current cursor position
func (m *Manager) GetPosition() types.Position {
	return m.position
}

// SetPosition sets the cursor position, clamped to the scene grid.
func (m *Manager) SetPosition(pos types.Position) {
	width, height := m.editor.SceneSize()
	if width <= 0 || height <= 0 {
		logger.Warnf("CursorManager.SetPosition: scene has no area (%dx%d)", width, height)
		return
	}

	pos.X = clamp(pos.X, 0, width-1)
	pos.Y = clamp(pos.Y, 0, height-1)

	m.position = pos
	m.ScrollToCursor()
}

// MoveCursor moves the cursor by the given delta
func (m *Manager) MoveCursor(dx, dy int) {
	m.SetPosition(m.position.Add(dx, dy))
}

// PageMove moves the cursor by the given number of screens vertically.
func (m *Manager) PageMove(deltaPages int) {
	if m.viewHeight <= 0 {
		return // View not initialized
	}
	m.MoveCursor(0, deltaPages*m.viewHeight)
}

// ScrollToCursor ensures the cursor is visible in the viewport
func (m *Manager) ScrollToCursor() {
	if m.viewHeight <= 0 || m.viewWidth <= 0 {
		// View not initialized yet
		return
	}

	m.viewportTop = scrollAxis(m.position.Y, m.viewportTop, m.viewHeight, m.scrollOff(m.viewHeight))
	m.viewportLeft = scrollAxis(m.position.X, m.viewportLeft, m.viewWidth, m.scrollOff(m.viewWidth))
}

// scrollOff limits the configured margin to what fits in a view of size.
func (m *Manager) scrollOff(size int) int {
	off := m.editor.ScrollOff()
	if off*2 >= size {
		off = (size - 1) / 2
	}
	if off < 0 {
		off = 0
	}
	return off
}

// scrollAxis returns the new viewport start so that cur stays at least
// off cells away from either edge.
func scrollAxis(cur, start, size, off int) int {
	if cur < start+off {
		start = cur - off
	} else if cur >= start+size-off {
		start = cur - size + off + 1
	}
	if start < 0 {
		start = 0
	}
	return start
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
