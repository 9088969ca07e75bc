package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/bethropolis/stage/internal/logger"
)

// Manager copies text to the system clipboard, keeping an internal register
// that is used when the system clipboard is disabled or unavailable.
type Manager struct {
	useSystem bool
	register  string

	writeSystem func(string) error
	readSystem  func() (string, error)
}

// NewManager creates a new clipboard manager
func NewManager(useSystem bool) *Manager {
	return &Manager{
		useSystem:   useSystem && !clipboard.Unsupported,
		writeSystem: clipboard.WriteAll,
		readSystem:  clipboard.ReadAll,
	}
}

// SetUseSystem toggles the system clipboard.
func (m *Manager) SetUseSystem(use bool) {
	m.useSystem = use && !clipboard.Unsupported
}

// Yank stores text. It reports whether the system clipboard received it.
// The internal register is always updated.
func (m *Manager) Yank(text string) (system bool) {
	m.register = text
	if !m.useSystem {
		logger.DebugTagf("clipboard", "Yanked %d bytes to internal register", len(text))
		return false
	}
	if err := m.writeSystem(text); err != nil {
		logger.WarnTagf("clipboard", "System clipboard write failed, using internal register: %v", err)
		return false
	}
	logger.DebugTagf("clipboard", "Yanked %d bytes to system clipboard", len(text))
	return true
}

// Contents returns the last yanked text, preferring the system clipboard.
func (m *Manager) Contents() string {
	if m.useSystem {
		text, err := m.readSystem()
		if err == nil {
			return text
		}
		logger.DebugTagf("clipboard", "System clipboard read failed: %v", err)
	}
	return m.register
}
