package selection

import (
	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/logger"
)

// Manager holds the set of selected entities in the order they were picked.
type Manager struct {
	keys  []history.Key
	index map[history.Key]struct{}
}

// NewManager creates a new selection manager.
func NewManager() *Manager {
	return &Manager{index: make(map[history.Key]struct{})}
}

// HasSelection returns whether anything is selected.
func (m *Manager) HasSelection() bool {
	return len(m.keys) > 0
}

// Len returns the number of selected entities.
func (m *Manager) Len() int {
	return len(m.keys)
}

// Contains reports whether key is selected.
func (m *Manager) Contains(key history.Key) bool {
	_, ok := m.index[key]
	return ok
}

// Keys returns a copy of the selection in pick order.
func (m *Manager) Keys() []history.Key {
	out := make([]history.Key, len(m.keys))
	copy(out, m.keys)
	return out
}

// Select replaces the selection with key.
func (m *Manager) Select(key history.Key) {
	m.ClearSelection()
	m.add(key)
	logger.DebugTagf("core", "Selection Manager: Selected %s", key)
}

// Add extends the selection with key. Returns false if already selected.
func (m *Manager) Add(key history.Key) bool {
	if m.Contains(key) {
		return false
	}
	m.add(key)
	return true
}

// Toggle adds key if absent and removes it otherwise. Returns the new state.
func (m *Manager) Toggle(key history.Key) bool {
	if m.Remove(key) {
		return false
	}
	m.add(key)
	return true
}

// Remove drops key from the selection. Returns false if it was not selected.
func (m *Manager) Remove(key history.Key) bool {
	if !m.Contains(key) {
		return false
	}
	delete(m.index, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// ClearSelection resets the selection state.
func (m *Manager) ClearSelection() {
	if len(m.keys) > 0 { // Only log if selection was actually active
		logger.DebugTagf("core", "Selection Manager: Cleared %d", len(m.keys))
	}
	m.keys = nil
	m.index = make(map[history.Key]struct{})
}

// Prune removes keys for which exists reports false and returns how many
// were dropped.
func (m *Manager) Prune(exists func(history.Key) bool) int {
	dropped := 0
	for _, k := range m.Keys() {
		if !exists(k) {
			m.Remove(k)
			dropped++
		}
	}
	return dropped
}

func (m *Manager) add(key history.Key) {
	m.keys = append(m.keys, key)
	m.index[key] = struct{}{}
}
