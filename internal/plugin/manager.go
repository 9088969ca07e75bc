// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/stage/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin // Store loaded plugins by name
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.DebugTagf("plugin", "Registered plugin '%s'", name)
	return nil
}

// sorted returns the plugins in name order so startup is deterministic.
func (m *Manager) sorted() []Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]Plugin, 0, len(m.plugins))
	for _, p := range m.plugins {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// InitializePlugins calls Initialize on every registered plugin. A plugin
// that fails to initialize is logged and skipped; the others still run.
func (m *Manager) InitializePlugins(api EditorAPI) {
	list := m.sorted()
	logger.DebugTagf("plugin", "Initializing %d plugins...", len(list))
	for _, p := range list {
		if err := p.Initialize(api); err != nil {
			logger.ErrorTagf("plugin", "Error initializing plugin '%s': %v", p.Name(), err)
			continue
		}
		logger.DebugTagf("plugin", "Initialized plugin '%s'", p.Name())
	}
}

// ShutdownPlugins calls Shutdown on all registered plugins.
func (m *Manager) ShutdownPlugins() {
	list := m.sorted()
	logger.DebugTagf("plugin", "Shutting down %d plugins...", len(list))
	for _, p := range list {
		if err := p.Shutdown(); err != nil {
			logger.ErrorTagf("plugin", "Error shutting down plugin '%s': %v", p.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name (e.g., for inter-plugin communication). Use cautiously.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
