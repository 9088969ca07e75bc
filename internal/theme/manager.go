// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/stage/internal/logger"
)

// Manager holds loaded themes and manages the active theme.
type Manager struct {
	themes      map[string]*Theme // Map theme name (lowercase) -> Theme object
	activeTheme *Theme
	themesDir   string
	mutex       sync.RWMutex
}

// NewManager creates a theme manager with the built-in themes and any
// .toml themes found in themesDir. An empty themesDir skips the scan.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:    make(map[string]*Theme),
		themesDir: themesDir,
	}

	mgr.addTheme(&StageDark)
	mgr.addTheme(&StageLight)

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}

	mgr.activeTheme = mgr.themes[strings.ToLower(StageDark.Name)]
	logger.Infof("Initial active theme set to: %s", mgr.activeTheme.Name)
	return mgr
}

func (m *Manager) addTheme(t *Theme) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadThemesFromDir scans the themes directory and loads .toml files.
// A missing directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	files, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.Infof("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue // Skip problematic file
		}
		m.addTheme(theme)
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes from %s.", loadedCount, m.themesDir)
	return nil
}

// Current returns the currently active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme sets the active theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// Next activates the theme after the current one in name order and
// returns it.
func (m *Manager) Next() *Theme {
	names := m.ListThemes()
	current := m.Current().Name
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := m.SetTheme(next); err != nil {
		logger.Warnf("Cannot switch theme: %v", err)
	}
	return m.Current()
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name) // Return original case name
	}
	sort.Strings(names)
	return names
}

// GetTheme returns a specific theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}
