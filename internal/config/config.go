// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/stage/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config `toml:"logger"`  // [logger] table
	Editor  EditorConfig  `toml:"editor"`  // Editor-specific settings
	History HistoryConfig `toml:"history"` // Undo/redo policy
	// Plugins holds per-plugin tables, e.g. [plugins.autosave].
	Plugins map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	NudgeStep       int  `toml:"nudge_step"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

// HistoryConfig holds undo/redo settings.
type HistoryConfig struct {
	// NullTolerance is the per-axis distance under which a move is not
	// recorded as a visible undo step.
	NullTolerance int `toml:"null_tolerance"`
	// MaxEntries bounds the undo history.
	MaxEntries int `toml:"max_entries"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			NudgeStep:       DefaultNudgeStep,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		History: HistoryConfig{
			NullTolerance: DefaultNullTolerance,
			MaxEntries:    DefaultMaxHistory,
		},
	}
}

// PluginValue returns a plugin setting from the [plugins.<name>] table.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	table, ok := c.Plugins[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

// DefaultPath returns ~/.config/stage/config.toml, or "" if the user config
// directory is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes a TOML file over a copy of base.
// A missing file is not an error; base is returned unchanged.
func loadFromFile(filePath string, base *Config) (*Config, error) {
	cfg := *base
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return &cfg, nil
	}
	if err != nil {
		return &cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, &cfg)
	if err != nil {
		return base, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	logger.Debugf("Loaded configuration from: %s", filePath)
	return &cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.NudgeStep <= 0 {
		c.Editor.NudgeStep = defaults.Editor.NudgeStep
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}

	if c.History.NullTolerance < 0 { // 0 records every move
		c.History.NullTolerance = defaults.History.NullTolerance
	}
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = defaults.History.MaxEntries
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds the effective configuration: defaults, then the TOML file at
// configFilePath (or DefaultPath when empty), then flag overrides, then
// validation. The returned config is always usable; the error reports a
// file that could not be read or parsed.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var loadErr error
	if effectivePath != "" {
		fileCfg, err := loadFromFile(effectivePath, cfg)
		if err != nil {
			loadErr = err
		} else {
			cfg = fileCfg
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, loadErr
}
