package config

import "time"

// Base application details
const AppName = "stage"
const ConfigDirName = "stage"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "stage.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultNudgeStep = 1
const DefaultScrollOff = 3
const SystemClipboard = true

// History
const DefaultNullTolerance = 2
const DefaultMaxHistory = 1000

// Hot reload
const ReloadDebounce = 100 * time.Millisecond
