// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/bethropolis/stage/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	NudgeStep      *int
	NullTolerance  *int
	MaxHistory     *int
	// Logger filters
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	DebugLog        *bool
	SystemClipboard *bool

	fs *pflag.FlagSet
}

// DefineFlags registers the flags on fs.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.NudgeStep = fs.Int("nudge-step", 0, "Grid units moved per nudge - Overrides config file")
	f.NullTolerance = fs.Int("null-tolerance", -1, "Per-axis distance below which a move is not an undo step - Overrides config file")
	f.MaxHistory = fs.Int("max-history", 0, "Maximum number of undo entries - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Use system clipboard instead of internal clipboard")
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // "-" is valid
		case "nudge-step":
			if *f.NudgeStep > 0 {
				cfg.Editor.NudgeStep = *f.NudgeStep
			}
		case "null-tolerance":
			if *f.NullTolerance >= 0 {
				cfg.History.NullTolerance = *f.NullTolerance
			}
		case "max-history":
			if *f.MaxHistory > 0 {
				cfg.History.MaxEntries = *f.MaxHistory
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			if tags := splitCommaList(*f.EnableTags); tags != nil {
				cfg.Logger.EnabledTags = tags
			}
		case "log-disable-tags":
			if tags := splitCommaList(*f.DisableTags); tags != nil {
				cfg.Logger.DisabledTags = tags
			}
		case "log-packages":
			if pkgs := splitCommaList(*f.EnablePkgs); pkgs != nil {
				cfg.Logger.EnabledPackages = pkgs
			}
		case "log-disable-packages":
			if pkgs := splitCommaList(*f.DisablePkgs); pkgs != nil {
				cfg.Logger.DisabledPackages = pkgs
			}
		case "debug-log":
			logger.SetDebugFilter(*f.DebugLog)
		}
	})
}

// Helper function to split comma-separated list
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
