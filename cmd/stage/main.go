// cmd/stage/main.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// cliState is shared by the subcommands.
type cliState struct {
	flags      config.Flags
	cfg        *config.Config
	configPath string
	logFile    *os.File
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "A terminal scene editor with gesture-aware undo",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.logFile != nil {
				st.logFile.Close()
			}
		},
	}
	st.flags.DefineFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newEditCmd(st),
		newReplayCmd(st),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the configuration and initializes the logger. defaultLog is
// the log destination used when neither the config nor the flags name one.
func (st *cliState) setup(defaultLog string) error {
	st.configPath = *st.flags.ConfigFilePath
	if st.configPath == "" {
		st.configPath = config.DefaultPath()
	}

	cfg, loadErr := config.Load(st.configPath, &st.flags)
	st.cfg = cfg

	out, err := st.openLog(cfg.Logger.LogFilePath, defaultLog)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logger, out)

	if loadErr != nil {
		// The config is still usable; keep going with defaults where needed.
		logger.Warnf("Config: %v", loadErr)
	}
	logger.Debugf("Using config file: %s", st.configPath)
	return nil
}

// openLog resolves the log destination. "-" is stderr, "" falls back to
// defaultLog, and an empty defaultLog discards logs.
func (st *cliState) openLog(path, defaultLog string) (io.Writer, error) {
	if path == "" {
		path = defaultLog
	}
	switch path {
	case "":
		return io.Discard, nil
	case "-":
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file '%s': %w", path, err)
	}
	st.logFile = f
	return f, nil
}
