package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bethropolis/stage/internal/app"
	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/spf13/cobra"
)

func newEditCmd(st *cliState) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "edit [scene.yaml]",
		Short: "Open a scene in the interactive editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the UI, so logs go to a file by default.
			if err := st.setup(filepath.Join(os.TempDir(), config.DefaultLogFileName)); err != nil {
				return err
			}

			scenePath := ""
			if len(args) > 0 {
				scenePath = args[0]
			}
			logger.Infof("Starting %s editor (version %s)", config.AppName, version)

			a, err := app.NewApp(app.Options{
				Config:     st.cfg,
				Flags:      &st.flags,
				ConfigPath: st.configPath,
				ScenePath:  scenePath,
				Watch:      !noWatch,
			})
			if err != nil {
				logger.Errorf("Error initializing application: %v", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := a.Run(ctx); err != nil {
				logger.Errorf("Application exited with error: %v", err)
				return err
			}
			logger.Infof("%s editor finished.", config.AppName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the config file when it changes")
	return cmd
}
