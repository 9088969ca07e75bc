// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/stage/internal/commands"
	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/input"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/modehandler"
	"github.com/bethropolis/stage/internal/plugin"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/statusbar"
	"github.com/bethropolis/stage/internal/theme"
	"github.com/bethropolis/stage/internal/tui"
	"github.com/bethropolis/stage/plugins/autosave"
	"github.com/bethropolis/stage/plugins/census"
	"github.com/gdamore/tcell/v2"
)

// tickInterval drives redraws so temporary messages expire on screen.
const tickInterval = time.Second

// Options configures a new App.
type Options struct {
	Config     *config.Config
	Flags      *config.Flags // Re-applied on config reload
	ConfigPath string        // Watched for changes; "" uses config.DefaultPath()
	ScenePath  string        // "" starts an empty scene
	Screen     tcell.Screen  // nil uses the terminal
	Watch      bool          // Reload the config file when it changes
}

// App encapsulates the core components and main loop of the editor.
// All editor state is touched only from the goroutine running Run.
type App struct {
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	themeManager  *theme.Manager
	modeHandler   *modehandler.ModeHandler
	commands      *commands.Registry
	pluginManager *plugin.Manager
	editorAPI     *appEditorAPI
	watcher       *config.Watcher

	cfg             *config.Config
	statusBarHeight int
	quitting        bool
}

// configReloadEvent carries a reloaded config from the watcher goroutine
// into the event loop.
type configReloadEvent struct {
	tcell.EventTime
	cfg *config.Config
}

// quitRequest is posted as interrupt data when the run context ends.
type quitRequest struct{}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	sc, err := loadScene(opts.ScenePath)
	if err != nil {
		return nil, err
	}

	// --- Create Core Components ---
	themesDir := ""
	if configPath != "" {
		themesDir = filepath.Join(filepath.Dir(configPath), config.ThemesDirName)
	}
	themeManager := theme.NewManager(themesDir)
	defStyle := themeManager.Current().GetStyle(theme.StyleDefault)

	var tuiManager *tui.TUI
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, defStyle)
	} else {
		tuiManager, err = tui.New(defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()
	editor := core.NewEditor(sc, cfg)
	editor.SetEventManager(eventManager)

	a := &App{
		tuiManager:      tuiManager,
		editor:          editor,
		statusBar:       statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout}),
		eventManager:    eventManager,
		themeManager:    themeManager,
		commands:        commands.NewRegistry(),
		pluginManager:   plugin.NewManager(),
		cfg:             cfg,
		statusBarHeight: cfg.Editor.StatusBarHeight,
	}
	a.editorAPI = newEditorAPI(a)

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		Commands:       a.commands,
		Quit:           a.Quit,
		CycleTheme:     a.cycleTheme,
	})
	commands.RegisterAppCommands(a.commands, a.editorAPI, a.editorAPI)

	a.subscribe()

	// --- Register Built-in Plugins ---
	for _, p := range []plugin.Plugin{autosave.New(), census.New()} {
		if err := a.pluginManager.Register(p); err != nil {
			logger.Warnf("Failed to register plugin: %v", err)
		}
	}

	if opts.Watch && configPath != "" {
		a.watcher = config.NewWatcher(configPath, opts.Flags, a.postConfigReload)
	}

	// Announce the scene through the bus so the status bar picks it up.
	editor.Replace(sc, opts.ScenePath)
	a.resize()
	return a, nil
}

// loadScene opens path, or starts an empty scene when path is empty or
// does not exist yet.
func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.New("untitled", scene.DefaultWidth, scene.DefaultHeight), nil
	}
	sc, err := scene.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		logger.Infof("Scene file '%s' does not exist, starting empty scene %q", path, name)
		return scene.New(name, scene.DefaultWidth, scene.DefaultHeight), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	return sc, nil
}

// Run starts the application's event loop and blocks until quit or ctx
// is done. Input, reloads and drawing are all handled on this goroutine.
func (a *App) Run(ctx context.Context) error {
	defer a.tuiManager.Close()
	a.pluginManager.InitializePlugins(a.editorAPI)
	defer a.pluginManager.ShutdownPlugins()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			logger.Warnf("Config hot reload disabled: %v", err)
		} else {
			defer a.watcher.Stop()
		}
	}
	go a.tick(ctx)

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("space grab | u undo | U redo | : command | q quit")
	a.drawEditor()

	for !a.quitting {
		ev := a.tuiManager.PollEvent()
		if ev == nil { // Screen finalized
			break
		}
		if a.handleEvent(ev) && !a.quitting {
			a.drawEditor()
		}
	}

	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	logger.Infof("Exiting application.")
	return nil
}

// tick posts periodic redraws and turns ctx cancellation into a quit.
func (a *App) tick(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = a.tuiManager.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
			return
		case <-ticker.C:
			_ = a.tuiManager.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}
}

// handleEvent processes one screen event. Returns true if a redraw is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		a.resize()
		return true

	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)

	case *tcell.EventMouse:
		sx, sy := ev.Position()
		if sy >= a.viewSize().Height {
			return false // Status bar
		}
		return a.modeHandler.HandleMouseEvent(ev, tui.GridAt(a.editor, sx, sy))

	case *configReloadEvent:
		a.applyConfig(ev.cfg)
		return true

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case quitRequest:
			a.Quit()
			return false
		case func(): // Posted by a plugin
			data()
		}
		return true
	}
	return false
}

// postConfigReload runs on the watcher goroutine.
func (a *App) postConfigReload(cfg *config.Config) {
	ev := &configReloadEvent{cfg: cfg}
	ev.SetEventNow()
	if err := a.tuiManager.PostEvent(ev); err != nil {
		logger.WarnTagf("config", "Dropped config reload: %v", err)
	}
}

// applyConfig switches to a reloaded configuration.
func (a *App) applyConfig(cfg *config.Config) {
	a.cfg = cfg
	a.statusBarHeight = cfg.Editor.StatusBarHeight
	a.editor.Configure(cfg)
	a.resize()
	a.statusBar.SetTemporaryMessage("Configuration reloaded (tolerance %d)", cfg.History.NullTolerance)
}

// Quit ends the event loop after the current event.
func (a *App) Quit() {
	a.quitting = true
}

func (a *App) viewSize() tui.View {
	w, h := a.tuiManager.Size()
	vh := h - a.statusBarHeight
	if vh < 0 {
		vh = 0
	}
	return tui.View{Width: w, Height: vh}
}

func (a *App) resize() {
	v := a.viewSize()
	a.editor.SetViewSize(v.Width, v.Height)
}

// --- Theme ---

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme changes the active theme by name.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.themeChanged()
	return nil
}

func (a *App) cycleTheme() {
	a.themeManager.Next()
	a.themeChanged()
	a.statusBar.SetTemporaryMessage("Theme: %s", a.GetTheme().Name)
}

func (a *App) themeChanged() {
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.GetTheme().Name})
}
