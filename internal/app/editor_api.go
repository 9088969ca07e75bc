// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/stage/internal/commands"
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/plugin"
	"github.com/bethropolis/stage/internal/theme"
	"github.com/gdamore/tcell/v2"
)

var _ commands.EditorAPI = (*appEditorAPI)(nil)
var _ commands.ThemeAPI = (*appEditorAPI)(nil)
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI exposes the app to the built-in commands and plugins.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) Editor() *core.Editor {
	return api.app.editor
}

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
}

func (api *appEditorAPI) Quit() {
	api.app.Quit()
}

func (api *appEditorAPI) SetTheme(name string) error {
	return api.app.SetTheme(name)
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.GetTheme()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// Post schedules fn on the event loop. Safe from any goroutine.
func (api *appEditorAPI) Post(fn func()) error {
	return api.app.tuiManager.PostEvent(tcell.NewEventInterrupt(fn))
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc commands.CommandFunc) error {
	return api.app.commands.RegisterCommand(name, cmdFunc)
}

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
