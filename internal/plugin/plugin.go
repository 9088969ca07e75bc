// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/stage/internal/commands"
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/event"
)

// EditorAPI defines the methods plugins can use to interact with the editor core.
// This acts as a controlled interface, preventing plugins from accessing everything.
//
// Editor and the event bus belong to the event loop. Code running on a
// plugin's own goroutine must go through Post.
type EditorAPI interface {
	// --- Scene Access ---
	Editor() *core.Editor

	// --- Scheduling ---
	Post(fn func()) error // Runs fn on the event loop

	// --- Event Bus Interaction ---
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc commands.CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded, on the event
	// loop. Used for setup, subscribing to events, registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
