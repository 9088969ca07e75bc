package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/logger"
)

// EditorAPI is what the editor commands need from the application.
type EditorAPI interface {
	Editor() *core.Editor
	SetStatusMessage(format string, args ...interface{})
	Quit()
}

// RegisterAppCommands registers the built-in commands.
func RegisterAppCommands(r Registrar, api EditorAPI, themeAPI ThemeAPI) {
	RegisterThemeCommands(r, themeAPI)
	RegisterEditorCommands(r, api)
}

// RegisterEditorCommands registers selection, history and session commands.
func RegisterEditorCommands(r Registrar, api EditorAPI) {
	register(r, "select", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: select <kind:id|id>...")
		}
		ed := api.Editor()
		for _, ref := range args {
			if err := ed.SelectRef(ref); err != nil {
				return err
			}
		}
		api.SetStatusMessage("%d selected", len(ed.SelectedEntities()))
		return nil
	})

	register(r, "clear", func(args []string) error {
		api.Editor().ClearSelection()
		return nil
	})

	register(r, "tolerance", func(args []string) error {
		ed := api.Editor()
		if len(args) == 0 {
			api.SetStatusMessage("Null tolerance: %d", ed.Tolerance())
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("tolerance must be a non-negative integer, got %q", args[0])
		}
		ed.SetTolerance(n)
		api.SetStatusMessage("Null tolerance set to %d", n)
		return nil
	})

	register(r, "history", func(args []string) error {
		h := api.Editor().History()
		undo, redo := h.UndoInfo(), h.RedoInfo()
		visible := 0
		for _, e := range undo {
			if !e.Null {
				visible++
			}
		}
		msg := fmt.Sprintf("History: %d undo (%d visible), %d redo", len(undo), visible, len(redo))
		if next, ok := h.PeekUndo(); ok {
			msg += " | next: " + next.Description
		}
		api.SetStatusMessage("%s", msg)
		return nil
	})

	register(r, "undo", func(args []string) error {
		return repeat(args, api.Editor().Undo)
	})
	register(r, "redo", func(args []string) error {
		return repeat(args, api.Editor().Redo)
	})

	write := func(args []string) error {
		ed := api.Editor()
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if err := ed.Save(path); err != nil {
			if errors.Is(err, core.ErrNoFilePath) {
				return fmt.Errorf("no file name; use :w <path>")
			}
			return err
		}
		api.SetStatusMessage("Saved %s", ed.FilePath())
		return nil
	}
	register(r, "w", write)
	register(r, "write", write)

	quit := func(args []string) error {
		api.Quit()
		return nil
	}
	register(r, "q", quit)
	register(r, "quit", quit)
}

// RegisterThemeCommands registers only theme-related commands
func RegisterThemeCommands(r Registrar, themeAPI ThemeAPI) {
	// --- Theme Command ---
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			// Show current theme
			currentTheme := themeAPI.GetTheme()
			themeAPI.SetStatusMessage("Current theme: %s", currentTheme.Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Allow theme names with spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			themes := themeAPI.ListThemes()
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themes, ", "))
		}
		themeAPI.SetStatusMessage("Theme set to: %s", themeName)
		return nil
	}

	// --- Theme List Command ---
	themeListCmdFunc := func(args []string) error {
		themeAPI.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	register(r, "theme", themeCmdFunc)
	register(r, "themes", themeListCmdFunc) // Alias :themes for listing
}

func register(r Registrar, name string, fn CommandFunc) {
	if err := r.RegisterCommand(name, fn); err != nil {
		logger.Warnf("Failed to register ':%s' command: %v", name, err)
	}
}

// repeat runs step count times (default 1), stopping early when there is
// nothing left to step over.
func repeat(args []string, step func() (bool, error)) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("count must be a positive integer, got %q", args[0])
		}
		count = n
	}
	for i := 0; i < count; i++ {
		stepped, err := step()
		if err != nil {
			return err
		}
		if !stepped {
			break
		}
	}
	return nil
}
