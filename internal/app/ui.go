package app

import (
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/modehandler"
	"github.com/bethropolis/stage/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	view := a.viewSize()

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), StatusBarHeight: %d, Calculated ViewHeight: %d",
		width, height, a.statusBarHeight, view.Height)

	a.tuiManager.Clear()
	tui.DrawScene(a.tuiManager, a.editor, view, activeTheme)
	a.statusBar.Draw(screen, width, height, activeTheme)
	if a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		screen.HideCursor()
	} else {
		tui.DrawCursor(a.tuiManager, a.editor, view)
	}
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	a.statusBar.SetModified(a.editor.IsModified())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentModeString())
}
