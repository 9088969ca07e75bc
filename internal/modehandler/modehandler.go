// internal/modehandler/modehandler.go
package modehandler

import (
	"github.com/bethropolis/stage/internal/commands"
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/input"
	"github.com/bethropolis/stage/internal/logger"
	"github.com/bethropolis/stage/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal  InputMode = iota
	ModeDrag              // A keyboard or mouse drag is open
	ModeCommand           // Typing a ':' command
)

func (m InputMode) String() string {
	switch m {
	case ModeDrag:
		return "DRAG"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// ModeHandler turns key and mouse input into editor operations according
// to the current mode.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	commands       *commands.Registry
	quit           func()
	cycleTheme     func()

	// Internal State
	currentMode InputMode
	cmdBuffer   []rune
	mouse       mouseState
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Commands       *commands.Registry
	Quit           func()
	CycleTheme     func() // Optional
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.Commands == nil || cfg.Quit == nil {
		// Programming error during setup
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		commands:       cfg.Commands,
		quit:           cfg.Quit,
		cycleTheme:     cfg.CycleTheme,
		currentMode:    ModeNormal,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	if mh.currentMode == ModeCommand {
		return mh.handleKeyCommand(ev)
	}

	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	switch mh.currentMode {
	case ModeDrag:
		return mh.handleActionDrag(actionEvent.Action)
	default:
		return mh.handleActionNormal(actionEvent.Action)
	}
}

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(action input.Action) bool {
	ed := mh.editor

	switch action {
	case input.ActionQuit:
		mh.quit()
		return false
	case input.ActionCycleTheme:
		if mh.cycleTheme == nil {
			return false
		}
		mh.cycleTheme()
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetTemporaryMessage(":")
		logger.DebugTagf("mode", "Entering Command Mode")

	// --- Movement ---
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight:
		ed.MoveCursor(action.Delta())
	case input.ActionMovePageUp:
		ed.PageMove(-1)
	case input.ActionMovePageDown:
		ed.PageMove(1)

	// --- Selection ---
	case input.ActionSelect:
		ed.SelectAtCursor()
	case input.ActionToggleSelect:
		if !ed.ToggleAtCursor() {
			return false
		}
	case input.ActionClearSelection, input.ActionCancel:
		ed.ClearSelection()
	case input.ActionYank:
		n, system := ed.YankSelection()
		switch {
		case n == 0:
			mh.statusBar.SetTemporaryMessage("Nothing to yank")
		case system:
			mh.statusBar.SetTemporaryMessage("Yanked %d entities", n)
		default:
			mh.statusBar.SetTemporaryMessage("Yanked %d entities (internal clipboard)", n)
		}

	// --- Editing ---
	case input.ActionGrab:
		if !ed.BeginDrag() {
			mh.statusBar.SetTemporaryMessage("Nothing to grab")
			return true
		}
		mh.currentMode = ModeDrag
		logger.DebugTagf("mode", "Entering Drag Mode")
	case input.ActionNudgeUp, input.ActionNudgeDown, input.ActionNudgeLeft, input.ActionNudgeRight:
		if ed.Nudge(action.Delta()) == 0 {
			mh.statusBar.SetTemporaryMessage("Nothing to move")
		}
	case input.ActionDelete:
		if n := ed.Delete(); n > 0 {
			mh.statusBar.SetTemporaryMessage("Deleted %d entities", n)
		}

	// --- History ---
	case input.ActionUndo:
		mh.step("undo", ed.Undo)
	case input.ActionRedo:
		mh.step("redo", ed.Redo)

	default:
		return false
	}
	return true
}

// handleActionDrag handles actions while a keyboard drag is open. Movement
// keys move the grabbed entities instead of the cursor.
func (mh *ModeHandler) handleActionDrag(action input.Action) bool {
	ed := mh.editor

	switch action {
	case input.ActionQuit:
		mh.quit()
		return false
	case input.ActionMoveUp, input.ActionMoveDown, input.ActionMoveLeft, input.ActionMoveRight,
		input.ActionNudgeUp, input.ActionNudgeDown, input.ActionNudgeLeft, input.ActionNudgeRight:
		ed.Nudge(action.Delta())
	case input.ActionGrab, input.ActionSelect:
		ed.EndDrag()
		mh.leaveDrag()
	case input.ActionCancel:
		ed.CancelDrag()
		mh.leaveDrag()
		mh.statusBar.SetTemporaryMessage("Drag cancelled")
	case input.ActionUndo:
		mh.leaveDrag()
		mh.step("undo", ed.Undo)
	case input.ActionRedo:
		mh.leaveDrag()
		mh.step("redo", ed.Redo)
	case input.ActionDelete:
		mh.leaveDrag()
		return mh.handleActionNormal(action)
	default:
		return false
	}
	return true
}

func (mh *ModeHandler) leaveDrag() {
	mh.currentMode = ModeNormal
	mh.mouse = mouseState{}
	logger.DebugTagf("mode", "Leaving Drag Mode")
}

// step runs an undo or redo. Lookup failures are reported by the editor
// through events; other errors go to the status bar.
func (mh *ModeHandler) step(name string, fn func() (bool, error)) {
	stepped, err := fn()
	if err != nil {
		logger.WarnTagf("mode", "%s: %v", name, err)
		return
	}
	if !stepped {
		mh.statusBar.SetTemporaryMessage("Nothing to %s", name)
	}
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCurrentModeString returns the mode name shown in the status bar.
func (mh *ModeHandler) GetCurrentModeString() string {
	return mh.currentMode.String()
}

// GetCommandBuffer returns the current command buffer content (e.g., for display).
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}
