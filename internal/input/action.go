// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionCycleTheme
	ActionEnterCommandMode

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown

	// --- Selection ---
	ActionSelect         // Replace selection with the entity under the cursor
	ActionToggleSelect   // Add or remove the entity under the cursor
	ActionClearSelection // Deselect everything
	ActionYank           // Copy selection description

	// --- Editing ---
	ActionGrab // Start or finish a keyboard drag
	ActionNudgeUp
	ActionNudgeDown
	ActionNudgeLeft
	ActionNudgeRight
	ActionCancel // Abort the open drag
	ActionDelete

	// --- History ---
	ActionUndo
	ActionRedo
)

var actionNames = map[Action]string{
	ActionQuit:             "quit",
	ActionCycleTheme:       "cycle-theme",
	ActionEnterCommandMode: "command-mode",
	ActionMoveUp:           "move-up",
	ActionMoveDown:         "move-down",
	ActionMoveLeft:         "move-left",
	ActionMoveRight:        "move-right",
	ActionMovePageUp:       "page-up",
	ActionMovePageDown:     "page-down",
	ActionSelect:           "select",
	ActionToggleSelect:     "toggle-select",
	ActionClearSelection:   "clear-selection",
	ActionYank:             "yank",
	ActionGrab:             "grab",
	ActionNudgeUp:          "nudge-up",
	ActionNudgeDown:        "nudge-down",
	ActionNudgeLeft:        "nudge-left",
	ActionNudgeRight:       "nudge-right",
	ActionCancel:           "cancel",
	ActionDelete:           "delete",
	ActionUndo:             "undo",
	ActionRedo:             "redo",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Delta returns the grid direction of a movement or nudge action.
func (a Action) Delta() (dx, dy int) {
	switch a {
	case ActionMoveUp, ActionNudgeUp:
		return 0, -1
	case ActionMoveDown, ActionNudgeDown:
		return 0, 1
	case ActionMoveLeft, ActionNudgeLeft:
		return -1, 0
	case ActionMoveRight, ActionNudgeRight:
		return 1, 0
	}
	return 0, 0
}

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // The rune that triggered the action, if any
}
