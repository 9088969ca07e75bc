// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // For plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyEnter] = ActionSelect
	p.keymap[tcell.KeyTab] = ActionToggleSelect
	p.keymap[tcell.KeyDelete] = ActionDelete
	p.keymap[tcell.KeyEscape] = ActionCancel
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionQuit
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlR] = ActionRedo
	p.keymap[tcell.KeyCtrlY] = ActionRedo

	// --- Shift + arrows nudge the target ---
	shiftMap := make(Keymap)
	shiftMap[tcell.KeyUp] = ActionNudgeUp
	shiftMap[tcell.KeyDown] = ActionNudgeDown
	shiftMap[tcell.KeyLeft] = ActionNudgeLeft
	shiftMap[tcell.KeyRight] = ActionNudgeRight
	p.modKeymap[tcell.ModShift] = shiftMap

	// --- Rune Mappings ---
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['U'] = ActionRedo
	p.runeKeymap[' '] = ActionGrab
	p.runeKeymap['x'] = ActionDelete
	p.runeKeymap['y'] = ActionYank
	p.runeKeymap['c'] = ActionClearSelection
	p.runeKeymap['T'] = ActionCycleTheme
	p.runeKeymap[':'] = ActionEnterCommandMode
	// Vim-style movement
	p.runeKeymap['h'] = ActionMoveLeft
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['l'] = ActionMoveRight
	p.runeKeymap['H'] = ActionNudgeLeft
	p.runeKeymap['J'] = ActionNudgeDown
	p.runeKeymap['K'] = ActionNudgeUp
	p.runeKeymap['L'] = ActionNudgeRight
}

// Bind maps a plain rune to an action, replacing any existing binding.
func (p *InputProcessor) Bind(r rune, action Action) {
	p.runeKeymap[r] = action
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Check Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter keys already imply the modifier
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	// 2. Check simple Key mappings
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Check Rune mappings. Shift is folded into the rune itself.
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
	}

	// 4. No mapping found
	return ActionEvent{Action: ActionUnknown, Rune: runeVal}
}
