package modehandler

import (
	"testing"

	"github.com/bethropolis/stage/internal/commands"
	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/event"
	"github.com/bethropolis/stage/internal/input"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/statusbar"
	"github.com/bethropolis/stage/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mh    *ModeHandler
	ed    *core.Editor
	crate *scene.Entity
	quit  int
	cmds  *commands.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sc := scene.New("mode", 40, 20)
	crate := scene.NewEntity("crate", scene.KindObject, types.Position{X: 2, Y: 2})
	require.NoError(t, sc.Add(crate))

	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	ed := core.NewEditor(sc, cfg)
	ed.SetViewSize(40, 20)
	em := event.NewManager()
	ed.SetEventManager(em)

	f := &fixture{ed: ed, crate: crate, cmds: commands.NewRegistry()}
	f.mh = New(Config{
		Editor:         ed,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   em,
		StatusBar:      statusbar.New(statusbar.DefaultConfig()),
		Commands:       f.cmds,
		Quit:           func() { f.quit++ },
	})
	return f
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func (f *fixture) keys(evs ...*tcell.EventKey) {
	for _, ev := range evs {
		f.mh.HandleKeyEvent(ev)
	}
}

func TestNew_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { New(Config{}) })
}

func TestKeyboardDragIsOneUndoStep(t *testing.T) {
	f := newFixture(t)
	f.ed.SetCursor(f.crate.Pos)

	f.keys(runeKey(' '))
	assert.Equal(t, ModeDrag, f.mh.GetCurrentMode())
	assert.Equal(t, "DRAG", f.mh.GetCurrentModeString())

	f.keys(runeKey('l'), runeKey('l'), runeKey('l'), runeKey('j'))
	assert.Equal(t, types.Position{X: 5, Y: 3}, f.crate.Pos)

	f.keys(runeKey(' '))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Equal(t, 1, f.ed.History().UndoCount())

	f.keys(runeKey('u'))
	assert.Equal(t, types.Position{X: 2, Y: 2}, f.crate.Pos)
}

func TestCancelDragRestoresPositions(t *testing.T) {
	f := newFixture(t)
	f.ed.SetCursor(f.crate.Pos)

	f.keys(runeKey(' '), runeKey('l'), runeKey('l'), runeKey('l'), key(tcell.KeyEscape))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Equal(t, types.Position{X: 2, Y: 2}, f.crate.Pos)
	_, visible := f.ed.History().PeekUndo()
	assert.False(t, visible, "a cancelled drag leaves nothing to undo")
}

func TestUndoDuringDragLeavesDragMode(t *testing.T) {
	f := newFixture(t)
	f.ed.SetCursor(f.crate.Pos)

	f.keys(runeKey(' '), runeKey('l'), runeKey('l'), runeKey('l'), runeKey('u'))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.False(t, f.ed.IsDragging())
	assert.Equal(t, types.Position{X: 2, Y: 2}, f.crate.Pos)
}

func TestNormalModeCursorAndNudge(t *testing.T) {
	f := newFixture(t)

	f.keys(runeKey('l'), runeKey('j'))
	assert.Equal(t, types.Position{X: 1, Y: 1}, f.ed.GetCursor())

	f.ed.SetCursor(f.crate.Pos)
	f.keys(key(tcell.KeyEnter))
	assert.True(t, f.ed.IsSelected(f.crate.Key()))

	f.keys(runeKey('L'))
	assert.Equal(t, types.Position{X: 3, Y: 2}, f.crate.Pos)
	assert.True(t, f.ed.History().CanUndo(), "a single-cell nudge is always recorded")

	f.keys(runeKey('c'))
	assert.False(t, f.ed.HasSelection())
}

func TestGrabWithNothingStaysNormal(t *testing.T) {
	f := newFixture(t)
	f.ed.SetCursor(types.Position{X: 30, Y: 10})
	assert.True(t, f.mh.HandleKeyEvent(runeKey(' ')))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	f.keys(runeKey('q'))
	assert.Equal(t, 1, f.quit)

	f.ed.SetCursor(f.crate.Pos)
	f.keys(runeKey(' '), key(tcell.KeyCtrlC))
	assert.Equal(t, 2, f.quit)
}

func TestCommandMode(t *testing.T) {
	f := newFixture(t)
	var got []string
	require.NoError(t, f.cmds.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}))

	f.keys(runeKey(':'))
	require.Equal(t, ModeCommand, f.mh.GetCurrentMode())

	// 'q' and 'u' are literal text here, not quit and undo.
	for _, r := range "echo qux" {
		f.keys(runeKey(r))
	}
	assert.Equal(t, "echo qux", f.mh.GetCommandBuffer())
	assert.Zero(t, f.quit)

	f.keys(key(tcell.KeyBackspace2))
	assert.Equal(t, "echo qu", f.mh.GetCommandBuffer())

	f.keys(key(tcell.KeyEnter))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Equal(t, []string{"qu"}, got)
	assert.Empty(t, f.mh.GetCommandBuffer())
}

func TestCommandModeEscapeAndBackspaceExit(t *testing.T) {
	f := newFixture(t)

	f.keys(runeKey(':'), runeKey('x'), key(tcell.KeyEscape))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())

	f.keys(runeKey(':'), key(tcell.KeyBackspace2))
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
}

func mouse(buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(0, 0, buttons, tcell.ModNone)
}

func TestMouseDrag(t *testing.T) {
	f := newFixture(t)

	assert.True(t, f.mh.HandleMouseEvent(mouse(tcell.Button1), types.Position{X: 2, Y: 2}))
	assert.Equal(t, ModeDrag, f.mh.GetCurrentMode())
	assert.True(t, f.ed.IsSelected(f.crate.Key()))

	// A one-cell wobble is under the null tolerance.
	f.mh.HandleMouseEvent(mouse(tcell.Button1), types.Position{X: 3, Y: 2})
	f.mh.HandleMouseEvent(mouse(tcell.Button1), types.Position{X: 2, Y: 2})
	f.mh.HandleMouseEvent(mouse(tcell.ButtonNone), types.Position{X: 2, Y: 2})
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	_, visible := f.ed.History().PeekUndo()
	assert.False(t, visible)

	f.mh.HandleMouseEvent(mouse(tcell.Button1), types.Position{X: 2, Y: 2})
	for x := 3; x <= 9; x++ {
		f.mh.HandleMouseEvent(mouse(tcell.Button1), types.Position{X: x, Y: 4})
	}
	f.mh.HandleMouseEvent(mouse(tcell.ButtonNone), types.Position{X: 9, Y: 4})
	assert.Equal(t, types.Position{X: 9, Y: 4}, f.crate.Pos)
	_, visible = f.ed.History().PeekUndo()
	assert.True(t, visible)

	_, err := f.ed.Undo()
	require.NoError(t, err)
	assert.Equal(t, types.Position{X: 2, Y: 2}, f.crate.Pos)
}

func TestMouseClickOnEmptyClearsSelection(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ed.SelectRef("crate"))

	f.mh.HandleMouseEvent(mouse(tcell.Button1), types.Position{X: 20, Y: 10})
	assert.False(t, f.ed.HasSelection())
	assert.Equal(t, ModeNormal, f.mh.GetCurrentMode())
	assert.Equal(t, types.Position{X: 20, Y: 10}, f.ed.GetCursor())
}
