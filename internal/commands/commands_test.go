package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/bethropolis/stage/internal/config"
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/theme"
	"github.com/bethropolis/stage/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	ed      *core.Editor
	themes  *theme.Manager
	message string
	quit    bool
}

func (f *fakeAPI) Editor() *core.Editor { return f.ed }
func (f *fakeAPI) Quit()                { f.quit = true }
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.message = fmt.Sprintf(format, args...)
}
func (f *fakeAPI) SetTheme(name string) error { return f.themes.SetTheme(name) }
func (f *fakeAPI) GetTheme() *theme.Theme     { return f.themes.Current() }
func (f *fakeAPI) ListThemes() []string       { return f.themes.ListThemes() }

func newFixture(t *testing.T) (*Registry, *fakeAPI) {
	t.Helper()
	sc := scene.New("cmd", 20, 10)
	require.NoError(t, sc.Add(scene.NewEntity("crate", scene.KindObject, types.Position{X: 1, Y: 1})))
	require.NoError(t, sc.Add(scene.NewEntity("hero", scene.KindSprite, types.Position{X: 5, Y: 5})))

	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	api := &fakeAPI{ed: core.NewEditor(sc, cfg), themes: theme.NewManager("")}

	r := NewRegistry()
	RegisterAppCommands(r, api, api)
	return r, api
}

func TestRegistry_RejectsDuplicatesAndEmpty(t *testing.T) {
	r := NewRegistry()
	noop := func([]string) error { return nil }
	require.NoError(t, r.RegisterCommand("a", noop))
	assert.Error(t, r.RegisterCommand("a", noop))
	assert.Error(t, r.RegisterCommand("", noop))
	assert.Equal(t, []string{"a"}, r.Names())
}

func TestRegistry_Execute(t *testing.T) {
	r := NewRegistry()
	var got []string
	require.NoError(t, r.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}))
	require.NoError(t, r.RegisterCommand("fail", func([]string) error {
		return errors.New("boom")
	}))

	require.NoError(t, r.Execute("  echo a  b "))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.NoError(t, r.Execute("   "))
	assert.EqualError(t, r.Execute("fail"), "fail: boom")
	assert.EqualError(t, r.Execute("nope"), "unknown command: nope")
}

func TestSelectAndClear(t *testing.T) {
	r, api := newFixture(t)

	require.NoError(t, r.Execute("select crate sprite:hero"))
	assert.Equal(t, "2 selected", api.message)
	assert.Len(t, api.ed.SelectedEntities(), 2)

	err := r.Execute("select ghost")
	assert.Error(t, err)

	require.NoError(t, r.Execute("clear"))
	assert.False(t, api.ed.HasSelection())
	assert.Error(t, r.Execute("select"))
}

func TestTolerance(t *testing.T) {
	r, api := newFixture(t)

	require.NoError(t, r.Execute("tolerance"))
	assert.Equal(t, "Null tolerance: 2", api.message)

	require.NoError(t, r.Execute("tolerance 0"))
	assert.Equal(t, 0, api.ed.Tolerance())

	assert.Error(t, r.Execute("tolerance -1"))
	assert.Error(t, r.Execute("tolerance lots"))
	assert.Equal(t, 0, api.ed.Tolerance())
}

func TestUndoRedoAndHistory(t *testing.T) {
	r, api := newFixture(t)
	require.NoError(t, api.ed.SelectRef("crate"))
	api.ed.Nudge(1, 0)
	api.ed.Nudge(1, 0)

	require.NoError(t, r.Execute("history"))
	assert.Contains(t, api.message, "2 undo (2 visible), 0 redo")

	require.NoError(t, r.Execute("undo 5"))
	crate, _ := api.ed.Scene().Lookup("crate")
	assert.Equal(t, types.Position{X: 1, Y: 1}, crate.Pos)

	require.NoError(t, r.Execute("redo"))
	assert.Equal(t, types.Position{X: 2, Y: 1}, crate.Pos)

	assert.Error(t, r.Execute("undo 0"))
}

func TestThemeCommands(t *testing.T) {
	r, api := newFixture(t)

	require.NoError(t, r.Execute("theme"))
	assert.Equal(t, "Current theme: "+api.themes.Current().Name, api.message)

	require.NoError(t, r.Execute("theme Stage Light"))
	assert.Equal(t, "Stage Light", api.themes.Current().Name)

	err := r.Execute("theme Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available:")

	require.NoError(t, r.Execute("themes"))
	assert.Contains(t, api.message, "Stage Dark")
}

func TestWrite(t *testing.T) {
	r, api := newFixture(t)
	assert.Error(t, r.Execute("w"), "no path yet")

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, r.Execute("w "+path))
	assert.Equal(t, path, api.ed.FilePath())

	loaded, err := scene.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())

	require.NoError(t, r.Execute("write"))
	assert.Equal(t, "Saved "+path, api.message)
}

func TestQuit(t *testing.T) {
	r, api := newFixture(t)
	require.NoError(t, r.Execute("q"))
	assert.True(t, api.quit)
}
