package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/stage/internal/core/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	sc, err := ParseScript([]byte(`
steps:
  - select: crate
  - select: [hero, "object:crate"]
  - cursor: [4, 5]
  - drag: [3, 0]
  - release
  - nudge: [0, -1]
  - undo: 2
  - redo
`))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 8)

	assert.Equal(t, Step{Op: OpSelect, Refs: []string{"crate"}, Count: 1}, sc.Steps[0])
	assert.Equal(t, []string{"hero", "object:crate"}, sc.Steps[1].Refs)
	assert.Equal(t, at(4, 5), sc.Steps[2].XY)
	assert.Equal(t, at(3, 0), sc.Steps[3].XY)
	assert.Equal(t, OpRelease, sc.Steps[4].Op)
	assert.Equal(t, at(0, -1), sc.Steps[5].XY)
	assert.Equal(t, 2, sc.Steps[6].Count)
	assert.Equal(t, 1, sc.Steps[7].Count)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown op", "steps: [teleport]"},
		{"missing argument", "steps: [drag]"},
		{"bad pair", "steps:\n  - drag: [1]"},
		{"two keys", "steps:\n  - {drag: [1, 1], nudge: [1, 1]}"},
		{"negative count", "steps:\n  - undo: -1"},
		{"not yaml", "steps: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidScript)
		})
	}
}

func TestScript_Run(t *testing.T) {
	f := newFixture(t)
	sc, err := ParseScript([]byte(`
steps:
  - select: crate
  - drag: [1, 0]
  - drag: [2, 0]
  - drag: [0, 3]
  - release
  - clear
  - select: hero
  - drag: [1, 0]
  - cancel
  - undo
`))
	require.NoError(t, err)

	res, err := sc.Run(f.ed)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Steps)
	assert.Empty(t, res.Diagnostics)

	assert.Equal(t, at(2, 2), f.crate.Pos, "undo skips the cancelled gesture")
	assert.Equal(t, at(10, 5), f.hero.Pos)
	assert.True(t, f.ed.History().CanRedo())
}

func TestScript_RunCollectsLookupDiagnostics(t *testing.T) {
	f := newFixture(t)
	sc, err := ParseScript([]byte(`
steps:
  - select: crate
  - nudge: [2, 0]
  - delete
  - undo
  - redo
`))
	require.NoError(t, err)

	res, err := sc.Run(f.ed)
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 2)
	for _, d := range res.Diagnostics {
		assert.ErrorIs(t, d, history.ErrNotFound)
	}
}

func TestScript_RunStopsOnBadStep(t *testing.T) {
	f := newFixture(t)
	sc := &Script{Steps: []Step{
		{Op: OpSelect, Refs: []string{"crate"}},
		{Op: OpSelect, Refs: []string{"ghost"}},
		{Op: OpNudge, XY: at(1, 0)},
	}}

	res, err := sc.Run(f.ed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2 (select)")
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, at(2, 2), f.crate.Pos)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: [undo, redo]\n"), 0o644))

	sc, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, sc.Steps, 2)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
