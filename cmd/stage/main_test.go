package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/bethropolis/stage/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	args = append(args, "--config", filepath.Join(t.TempDir(), "absent.toml"))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stage dev\n", out)
}

func TestReplay_YAMLReport(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "after.yaml")
	out, err := runCLI(t, "replay", "../../testdata/harbor.yaml", "../../testdata/gesture.yaml",
		"--format", "yaml", "--save", saved)
	require.NoError(t, err)

	var report replayReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "harbor", report.Scene)
	assert.Equal(t, 15, report.Steps)

	positions := make(map[string][2]int)
	for _, e := range report.Entities {
		positions[e.Ref] = [2]int{e.X, e.Y}
	}
	// The cancelled spawn drag and the jitter on hero are skipped by the
	// last undo, which reverts the crate drag.
	assert.Equal(t, [2]int{4, 3}, positions["object:crate"])
	assert.Equal(t, [2]int{13, 8}, positions["sprite:hero"])
	assert.Equal(t, [2]int{2, 15}, positions["location:spawn"])
	assert.Empty(t, report.Undo)
	assert.Len(t, report.Redo, 1)

	sc, err := scene.Load(saved)
	require.NoError(t, err)
	hero, ok := sc.Lookup("hero")
	require.True(t, ok)
	assert.Equal(t, 13, hero.Pos.X)
}

func TestReplay_TextReport(t *testing.T) {
	out, err := runCLI(t, "replay", "../../testdata/harbor.yaml", "../../testdata/gesture.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "scene harbor: 15 steps")
	assert.Contains(t, out, "undo (0):")
	assert.Contains(t, out, "redo (1):")
}

func TestReplay_BadFormat(t *testing.T) {
	_, err := runCLI(t, "replay", "a.yaml", "b.yaml", "--format", "xml")
	assert.Error(t, err)
}

func TestReplay_MissingScene(t *testing.T) {
	_, err := runCLI(t, "replay", "missing.yaml", "../../testdata/gesture.yaml")
	assert.Error(t, err)
}
