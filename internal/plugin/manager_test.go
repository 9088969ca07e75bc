package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlugin struct {
	name     string
	initErr  error
	log      *[]string
	shutdown bool
}

func (p *stubPlugin) Name() string { return p.name }
func (p *stubPlugin) Initialize(api EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}
func (p *stubPlugin) Shutdown() error {
	p.shutdown = true
	return nil
}

func TestManager_Lifecycle(t *testing.T) {
	var log []string
	m := NewManager()
	b := &stubPlugin{name: "b", log: &log}
	a := &stubPlugin{name: "a", log: &log, initErr: errors.New("broken")}
	require.NoError(t, m.Register(b))
	require.NoError(t, m.Register(a))

	assert.Error(t, m.Register(&stubPlugin{name: "a", log: &log}), "duplicate name")
	assert.Error(t, m.Register(&stubPlugin{log: &log}), "empty name")

	m.InitializePlugins(nil)
	assert.Equal(t, []string{"init a", "init b"}, log, "failures do not stop the others")

	got, ok := m.GetPlugin("b")
	require.True(t, ok)
	assert.Same(t, b, got)

	m.ShutdownPlugins()
	assert.True(t, a.shutdown)
	assert.True(t, b.shutdown)
}
