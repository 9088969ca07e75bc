package scene

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(x, y int) types.Position { return types.Position{X: x, Y: y} }

func TestScene_AddRejectsDuplicatesAndUnknownKinds(t *testing.T) {
	s := New("t", 10, 10)
	require.NoError(t, s.Add(NewEntity("a", KindObject, pos(1, 1))))

	err := s.Add(NewEntity("a", KindObject, pos(2, 2)))
	assert.ErrorIs(t, err, ErrDuplicateID)

	// Same id under another kind is a different identity.
	assert.NoError(t, s.Add(NewEntity("a", KindSprite, pos(2, 2))))

	err = s.Add(NewEntity("b", Kind("tile"), pos(0, 0)))
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Equal(t, 2, s.Len())
}

func TestScene_ResolveImplementsLocator(t *testing.T) {
	s := New("t", 10, 10)
	e := NewEntity("a", KindObject, pos(1, 1))
	require.NoError(t, s.Add(e))

	var loc history.Locator = s
	h, err := loc.Resolve(e.Key())
	require.NoError(t, err)
	h.SetPosition(pos(4, 5))
	assert.Equal(t, pos(4, 5), e.Pos)

	s.Remove(e.Key())
	_, err = loc.Resolve(e.Key())
	assert.True(t, errors.Is(err, history.ErrNotFound))
}

func TestScene_UndoAfterRemoveReportsLookupError(t *testing.T) {
	s := New("t", 10, 10)
	e := NewEntity("a", KindObject, pos(1, 1))
	require.NoError(t, s.Add(e))

	stack := history.NewStack(s)
	stack.PushHard(history.NewMoveAction(e, pos(1, 1), pos(6, 6)))
	s.Remove(e.Key())

	moved, err := stack.Undo()
	assert.True(t, moved)
	var lookup *history.LookupError
	require.ErrorAs(t, err, &lookup)
	assert.Equal(t, e.Key(), lookup.Key)
}

func TestScene_EntitiesDrawOrder(t *testing.T) {
	s := New("t", 10, 10)
	comment := NewEntity("c", KindComment, pos(0, 0))
	obj := NewEntity("o", KindObject, pos(0, 0))
	loc := NewEntity("l", KindLocation, pos(0, 0))
	high := NewEntity("h", KindLocation, pos(0, 0))
	high.Layer = 1
	for _, e := range []*Entity{comment, obj, loc, high} {
		require.NoError(t, s.Add(e))
	}

	assert.Equal(t, []*Entity{loc, obj, comment, high}, s.Entities())
}

func TestScene_At(t *testing.T) {
	s := New("t", 10, 10)
	big := NewEntity("big", KindObject, pos(2, 2))
	big.W, big.H = 3, 2
	sprite := NewEntity("s", KindSprite, pos(3, 3))
	require.NoError(t, s.Add(sprite))
	require.NoError(t, s.Add(big))

	tests := []struct {
		name string
		at   types.Position
		want *Entity
	}{
		{"sprite above object", pos(3, 3), sprite},
		{"object only", pos(4, 2), big},
		{"outside", pos(5, 2), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.At(tt.at)
			assert.Equal(t, tt.want != nil, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntity_Label(t *testing.T) {
	assert.Equal(t, `object "crate"`, (&Entity{ID: "1", Kind: KindObject, Text: "crate"}).Label())
	assert.Equal(t, "comment 12345678", (&Entity{ID: "123456789", Kind: KindComment, Text: "note"}).Label())
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(`
name: harbor
width: 40
entities:
  - id: crate
    kind: object
    x: 3
    y: 4
    w: 2
  - kind: Comment
    x: 1
    y: 1
    text: fix lighting
`))
	require.NoError(t, err)
	assert.Equal(t, "harbor", s.Name)
	assert.Equal(t, 40, s.Width)
	assert.Equal(t, DefaultHeight, s.Height)

	crate, ok := s.Get(history.Key{Kind: "object", ID: "crate"})
	require.True(t, ok)
	assert.Equal(t, pos(3, 4), crate.Pos)
	assert.Equal(t, 2, crate.W)
	assert.Equal(t, 1, crate.H)

	var comment *Entity
	for _, e := range s.Entities() {
		if e.Kind == KindComment {
			comment = e
		}
	}
	require.NotNil(t, comment)
	_, err = uuid.Parse(comment.ID)
	assert.NoError(t, err, "missing ids are generated")
	assert.Equal(t, "fix lighting", comment.Text)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad yaml", "entities: [", ErrInvalidScene},
		{"unknown kind", "entities:\n  - {id: a, kind: tile}", ErrUnknownKind},
		{"duplicate", "entities:\n  - {id: a, kind: path}\n  - {id: a, kind: path}", ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - {id: a, kind: sprite, x: 2, y: 2}\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "docks", s.Name)
	assert.Equal(t, 1, s.Len())
}

func TestScene_Lookup(t *testing.T) {
	s := New("t", 10, 10)
	require.NoError(t, s.Add(NewEntity("crate", KindObject, pos(1, 1))))
	require.NoError(t, s.Add(NewEntity("hero", KindSprite, pos(2, 2))))
	require.NoError(t, s.Add(NewEntity("hero", KindLocation, pos(3, 3))))

	e, ok := s.Lookup("crate")
	require.True(t, ok)
	assert.Equal(t, KindObject, e.Kind)

	_, ok = s.Lookup("hero")
	assert.False(t, ok, "ambiguous bare id")

	e, ok = s.Lookup("location:hero")
	require.True(t, ok)
	assert.Equal(t, pos(3, 3), e.Pos)

	_, ok = s.Lookup("missing")
	assert.False(t, ok)
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	s := New("dock", 30, 10)
	crate := NewEntity("crate", KindObject, types.Position{X: 4, Y: 3})
	crate.W = 2
	note := NewEntity("note", KindComment, types.Position{X: 1, Y: 1})
	note.Text = "heavy"
	require.NoError(t, s.Add(crate))
	require.NoError(t, s.Add(note))
	crate.SetPosition(types.Position{X: 9, Y: 3})

	path := filepath.Join(t.TempDir(), "dock.yaml")
	require.NoError(t, Save(s, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dock", loaded.Name)
	assert.Equal(t, 30, loaded.Width)

	got, ok := loaded.Lookup("crate")
	require.True(t, ok)
	assert.Equal(t, types.Position{X: 9, Y: 3}, got.Pos)
	assert.Equal(t, 2, got.W)
	assert.Equal(t, 1, got.H)

	got, ok = loaded.Lookup("comment:note")
	require.True(t, ok)
	assert.Equal(t, "heavy", got.Text)
}

func TestMarshal_KeepsInsertionOrder(t *testing.T) {
	s := New("order", 10, 10)
	require.NoError(t, s.Add(NewEntity("z", KindComment, types.Position{})))
	require.NoError(t, s.Add(NewEntity("a", KindLocation, types.Position{})))

	data, err := Marshal(s)
	require.NoError(t, err)
	text := string(data)
	assert.Less(t, strings.Index(text, "id: z"), strings.Index(text, "id: a"))
	assert.NotContains(t, text, "w:", "default sizes are omitted")
}
