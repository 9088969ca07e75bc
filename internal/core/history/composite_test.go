package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeAction_UndoRedoAllChildren(t *testing.T) {
	scene := newFakeScene()
	a := scene.add("a", 0, 0)
	b := scene.add("b", 10, 10)

	c := NewCompositeAction(move(a, pos(0, 0), pos(5, 0)), move(b, pos(10, 10), pos(15, 10)))
	require.Equal(t, 2, c.Len())

	require.NoError(t, c.Undo(scene))
	assert.Equal(t, pos(0, 0), a.pos)
	assert.Equal(t, pos(10, 10), b.pos)

	require.NoError(t, c.Redo(scene))
	assert.Equal(t, pos(5, 0), a.pos)
	assert.Equal(t, pos(15, 10), b.pos)
}

func TestCompositeAction_MissingChildDoesNotBlockSiblings(t *testing.T) {
	scene := newFakeScene()
	x := scene.add("x", 0, 0)
	y := scene.add("y", 0, 0)

	c := NewCompositeAction(move(x, pos(0, 0), pos(6, 6)), move(y, pos(0, 0), pos(6, 6)))
	scene.remove(x)

	err := c.Undo(scene)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, pos(0, 0), y.pos)

	var lookup *LookupError
	require.True(t, errors.As(err, &lookup))
	assert.Equal(t, x.Key(), lookup.Key)
}

func TestCompositeAction_MatchingIsOrderIndependent(t *testing.T) {
	scene := newFakeScene()
	a := scene.add("a", 0, 0)
	b := scene.add("b", 0, 0)

	recorded := NewCompositeAction(move(a, pos(0, 0), pos(1, 1)), move(b, pos(0, 0), pos(1, 1)))
	incoming := NewCompositeAction(move(b, pos(0, 0), pos(3, 3)), move(a, pos(0, 0), pos(3, 3)))

	require.True(t, recorded.IsExtensionOf(incoming))
	require.NoError(t, recorded.Extend(incoming))

	for _, child := range recorded.Children() {
		m := child.(*MoveAction)
		assert.Equal(t, pos(0, 0), m.Origin().Pos)
		assert.Equal(t, pos(3, 3), m.Final().Pos)
	}
}

func TestCompositeAction_IsExtensionOf(t *testing.T) {
	a := &fakeEntity{key: Key{Kind: "object", ID: "a"}}
	b := &fakeEntity{key: Key{Kind: "object", ID: "b"}}
	c := &fakeEntity{key: Key{Kind: "object", ID: "c"}}

	recorded := NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(3, 0)), NewMoveAction(b, pos(4, 4), pos(7, 4)))

	tests := []struct {
		name  string
		other Action
		want  bool
	}{
		{
			name:  "same drag continued",
			other: NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(9, 0)), NewMoveAction(b, pos(4, 4), pos(13, 4))),
			want:  true,
		},
		{
			name:  "one child started elsewhere",
			other: NewCompositeAction(NewMoveAction(a, pos(3, 0), pos(9, 0)), NewMoveAction(b, pos(4, 4), pos(13, 4))),
			want:  false,
		},
		{
			name:  "fewer children",
			other: NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(9, 0))),
			want:  false,
		},
		{
			name: "extra child",
			other: NewCompositeAction(
				NewMoveAction(a, pos(0, 0), pos(9, 0)),
				NewMoveAction(b, pos(4, 4), pos(13, 4)),
				NewMoveAction(c, pos(1, 1), pos(2, 2)),
			),
			want: false,
		},
		{
			name:  "plain move",
			other: NewMoveAction(a, pos(0, 0), pos(9, 0)),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recorded.IsExtensionOf(tt.other))
		})
	}
}

func TestCompositeAction_ExtendWithoutMatchIsContractViolation(t *testing.T) {
	a := &fakeEntity{key: Key{Kind: "object", ID: "a"}}
	b := &fakeEntity{key: Key{Kind: "object", ID: "b"}}

	recorded := NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(3, 0)), NewMoveAction(b, pos(4, 4), pos(7, 4)))
	partial := NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(9, 0)), NewMoveAction(b, pos(7, 4), pos(9, 4)))

	err := recorded.Extend(partial)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContractViolation))

	first := recorded.Children()[0].(*MoveAction)
	assert.Equal(t, pos(3, 0), first.Final().Pos, "matched child must not be extended when the match is incomplete")

	err = recorded.Extend(NewMoveAction(a, pos(0, 0), pos(1, 1)))
	assert.True(t, errors.Is(err, ErrContractViolation))
}

func TestCompositeAction_IsNull(t *testing.T) {
	a := &fakeEntity{key: Key{Kind: "object", ID: "a"}}
	b := &fakeEntity{key: Key{Kind: "object", ID: "b"}}

	assert.True(t, NewCompositeAction().IsNull(), "empty composite")
	assert.True(t, NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(1, 1)), NewMoveAction(b, pos(5, 5), pos(5, 6))).IsNull())
	assert.False(t, NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(1, 1)), NewMoveAction(b, pos(5, 5), pos(9, 5))).IsNull())
}

func TestNewCompositeAction_FoldsDuplicateTargets(t *testing.T) {
	a := &fakeEntity{key: Key{Kind: "object", ID: "a"}}

	c := NewCompositeAction(
		NewMoveAction(a, pos(0, 0), pos(2, 0)),
		nil,
		NewMoveAction(a, pos(0, 0), pos(8, 0)),
	)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, pos(8, 0), c.Children()[0].(*MoveAction).Final().Pos)
}

func TestCompositeAction_NestedComposites(t *testing.T) {
	scene := newFakeScene()
	a := scene.add("a", 0, 0)
	b := scene.add("b", 0, 0)

	recorded := NewCompositeAction(NewCompositeAction(move(a, pos(0, 0), pos(4, 0))), move(b, pos(0, 0), pos(0, 4)))
	incoming := NewCompositeAction(move(b, pos(0, 0), pos(0, 9)), NewCompositeAction(move(a, pos(0, 0), pos(9, 0))))

	require.True(t, recorded.IsExtensionOf(incoming))
	require.NoError(t, recorded.Extend(incoming))

	require.NoError(t, recorded.Undo(scene))
	assert.Equal(t, pos(0, 0), a.pos)
	assert.Equal(t, pos(0, 0), b.pos)

	require.NoError(t, recorded.Redo(scene))
	assert.Equal(t, pos(9, 0), a.pos)
	assert.Equal(t, pos(0, 9), b.pos)
}

func TestCompositeAction_Description(t *testing.T) {
	a := &fakeEntity{key: Key{Kind: "comment", ID: "a"}}
	b := &fakeEntity{key: Key{Kind: "object", ID: "b"}}

	single := NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(4, 0)))
	assert.Equal(t, "Move comment (0,0) -> (4,0)", single.Description())

	pair := NewCompositeAction(NewMoveAction(a, pos(0, 0), pos(4, 0)), NewMoveAction(b, pos(0, 0), pos(4, 0)))
	assert.Equal(t, "2 simultaneous edits", pair.Description())
}
