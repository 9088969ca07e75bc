package census

import (
	"testing"

	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	sc := scene.New("t", 10, 10)
	assert.Equal(t, "0 entities", Summary(sc))

	require.NoError(t, sc.Add(scene.NewEntity("a", scene.KindObject, types.Position{})))
	require.NoError(t, sc.Add(scene.NewEntity("b", scene.KindObject, types.Position{})))
	require.NoError(t, sc.Add(scene.NewEntity("p", scene.KindPath, types.Position{})))
	assert.Equal(t, "3 entities: 1 path, 2 object", Summary(sc))
}
