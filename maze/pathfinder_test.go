package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertWalkable checks that path, walked from start, crosses only open
// walls, repeats no cell, and ends at the exit.
func assertWalkable(t *testing.T, m *Maze, start Position, path []Position) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, m.Exit(), path[len(path)-1])

	seen := map[Position]struct{}{start: {}}
	at := start
	for _, next := range path {
		_, dup := seen[next]
		assert.False(t, dup, "cell %v appears twice", next)
		seen[next] = struct{}{}

		from := m.Grid().CellAt(at)
		to := m.Grid().CellAt(next)
		require.NotNil(t, to, "path leaves the grid at %v", next)
		assert.True(t, m.Grid().openBetween(from, to), "step %v -> %v crosses a closed wall", at, next)
		at = next
	}
}

func TestHintPathFromStart(t *testing.T) {
	m := buildMaze(t, 10, 10, 21)

	path, err := m.HintPath(m.Start())
	require.NoError(t, err)
	assertWalkable(t, m, m.Start(), path)

	t.Run("path excludes the player's cell", func(t *testing.T) {
		assert.NotEqual(t, m.Start(), path[0])
	})

	t.Run("path cells are flagged for rendering", func(t *testing.T) {
		flagged := map[Position]struct{}{}
		for _, pos := range path {
			assert.True(t, m.Grid().CellAt(pos).OnHintPath())
			flagged[pos] = struct{}{}
		}
		for _, row := range m.Grid().Cells() {
			for _, cell := range row {
				if _, ok := flagged[cell.Pos()]; !ok {
					assert.False(t, cell.OnHintPath(), "cell (%d,%d) flagged off-path", cell.Row, cell.Col)
				}
			}
		}
	})
}

func TestHintPathAtExit(t *testing.T) {
	m := buildMaze(t, 6, 6, 5)

	path, err := m.HintPath(m.Exit())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestHintPathOutOfBounds(t *testing.T) {
	m := buildMaze(t, 6, 6, 5)

	_, err := m.HintPath(Position{Row: -1, Col: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = m.HintPath(Position{Row: 6, Col: 6})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestHintPathRepeatedRequests(t *testing.T) {
	m := buildMaze(t, 12, 12, 77)

	first, err := m.HintPath(m.Start())
	require.NoError(t, err)
	assertWalkable(t, m, m.Start(), first)

	// Progressively closer positions along the first path; each request
	// must still succeed even though earlier paths covered these cells.
	for i := 0; i < len(first)-1; i++ {
		from := first[i]
		path, err := m.HintPath(from)
		require.NoError(t, err, "hint from %v failed", from)
		assertWalkable(t, m, from, path)
	}
}

func TestHintPathCorruptedGrid(t *testing.T) {
	m := buildMaze(t, 8, 8, 13)

	// Desynchronize the exit cell's walls on one side only. The search
	// re-checks both sides of every wall, so it must now report failure
	// rather than cross the broken edge.
	exit := m.Grid().CellAt(m.Exit())
	exit.NorthWall = true
	exit.SouthWall = true
	exit.EastWall = true
	exit.WestWall = true

	_, err := m.HintPath(m.Start())
	assert.ErrorIs(t, err, ErrNoPathToExit)
}

func TestHintPathDeterministic(t *testing.T) {
	a := buildMaze(t, 10, 10, 314)
	b := buildMaze(t, 10, 10, 314)

	pa, err := a.HintPath(a.Start())
	require.NoError(t, err)
	pb, err := b.HintPath(b.Start())
	require.NoError(t, err)

	assert.Equal(t, pa, pb)
}
