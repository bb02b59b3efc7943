package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExercise struct {
	done bool
}

func (s *stubExercise) IsComplete() bool { return s.done }

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero tile size", Config{TileSize: 0, Width: 100, Height: 100}, ErrInvalidDimensions},
		{"width below one tile", Config{TileSize: 50, Width: 20, Height: 100}, ErrInvalidDimensions},
		{"height below one tile", Config{TileSize: 50, Width: 100, Height: 20}, ErrInvalidDimensions},
		{"oversized grid", Config{TileSize: 1, Width: 100, Height: 100}, ErrInvalidDimensions},
		{"negative exercise minimum", Config{TileSize: 10, Width: 100, Height: 100, MinExerciseCells: -1}, ErrInvalidExerciseRange},
		{"minimum above maximum", Config{TileSize: 10, Width: 100, Height: 100, MinExerciseCells: 3, MaxExerciseCells: 1}, ErrInvalidExerciseRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewDerivesGridFromWorldUnits(t *testing.T) {
	m, err := New(Config{TileSize: 100, Width: 1280, Height: 720, Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, 7, m.Rows())
	assert.Equal(t, 12, m.Cols())
	assert.Equal(t, 100, m.TileSize())
	assert.Equal(t, Position{Row: 0, Col: 0}, m.Start())
	assert.True(t, m.Grid().CellAt(m.Start()).IsStart())
}

func TestExitPlacedInLowerRightQuadrant(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		m := buildMaze(t, 12, 12, seed)
		exit := m.Exit()

		assert.GreaterOrEqual(t, exit.Row, (12*2)/3, "seed %d", seed)
		assert.GreaterOrEqual(t, exit.Col, (12*2)/3, "seed %d", seed)
		assert.Less(t, exit.Row, 12)
		assert.Less(t, exit.Col, 12)
		assert.True(t, m.Grid().CellAt(exit).IsExit())
	}
}

func TestExercisePlacement(t *testing.T) {
	newStub := func(Position) Exercise { return &stubExercise{} }

	t.Run("count stays within the configured range", func(t *testing.T) {
		for seed := int64(0); seed < 10; seed++ {
			m, err := New(Config{
				TileSize:         10,
				Width:            100,
				Height:           100,
				Seed:             seed,
				MinExerciseCells: 3,
				MaxExerciseCells: 6,
				NewExercise:      newStub,
			})
			require.NoError(t, err)

			n := len(m.ExerciseCells())
			assert.GreaterOrEqual(t, n, 3)
			assert.LessOrEqual(t, n, 6)
		}
	})

	t.Run("never on the start or exit cell", func(t *testing.T) {
		m, err := New(Config{
			TileSize:         10,
			Width:            50,
			Height:           50,
			Seed:             8,
			MinExerciseCells: 20,
			MaxExerciseCells: 23, // every eligible cell
			NewExercise:      newStub,
		})
		require.NoError(t, err)

		for _, cell := range m.ExerciseCells() {
			assert.False(t, cell.IsStart())
			assert.False(t, cell.IsExit())
			assert.True(t, cell.HasExercise())
		}
	})

	t.Run("completion is tracked through the opaque payload", func(t *testing.T) {
		m, err := New(Config{
			TileSize:         10,
			Width:            80,
			Height:           80,
			Seed:             2,
			MinExerciseCells: 2,
			MaxExerciseCells: 2,
			NewExercise:      newStub,
		})
		require.NoError(t, err)
		require.Len(t, m.ExerciseCells(), 2)

		assert.False(t, m.AllExercisesComplete())
		for _, cell := range m.ExerciseCells() {
			cell.Exercise().(*stubExercise).done = true
		}
		assert.True(t, m.AllExercisesComplete())
	})

	t.Run("no factory means no exercises", func(t *testing.T) {
		m, err := New(Config{
			TileSize:         10,
			Width:            80,
			Height:           80,
			Seed:             2,
			MinExerciseCells: 2,
			MaxExerciseCells: 4,
		})
		require.NoError(t, err)
		assert.Empty(t, m.ExerciseCells())
		assert.True(t, m.AllExercisesComplete())
	})
}

func TestCellBounds(t *testing.T) {
	m, err := New(Config{TileSize: 100, Width: 500, Height: 300, Seed: 0})
	require.NoError(t, err)

	rect, err := m.CellBounds(Position{Row: 2, Col: 4})
	require.NoError(t, err)
	assert.Equal(t, Rect{X: 400, Y: 200, Size: 100}, rect)

	_, err = m.CellBounds(Position{Row: 3, Col: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestMoves(t *testing.T) {
	m := buildMaze(t, 6, 6, 11)

	t.Run("hint path steps are all valid moves", func(t *testing.T) {
		path, err := m.HintPath(m.Start())
		require.NoError(t, err)

		at := m.Start()
		for _, next := range path {
			moved := false
			for dir := range Directions {
				if target, err := m.TargetOf(at, dir); err == nil && target == next {
					moved = true
					break
				}
			}
			assert.True(t, moved, "no open direction from %v to %v", at, next)
			at = next
		}
	})

	t.Run("walled directions are rejected", func(t *testing.T) {
		// A perfect maze on 6x6 has 35 open edges out of 60 adjacent
		// pairs, so some neighbor of some cell must be walled off.
		blocked := 0
		for _, row := range m.Grid().Cells() {
			for _, cell := range row {
				for dir := range Directions {
					if cell.HasWall(dir) {
						if _, err := m.TargetOf(cell.Pos(), dir); err != nil {
							blocked++
						}
					}
				}
			}
		}
		assert.Positive(t, blocked)
	})

	t.Run("unknown direction and boundary are invalid", func(t *testing.T) {
		_, err := m.TargetOf(m.Start(), "Up")
		assert.ErrorIs(t, err, ErrInvalidMove)

		_, err = m.TargetOf(Position{Row: 0, Col: 0}, North)
		assert.ErrorIs(t, err, ErrInvalidMove)

		assert.False(t, m.IsValidMove(Position{Row: -2, Col: 0}, South))
	})
}
