/*
Package maze implements the maze engine for the brain-training game:
procedural generation of a perfect maze over a rectangular grid, and a
repeatable hint search that reconstructs a navigable path from any cell
to the exit.

A maze is constructed once from world dimensions and a tile size, carved
with a randomized iterative backtracker, and is topologically immutable
afterwards. Cells chosen during construction carry opaque exercise
payloads supplied by the caller. Generation is deterministic for a fixed
seed.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const maxGridDimension = 64

// Construction and movement errors.
var (
	ErrInvalidDimensions    = errors.New("invalid maze dimensions")
	ErrInvalidExerciseRange = errors.New("invalid exercise cell count range")
	ErrInvalidMove          = errors.New("invalid move request")
	ErrOutOfBounds          = errors.New("position is out of the maze")
)

// Config holds the parameters for building a maze.
type Config struct {
	TileSize int // side of one cell in world units
	Width    int // world width; columns = Width / TileSize
	Height   int // world height; rows = Height / TileSize

	// Seed drives every random choice made during construction. Two
	// mazes built with equal dimensions and seeds are identical.
	Seed int64

	// MinExerciseCells and MaxExerciseCells bound how many
	// non-start/non-exit cells receive an exercise payload.
	MinExerciseCells int
	MaxExerciseCells int

	// NewExercise supplies the payload for each chosen cell. When nil
	// no exercises are placed.
	NewExercise ExerciseFactory
}

// Maze is a carved rectangular maze with a fixed start, exit, and set
// of exercise cells. It is safe to query from a single goroutine; both
// generation and hint search are synchronous and run to completion.
type Maze struct {
	grid          *Grid
	rng           *rand.Rand
	tileSize      int
	start         Position
	exit          Position
	exerciseCells []*Cell
	finder        *exitPathFinder
}

// New builds and carves a maze from the given configuration.
func New(cfg Config) (*Maze, error) {
	if cfg.TileSize <= 0 || cfg.Width < cfg.TileSize || cfg.Height < cfg.TileSize {
		return nil, ErrInvalidDimensions
	}
	rows := cfg.Height / cfg.TileSize
	cols := cfg.Width / cfg.TileSize
	if max(rows, cols) > maxGridDimension {
		return nil, ErrInvalidDimensions
	}
	if cfg.MinExerciseCells < 0 || cfg.MinExerciseCells > cfg.MaxExerciseCells {
		return nil, ErrInvalidExerciseRange
	}

	m := &Maze{
		grid:     newGrid(rows, cols),
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		tileSize: cfg.TileSize,
		start:    Position{Row: 0, Col: 0},
	}

	m.grid.CellAt(m.start).isStart = true
	m.placeExit()
	m.placeExercises(cfg)

	gen := &generator{grid: m.grid, rng: m.rng}
	gen.carve(m.start)

	m.finder = &exitPathFinder{grid: m.grid, exit: m.exit}
	return m, nil
}

// placeExit picks the exit uniformly within the lower-right quadrant of
// the grid. On a 1x1 grid the exit coincides with the start.
func (m *Maze) placeExit() {
	rowLo := (m.grid.rows * 2) / 3
	colLo := (m.grid.cols * 2) / 3
	if rowLo > m.grid.rows-1 {
		rowLo = m.grid.rows - 1
	}
	if colLo > m.grid.cols-1 {
		colLo = m.grid.cols - 1
	}
	m.exit = Position{
		Row: rowLo + m.rng.Intn(m.grid.rows-rowLo),
		Col: colLo + m.rng.Intn(m.grid.cols-colLo),
	}
	m.grid.CellAt(m.exit).isExit = true
}

// placeExercises attaches payloads to a random selection of cells,
// never the start or the exit. The drawn count is clamped when the
// grid has fewer eligible cells than the configured minimum.
func (m *Maze) placeExercises(cfg Config) {
	if cfg.NewExercise == nil || cfg.MaxExerciseCells == 0 {
		return
	}

	eligible := make([]*Cell, 0, m.grid.rows*m.grid.cols)
	for _, row := range m.grid.cells {
		for _, cell := range row {
			if cell.isStart || cell.isExit {
				continue
			}
			eligible = append(eligible, cell)
		}
	}
	m.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	count := cfg.MinExerciseCells + m.rng.Intn(cfg.MaxExerciseCells-cfg.MinExerciseCells+1)
	if count > len(eligible) {
		count = len(eligible)
	}

	for _, cell := range eligible[:count] {
		cell.exercise = cfg.NewExercise(cell.Pos())
		m.exerciseCells = append(m.exerciseCells, cell)
	}
}

// Grid returns the underlying cell matrix owner.
func (m *Maze) Grid() *Grid { return m.grid }

// Rows returns the number of rows.
func (m *Maze) Rows() int { return m.grid.rows }

// Cols returns the number of columns.
func (m *Maze) Cols() int { return m.grid.cols }

// TileSize returns the world-unit side length of one cell.
func (m *Maze) TileSize() int { return m.tileSize }

// Start returns the start cell position, always (0,0).
func (m *Maze) Start() Position { return m.start }

// Exit returns the exit cell position.
func (m *Maze) Exit() Position { return m.exit }

// ExerciseCells returns the cells that carry an exercise payload.
func (m *Maze) ExerciseCells() []*Cell { return m.exerciseCells }

// AllExercisesComplete reports whether every attached exercise has been
// finished.
func (m *Maze) AllExercisesComplete() bool {
	for _, cell := range m.exerciseCells {
		if !cell.ExerciseComplete() {
			return false
		}
	}
	return true
}

// CellBounds returns the world-coordinate square of the cell at pos.
// External collision layers pair it with the cell's wall flags.
func (m *Maze) CellBounds(pos Position) (Rect, error) {
	cell := m.grid.CellAt(pos)
	if cell == nil {
		return Rect{}, ErrOutOfBounds
	}
	return cell.Bounds(m.tileSize), nil
}

// IsValidMove reports whether a step from pos in the given direction
// crosses an open wall. Both sides of the shared wall are consulted.
func (m *Maze) IsValidMove(pos Position, dir string) bool {
	_, err := m.TargetOf(pos, dir)
	return err == nil
}

// TargetOf resolves a step from pos in the given direction to the
// destination cell position, or ErrInvalidMove when a wall or the maze
// boundary blocks it.
func (m *Maze) TargetOf(pos Position, dir string) (Position, error) {
	delta, ok := Directions[dir]
	if !ok {
		return Position{}, ErrInvalidMove
	}
	from := m.grid.CellAt(pos)
	to := m.grid.CellAt(Position{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col})
	if from == nil || to == nil {
		return Position{}, ErrInvalidMove
	}
	if !m.grid.openBetween(from, to) {
		return Position{}, ErrInvalidMove
	}
	return to.Pos(), nil
}

// HintPath computes the ordered cell sequence from the player's
// position (excluded) to the exit (included) over open edges, flagging
// each cell on it for rendering. It returns ErrNoPathToExit when no
// route exists and an empty path when the player is already at the
// exit.
func (m *Maze) HintPath(from Position) ([]Position, error) {
	if !m.grid.InBound(from.Row, from.Col) {
		return nil, ErrOutOfBounds
	}
	return m.finder.findFrom(from)
}

// String renders the maze as ASCII art: S start, E exit, X exercise
// cell, * hint path.
func (m *Maze) String() string {
	var b strings.Builder

	b.WriteString("+" + strings.Repeat("---+", m.grid.cols) + "\n")
	for r := 0; r < m.grid.rows; r++ {
		cellRow := "|"
		wallRow := "+"
		for c := 0; c < m.grid.cols; c++ {
			cell := m.grid.cells[r][c]

			switch {
			case cell.isStart:
				cellRow += " S "
			case cell.isExit:
				cellRow += " E "
			case cell.exercise != nil:
				cellRow += " X "
			case cell.onHintPath:
				cellRow += " * "
			default:
				cellRow += "   "
			}

			if cell.EastWall {
				cellRow += "|"
			} else {
				cellRow += " "
			}
			if cell.SouthWall {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		fmt.Fprintf(&b, "%s\n%s\n", cellRow, wallRow)
	}

	return b.String()
}
