package maze

import (
	"math/rand"
)

// Cardinal direction names, matching the wall fields on Cell.
const (
	North = "North"
	South = "South"
	East  = "East"
	West  = "West"
)

// Directions maps each direction name to its row/column delta. Row 0
// is the top of the maze, so North decreases the row index.
var Directions = map[string]Position{
	North: {Row: -1, Col: 0},
	South: {Row: 1, Col: 0},
	East:  {Row: 0, Col: 1},
	West:  {Row: 0, Col: -1},
}

// adjacencyOrder fixes the deterministic neighbor enumeration used by
// the hint search: west, east, north, south.
var adjacencyOrder = []string{West, East, North, South}

// Grid owns the rows*cols cell matrix. It is created fully walled;
// the generator carves it exactly once, after which the wall topology
// is read-only.
type Grid struct {
	rows  int
	cols  int
	cells [][]*Cell
}

func newGrid(rows, cols int) *Grid {
	cells := make([][]*Cell, rows)
	for r := range cells {
		cells[r] = make([]*Cell, cols)
		for c := range cells[r] {
			cells[r][c] = newCell(r, c)
		}
	}
	return &Grid{rows: rows, cols: cols, cells: cells}
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int { return g.cols }

// InBound reports whether (row, col) lies within the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// CellAt returns the cell at pos, or nil when pos is out of bounds.
func (g *Grid) CellAt(pos Position) *Cell {
	if !g.InBound(pos.Row, pos.Col) {
		return nil
	}
	return g.cells[pos.Row][pos.Col]
}

// Cells returns the full cell matrix, indexed [row][col].
func (g *Grid) Cells() [][]*Cell {
	return g.cells
}

// AdjacentCells returns the up-to-four in-bounds grid neighbors of pos.
// With a nil rng the order is deterministic (west, east, north, south),
// as the hint search requires; with an rng the result is a uniformly
// random permutation, which is what makes every generated maze
// different.
func (g *Grid) AdjacentCells(pos Position, rng *rand.Rand) []*Cell {
	neighbors := make([]*Cell, 0, 4)
	for _, dir := range adjacencyOrder {
		delta := Directions[dir]
		if cell := g.CellAt(Position{Row: pos.Row + delta.Row, Col: pos.Col + delta.Col}); cell != nil {
			neighbors = append(neighbors, cell)
		}
	}
	if rng != nil {
		rng.Shuffle(len(neighbors), func(i, j int) {
			neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
		})
	}
	return neighbors
}

// removeWallBetween carves the shared wall of two grid-adjacent cells,
// flipping both sides in one step so the symmetry invariant holds at
// every point during generation.
func (g *Grid) removeWallBetween(current, next *Cell) {
	switch {
	case current.Row-next.Row == 1: // next is directly above
		current.NorthWall = false
		next.SouthWall = false
	case current.Row-next.Row == -1: // next is directly below
		current.SouthWall = false
		next.NorthWall = false
	case current.Col-next.Col == -1: // next is directly right
		current.EastWall = false
		next.WestWall = false
	case current.Col-next.Col == 1: // next is directly left
		current.WestWall = false
		next.EastWall = false
	}
}

// openBetween reports whether the shared wall of two grid-adjacent
// cells is absent on both sides. Checking both sides is redundant
// against a well-formed grid but catches symmetry violations.
func (g *Grid) openBetween(current, next *Cell) bool {
	switch {
	case current.Row-next.Row == 1:
		return !current.NorthWall && !next.SouthWall
	case current.Row-next.Row == -1:
		return !current.SouthWall && !next.NorthWall
	case current.Col-next.Col == -1:
		return !current.EastWall && !next.WestWall
	case current.Col-next.Col == 1:
		return !current.WestWall && !next.EastWall
	}
	return false
}

// OpenEdgeCount returns the number of open edges in the grid, counting
// each adjacent pair once. A perfect maze has exactly rows*cols-1.
func (g *Grid) OpenEdgeCount() int {
	count := 0
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			cell := g.cells[r][c]
			if c+1 < g.cols && g.openBetween(cell, g.cells[r][c+1]) {
				count++
			}
			if r+1 < g.rows && g.openBetween(cell, g.cells[r+1][c]) {
				count++
			}
		}
	}
	return count
}

// clearHintFlags resets the hint marker on every cell. Ran before each
// hint computation so earlier hints never exclude cells from later
// searches.
func (g *Grid) clearHintFlags() {
	for _, row := range g.cells {
		for _, cell := range row {
			cell.onHintPath = false
		}
	}
}
