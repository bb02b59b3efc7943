package maze

import (
	"errors"
)

// ErrNoPathToExit is returned when the hint search exhausts its stack
// without reaching the exit. Against a correctly generated maze this
// only happens if the wall symmetry invariant has been broken.
var ErrNoPathToExit = errors.New("no open path to the exit")

// exitPathFinder reconstructs a route from an arbitrary cell to the
// exit over the open-edge graph, for use as an in-game hint. It runs
// any number of times against the carved grid, once per hint request.
type exitPathFinder struct {
	grid *Grid
	exit Position
}

// findFrom searches from start to the exit and returns the ordered
// path, excluding start itself and ending at the exit. Every cell on
// the returned path is flagged for the caller to render; flags from
// earlier requests are cleared first so they never prune this search.
// A start equal to the exit yields an empty path.
func (f *exitPathFinder) findFrom(start Position) ([]Position, error) {
	f.grid.clearHintFlags()

	if start == f.exit {
		return []Position{}, nil
	}

	visited := make(map[Position]struct{}, f.grid.rows*f.grid.cols)
	cameFrom := make(map[Position]Position)
	stack := NewBoundedStack[*Cell](f.grid.rows * f.grid.cols)
	stack.Push(f.grid.CellAt(start))

	for {
		current, ok := stack.Pop()
		if !ok {
			return nil, ErrNoPathToExit
		}
		if current.Pos() == f.exit {
			break
		}
		visited[current.Pos()] = struct{}{}

		// Deterministic neighbor order; a move is valid only if the
		// shared wall is open on both sides and the cell is not part of
		// a previously rendered hint.
		for _, neighbor := range f.grid.AdjacentCells(current.Pos(), nil) {
			if !f.grid.openBetween(current, neighbor) {
				continue
			}
			if neighbor.onHintPath {
				continue
			}
			if _, seen := visited[neighbor.Pos()]; seen {
				continue
			}
			// First writer wins: the path follows discovery order, not
			// the shortest route.
			if _, discovered := cameFrom[neighbor.Pos()]; !discovered {
				cameFrom[neighbor.Pos()] = current.Pos()
			}
			stack.Push(neighbor)
		}
	}

	// Walk backward from the exit, then invert into forward order.
	reverse := make([]Position, 0, f.grid.rows*f.grid.cols)
	for at := f.exit; at != start; {
		reverse = append(reverse, at)
		prev, ok := cameFrom[at]
		if !ok {
			return nil, ErrNoPathToExit
		}
		at = prev
	}

	path := make([]Position, 0, len(reverse))
	for i := len(reverse) - 1; i >= 0; i-- {
		path = append(path, reverse[i])
	}

	for _, pos := range path {
		f.grid.CellAt(pos).onHintPath = true
	}
	return path, nil
}
