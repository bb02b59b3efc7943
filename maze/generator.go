package maze

import (
	"math/rand"
)

// generator carves a perfect maze into a grid with a randomized
// iterative backtracker. The traversal is a single explicit worklist,
// so its depth is bounded by the stack capacity instead of the call
// stack.
type generator struct {
	grid *Grid
	rng  *rand.Rand
}

// carve runs the depth-first walk from start until every cell has been
// visited. The open-edge graph it leaves behind is a spanning tree:
// rows*cols-1 open edges, no cycles, every cell reachable.
func (g *generator) carve(start Position) {
	visited := make(map[Position]struct{}, g.grid.rows*g.grid.cols)
	stack := NewBoundedStack[*Cell](g.grid.rows * g.grid.cols)

	visited[start] = struct{}{}
	stack.Push(g.grid.CellAt(start))

	for {
		current, ok := stack.Peek()
		if !ok {
			break
		}
		current.visitedGen = true

		// Descend into the first unvisited neighbor, in shuffled order.
		// Re-shuffling on every visit keeps the walk uniformly random.
		var next *Cell
		for _, neighbor := range g.grid.AdjacentCells(current.Pos(), g.rng) {
			if _, seen := visited[neighbor.Pos()]; !seen {
				next = neighbor
				break
			}
		}

		if next == nil {
			stack.Pop() // dead end, backtrack
			continue
		}

		g.grid.removeWallBetween(current, next)
		visited[next.Pos()] = struct{}{}
		stack.Push(next)
	}
}
