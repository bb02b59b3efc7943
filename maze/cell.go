package maze

// Position identifies a cell by its row and column indices. The grid
// position is the single source of truth for a cell; world coordinates
// are derived from it and the tile size.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Rect is the world-coordinate bounding region of a cell, used by
// external layers for player-vs-wall collision checks.
type Rect struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Size int `json:"size"`
}

// Exercise is an opaque payload attached to a cell by the exercise
// subsystem. The maze never inspects it beyond asking whether it has
// been completed.
type Exercise interface {
	IsComplete() bool
}

// ExerciseFactory produces the payload for a cell chosen to carry an
// exercise during maze construction.
type ExerciseFactory func(pos Position) Exercise

// Cell is a single unit square of the maze. It starts fully enclosed;
// generation carves passages by dropping wall pairs between adjacent
// cells.
type Cell struct {
	Row int
	Col int

	NorthWall bool
	SouthWall bool
	EastWall  bool
	WestWall  bool

	visitedGen bool
	onHintPath bool
	isStart    bool
	isExit     bool
	exercise   Exercise
}

func newCell(row, col int) *Cell {
	return &Cell{
		Row:       row,
		Col:       col,
		NorthWall: true,
		SouthWall: true,
		EastWall:  true,
		WestWall:  true,
	}
}

// Pos returns the cell's grid position.
func (c *Cell) Pos() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// HasWall reports whether the wall on the given side is present.
func (c *Cell) HasWall(dir string) bool {
	switch dir {
	case North:
		return c.NorthWall
	case South:
		return c.SouthWall
	case East:
		return c.EastWall
	case West:
		return c.WestWall
	}
	return true
}

// VisitedGeneration reports whether carving has passed through the cell.
func (c *Cell) VisitedGeneration() bool {
	return c.visitedGen
}

// OnHintPath reports whether the cell lies on the most recently
// computed hint path.
func (c *Cell) OnHintPath() bool {
	return c.onHintPath
}

// IsStart reports whether the cell is the maze's start cell.
func (c *Cell) IsStart() bool {
	return c.isStart
}

// IsExit reports whether the cell is the maze's exit cell.
func (c *Cell) IsExit() bool {
	return c.isExit
}

// HasExercise reports whether an exercise payload is attached.
func (c *Cell) HasExercise() bool {
	return c.exercise != nil
}

// Exercise returns the attached payload, or nil.
func (c *Cell) Exercise() Exercise {
	return c.exercise
}

// ExerciseComplete reports whether the attached exercise, if any, has
// been finished. Cells without an exercise count as complete.
func (c *Cell) ExerciseComplete() bool {
	if c.exercise == nil {
		return true
	}
	return c.exercise.IsComplete()
}

// Bounds returns the cell's world-coordinate square for the given tile
// size.
func (c *Cell) Bounds(tileSize int) Rect {
	return Rect{X: c.Col * tileSize, Y: c.Row * tileSize, Size: tileSize}
}
