package game

import (
	"errors"
	"sync"
	"time"

	"github.com/3NJDGZ/brain-training-api/maze"
	"github.com/google/uuid"
)

// Session-related errors.
var (
	ErrSessionFinished   = errors.New("session already finished")
	ErrNoPendingExercise = errors.New("no exercise pending at the player's cell")
	ErrExerciseMismatch  = errors.New("exercise does not match the pending one")
)

// Session is one player's run through one maze. The maze topology is
// immutable for the session's lifetime; the session tracks the player's
// position, score, pending exercise, and hint usage. All methods are
// safe for concurrent use.
type Session struct {
	id        uuid.UUID
	playerID  uuid.UUID
	maze      *maze.Maze
	pos       maze.Position
	score     int
	hintsUsed int
	pending   *Exercise
	finished  bool
	startedAt time.Time

	sync.RWMutex
}

// NewSession starts a session for the player at the maze's start cell.
func NewSession(playerID uuid.UUID, m *maze.Maze) *Session {
	return &Session{
		id:        uuid.New(),
		playerID:  playerID,
		maze:      m,
		pos:       m.Start(),
		startedAt: time.Now().UTC(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// PlayerID returns the owning player's identifier.
func (s *Session) PlayerID() uuid.UUID { return s.playerID }

// Maze returns the session's maze.
func (s *Session) Maze() *maze.Maze { return s.maze }

// Pos returns the player's current cell position.
func (s *Session) Pos() maze.Position {
	s.RLock()
	defer s.RUnlock()
	return s.pos
}

// Score returns the points accumulated so far.
func (s *Session) Score() int {
	s.RLock()
	defer s.RUnlock()
	return s.score
}

// Finished reports whether the player has completed the run.
func (s *Session) Finished() bool {
	s.RLock()
	defer s.RUnlock()
	return s.finished
}

// Move steps the player one cell in the given direction. It fails with
// maze.ErrInvalidMove when a wall or the maze boundary blocks the step.
// Entering a cell with an unfinished exercise makes that exercise
// pending; reaching the exit with every exercise complete finishes the
// session.
func (s *Session) Move(dir string) error {
	s.Lock()
	defer s.Unlock()

	if s.finished {
		return ErrSessionFinished
	}

	target, err := s.maze.TargetOf(s.pos, dir)
	if err != nil {
		return err
	}
	s.pos = target

	s.pending = nil
	cell := s.maze.Grid().CellAt(s.pos)
	if ex, ok := cell.Exercise().(*Exercise); ok && !ex.IsComplete() {
		s.pending = ex
	}

	if s.pos == s.maze.Exit() && s.maze.AllExercisesComplete() {
		s.finished = true
	}
	return nil
}

// PendingExercise returns the unfinished exercise at the player's
// current cell, or nil.
func (s *Session) PendingExercise() *Exercise {
	s.RLock()
	defer s.RUnlock()
	return s.pending
}

// CompleteExercise finishes the pending exercise, which must match id,
// and adds its points to the score.
func (s *Session) CompleteExercise(id uuid.UUID) (*Exercise, error) {
	s.Lock()
	defer s.Unlock()

	if s.finished {
		return nil, ErrSessionFinished
	}
	if s.pending == nil {
		return nil, ErrNoPendingExercise
	}
	if s.pending.ID() != id {
		return nil, ErrExerciseMismatch
	}

	ex := s.pending
	ex.Complete()
	s.score += ex.Points()
	s.pending = nil
	return ex, nil
}

// RequestHint computes the path from the player's current cell to the
// exit. The returned sequence excludes the player's cell and ends at
// the exit; an empty sequence means the player is already there.
func (s *Session) RequestHint() ([]maze.Position, error) {
	s.Lock()
	defer s.Unlock()

	if s.finished {
		return nil, ErrSessionFinished
	}

	path, err := s.maze.HintPath(s.pos)
	if err != nil {
		return nil, err
	}
	s.hintsUsed++
	return path, nil
}

// HintsUsed returns how many hints the player has requested.
func (s *Session) HintsUsed() int {
	s.RLock()
	defer s.RUnlock()
	return s.hintsUsed
}

// Snapshot captures the full observable session state for transport.
func (s *Session) Snapshot() Snapshot {
	s.RLock()
	defer s.RUnlock()

	grid := s.maze.Grid()
	cells := make([][]CellState, grid.Rows())
	for r, row := range grid.Cells() {
		cells[r] = make([]CellState, grid.Cols())
		for c, cell := range row {
			cells[r][c] = CellState{
				NorthWall:    cell.NorthWall,
				SouthWall:    cell.SouthWall,
				EastWall:     cell.EastWall,
				WestWall:     cell.WestWall,
				Start:        cell.IsStart(),
				Exit:         cell.IsExit(),
				HasExercise:  cell.HasExercise(),
				ExerciseDone: cell.HasExercise() && cell.ExerciseComplete(),
				OnHintPath:   cell.OnHintPath(),
			}
		}
	}

	exercises := make([]ExerciseState, 0, len(s.maze.ExerciseCells()))
	for _, cell := range s.maze.ExerciseCells() {
		ex := cell.Exercise().(*Exercise)
		exercises = append(exercises, ExerciseState{
			ID:        ex.ID(),
			Area:      ex.Area().String(),
			Points:    ex.Points(),
			Completed: ex.IsComplete(),
			Pos:       cell.Pos(),
		})
	}

	snapshot := Snapshot{
		SessionID: s.id,
		PlayerID:  s.playerID,
		Rows:      grid.Rows(),
		Cols:      grid.Cols(),
		TileSize:  s.maze.TileSize(),
		Position:  s.pos,
		Exit:      s.maze.Exit(),
		Score:     s.score,
		HintsUsed: s.hintsUsed,
		Finished:  s.finished,
		StartedAt: s.startedAt,
		Exercises: exercises,
		Cells:     cells,
	}
	if s.pending != nil {
		snapshot.PendingExercise = &ExerciseState{
			ID:        s.pending.ID(),
			Area:      s.pending.Area().String(),
			Points:    s.pending.Points(),
			Completed: false,
			Pos:       s.pos,
		}
	}
	return snapshot
}

// CellState is the wire form of one cell.
type CellState struct {
	NorthWall    bool `json:"north_wall"`
	SouthWall    bool `json:"south_wall"`
	EastWall     bool `json:"east_wall"`
	WestWall     bool `json:"west_wall"`
	Start        bool `json:"start,omitempty"`
	Exit         bool `json:"exit,omitempty"`
	HasExercise  bool `json:"has_exercise,omitempty"`
	ExerciseDone bool `json:"exercise_done,omitempty"`
	OnHintPath   bool `json:"on_hint_path,omitempty"`
}

// ExerciseState is the wire form of one exercise payload.
type ExerciseState struct {
	ID        uuid.UUID     `json:"id"`
	Area      string        `json:"area"`
	Points    int           `json:"points"`
	Completed bool          `json:"completed"`
	Pos       maze.Position `json:"pos"`
}

// Snapshot is the wire form of a full session state.
type Snapshot struct {
	SessionID       uuid.UUID       `json:"session_id"`
	PlayerID        uuid.UUID       `json:"player_id"`
	Rows            int             `json:"rows"`
	Cols            int             `json:"cols"`
	TileSize        int             `json:"tile_size"`
	Position        maze.Position   `json:"position"`
	Exit            maze.Position   `json:"exit"`
	Score           int             `json:"score"`
	HintsUsed       int             `json:"hints_used"`
	Finished        bool            `json:"finished"`
	StartedAt       time.Time       `json:"started_at"`
	PendingExercise *ExerciseState  `json:"pending_exercise,omitempty"`
	Exercises       []ExerciseState `json:"exercises"`
	Cells           [][]CellState   `json:"cells"`
}
