package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/3NJDGZ/brain-training-api/config"
	"github.com/3NJDGZ/brain-training-api/game"
	"github.com/3NJDGZ/brain-training-api/maze"
	"github.com/3NJDGZ/brain-training-api/service/i"
	"github.com/google/uuid"
)

const (
	// exercisePoints is the flat award for finishing any exercise.
	exercisePoints = 200

	watcherBuffer = 8
)

// ErrNoActiveSession is returned when a player has no running session.
var ErrNoActiveSession = errors.New("no active game session")

// GameConfig holds the maze parameters every new session is built with.
type GameConfig struct {
	TileSize         int
	Width            int
	Height           int
	MinExerciseCells int
	MaxExerciseCells int
}

// GameService keeps the live sessions, builds fresh mazes with
// exercises weighted toward each player's weak cognitive areas, and
// fans session snapshots out to watchers.
type GameService struct {
	cfg         GameConfig
	users       i.UserRepo
	performance i.PerformanceRepo
	leaderboard i.Leaderboard
	logger      *log.Logger

	sessions map[uuid.UUID]*game.Session
	watchers map[uuid.UUID]map[chan game.Snapshot]struct{}
	sync.RWMutex
}

// NewGameService wires a GameService.
func NewGameService(cfg GameConfig, users i.UserRepo, performance i.PerformanceRepo, leaderboard i.Leaderboard, logger *log.Logger) (*GameService, error) {
	if users == nil || performance == nil || leaderboard == nil {
		return nil, errors.New("game service requires user, performance and leaderboard dependencies")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &GameService{
		cfg:         cfg,
		users:       users,
		performance: performance,
		leaderboard: leaderboard,
		logger:      logger,
		sessions:    make(map[uuid.UUID]*game.Session),
		watchers:    make(map[uuid.UUID]map[chan game.Snapshot]struct{}),
	}, nil
}

// StartSession builds a maze seeded from the clock and begins a new run
// for the player, replacing any unfinished one.
func (g *GameService) StartSession(ctx context.Context, playerID uuid.UUID) (game.Snapshot, error) {
	weights, err := g.performance.Weights(ctx, playerID)
	if err != nil {
		g.logger.Printf("%s[WARN]%s loading weights for %s, using uniform: %v", config.LogErrorColor, config.LogColorReset, playerID, err)
		weights = nil
	}

	areaRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	m, err := maze.New(maze.Config{
		TileSize:         g.cfg.TileSize,
		Width:            g.cfg.Width,
		Height:           g.cfg.Height,
		Seed:             time.Now().UnixNano(),
		MinExerciseCells: g.cfg.MinExerciseCells,
		MaxExerciseCells: g.cfg.MaxExerciseCells,
		NewExercise: func(maze.Position) maze.Exercise {
			return game.NewExercise(game.PickArea(areaRng, weights), exercisePoints)
		},
	})
	if err != nil {
		return game.Snapshot{}, err
	}

	session := game.NewSession(playerID, m)
	g.Lock()
	g.sessions[playerID] = session
	g.Unlock()

	g.logger.Printf("%s[INFO]%s started session %s for player %s", config.LogInfoColor, config.LogColorReset, session.ID(), playerID)
	snapshot := session.Snapshot()
	g.broadcast(playerID, snapshot)
	return snapshot, nil
}

// Snapshot returns the current state of the player's session.
func (g *GameService) Snapshot(playerID uuid.UUID) (game.Snapshot, error) {
	session, err := g.session(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Move steps the player and, when the run finishes, submits the final
// score to the leaderboard.
func (g *GameService) Move(ctx context.Context, playerID uuid.UUID, direction string) (game.Snapshot, error) {
	session, err := g.session(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}

	if err := session.Move(direction); err != nil {
		return game.Snapshot{}, err
	}

	snapshot := session.Snapshot()
	if snapshot.Finished {
		g.submitScore(ctx, playerID, snapshot.Score)
	}
	g.broadcast(playerID, snapshot)
	return snapshot, nil
}

// Hint returns the ordered path from the player's cell to the exit.
func (g *GameService) Hint(playerID uuid.UUID) ([]maze.Position, error) {
	session, err := g.session(playerID)
	if err != nil {
		return nil, err
	}

	path, err := session.RequestHint()
	if err != nil {
		return nil, err
	}
	g.broadcast(playerID, session.Snapshot())
	return path, nil
}

// CompleteExercise finishes the pending exercise and records the earned
// points against the player's cognitive-area performance.
func (g *GameService) CompleteExercise(ctx context.Context, playerID uuid.UUID, exerciseID uuid.UUID) (game.Snapshot, error) {
	session, err := g.session(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}

	exercise, err := session.CompleteExercise(exerciseID)
	if err != nil {
		return game.Snapshot{}, err
	}

	if err := g.performance.RecordPoints(ctx, playerID, exercise.Area(), exercise.Points()); err != nil {
		g.logger.Printf("%s[ERROR]%s recording %s points for player %s: %v", config.LogErrorColor, config.LogColorReset, exercise.Area(), playerID, err)
	}

	snapshot := session.Snapshot()
	g.broadcast(playerID, snapshot)
	return snapshot, nil
}

// Watch subscribes to the player's session snapshots.
func (g *GameService) Watch(playerID uuid.UUID) (<-chan game.Snapshot, func(), error) {
	if _, err := g.session(playerID); err != nil {
		return nil, nil, err
	}

	ch := make(chan game.Snapshot, watcherBuffer)
	g.Lock()
	if g.watchers[playerID] == nil {
		g.watchers[playerID] = make(map[chan game.Snapshot]struct{})
	}
	g.watchers[playerID][ch] = struct{}{}
	g.Unlock()

	cancel := func() {
		g.Lock()
		defer g.Unlock()
		if _, ok := g.watchers[playerID][ch]; !ok {
			return
		}
		delete(g.watchers[playerID], ch)
		close(ch)
	}
	return ch, cancel, nil
}

func (g *GameService) session(playerID uuid.UUID) (*game.Session, error) {
	g.RLock()
	defer g.RUnlock()
	session, ok := g.sessions[playerID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

func (g *GameService) submitScore(ctx context.Context, playerID uuid.UUID, score int) {
	user, err := g.users.ByID(playerID)
	if err != nil {
		g.logger.Printf("%s[ERROR]%s resolving player %s for leaderboard: %v", config.LogErrorColor, config.LogColorReset, playerID, err)
		return
	}

	if err := g.leaderboard.SubmitScore(ctx, playerID, user.Username, score); err != nil {
		g.logger.Printf("%s[ERROR]%s submitting score for player %s: %v", config.LogErrorColor, config.LogColorReset, playerID, err)
		return
	}
	g.logger.Printf("%s[INFO]%s player %s finished with score %d", config.LogInfoColor, config.LogColorReset, playerID, score)
}

// broadcast pushes a snapshot to every watcher without blocking; slow
// watchers miss intermediate states, not the connection.
func (g *GameService) broadcast(playerID uuid.UUID, snapshot game.Snapshot) {
	g.RLock()
	defer g.RUnlock()
	for ch := range g.watchers[playerID] {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
