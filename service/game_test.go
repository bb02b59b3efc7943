package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	dmn "github.com/3NJDGZ/brain-training-api/domain"
	"github.com/3NJDGZ/brain-training-api/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gameFixture struct {
	service     *GameService
	users       *memUserRepo
	performance *memPerformanceRepo
	leaderboard *memLeaderboard
	playerID    uuid.UUID
}

func newGameFixture(t *testing.T, minExercises, maxExercises int) *gameFixture {
	t.Helper()

	users := newMemUserRepo()
	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      "test_player",
		PlainPassword: "J8#kLp2$vQw9",
	})
	require.NoError(t, err)
	require.NoError(t, users.Save(user))

	performance := &memPerformanceRepo{}
	leaderboard := &memLeaderboard{}

	service, err := NewGameService(GameConfig{
		TileSize:         10,
		Width:            80,
		Height:           80,
		MinExerciseCells: minExercises,
		MaxExerciseCells: maxExercises,
	}, users, performance, leaderboard, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	return &gameFixture{
		service:     service,
		users:       users,
		performance: performance,
		leaderboard: leaderboard,
		playerID:    user.ID,
	}
}

func dirBetween(t *testing.T, from, to maze.Position) string {
	t.Helper()
	for dir, delta := range maze.Directions {
		if from.Row+delta.Row == to.Row && from.Col+delta.Col == to.Col {
			return dir
		}
	}
	t.Fatalf("positions %v and %v are not adjacent", from, to)
	return ""
}

func TestGameServiceStartSession(t *testing.T) {
	f := newGameFixture(t, 0, 0)
	ctx := context.Background()

	snapshot, err := f.service.StartSession(ctx, f.playerID)
	require.NoError(t, err)
	assert.Equal(t, f.playerID, snapshot.PlayerID)
	assert.Equal(t, 8, snapshot.Rows)
	assert.Equal(t, 8, snapshot.Cols)
	assert.Equal(t, maze.Position{Row: 0, Col: 0}, snapshot.Position)
	assert.False(t, snapshot.Finished)

	current, err := f.service.Snapshot(f.playerID)
	require.NoError(t, err)
	assert.Equal(t, snapshot.SessionID, current.SessionID)

	t.Run("restart replaces the session", func(t *testing.T) {
		replacement, err := f.service.StartSession(ctx, f.playerID)
		require.NoError(t, err)
		assert.NotEqual(t, snapshot.SessionID, replacement.SessionID)
	})

	t.Run("unknown player has no session", func(t *testing.T) {
		_, err := f.service.Snapshot(uuid.New())
		assert.ErrorIs(t, err, ErrNoActiveSession)
	})
}

func TestGameServiceWeightsFallback(t *testing.T) {
	f := newGameFixture(t, 1, 3)
	f.performance.weightsErr = errors.New("mongo down")

	snapshot, err := f.service.StartSession(context.Background(), f.playerID)
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.Exercises)
}

func TestGameServiceWalkToExit(t *testing.T) {
	f := newGameFixture(t, 0, 0)
	ctx := context.Background()

	snapshot, err := f.service.StartSession(ctx, f.playerID)
	require.NoError(t, err)

	path, err := f.service.Hint(f.playerID)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	at := snapshot.Position
	for _, next := range path {
		snapshot, err = f.service.Move(ctx, f.playerID, dirBetween(t, at, next))
		require.NoError(t, err)
		at = next
	}

	assert.True(t, snapshot.Finished)
	assert.Equal(t, snapshot.Exit, snapshot.Position)

	require.Len(t, f.leaderboard.submissions, 1)
	submitted := f.leaderboard.submissions[0]
	assert.Equal(t, f.playerID, submitted.playerID)
	assert.Equal(t, "test_player", submitted.username)
	assert.Equal(t, snapshot.Score, submitted.score)
}

func TestGameServiceCompleteExercise(t *testing.T) {
	// With the exercise range far above the cell count every
	// non-start/non-exit cell carries one, so the first step along the
	// hint path always lands on a pending exercise.
	f := newGameFixture(t, 100, 100)
	ctx := context.Background()

	snapshot, err := f.service.StartSession(ctx, f.playerID)
	require.NoError(t, err)

	path, err := f.service.Hint(f.playerID)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	snapshot, err = f.service.Move(ctx, f.playerID, dirBetween(t, snapshot.Position, path[0]))
	require.NoError(t, err)
	require.NotNil(t, snapshot.PendingExercise)

	_, err = f.service.CompleteExercise(ctx, f.playerID, uuid.New())
	assert.Error(t, err)

	snapshot, err = f.service.CompleteExercise(ctx, f.playerID, snapshot.PendingExercise.ID)
	require.NoError(t, err)
	assert.Nil(t, snapshot.PendingExercise)
	assert.Equal(t, exercisePoints, snapshot.Score)

	require.Len(t, f.performance.recorded, 1)
	assert.Equal(t, f.playerID, f.performance.recorded[0].playerID)
	assert.Equal(t, exercisePoints, f.performance.recorded[0].points)
}

func TestGameServiceWatch(t *testing.T) {
	f := newGameFixture(t, 0, 0)
	ctx := context.Background()

	_, _, err := f.service.Watch(uuid.New())
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = f.service.StartSession(ctx, f.playerID)
	require.NoError(t, err)

	updates, cancel, err := f.service.Watch(f.playerID)
	require.NoError(t, err)

	path, err := f.service.Hint(f.playerID)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	select {
	case snapshot := <-updates:
		assert.Equal(t, 1, snapshot.HintsUsed)
	case <-time.After(time.Second):
		t.Fatal("no snapshot broadcast after hint")
	}

	cancel()
	cancel() // second cancel is a no-op

	_, open := <-updates
	assert.False(t, open, "channel stays closed after cancel")
}
