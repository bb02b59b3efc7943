package i

import (
	"context"

	"github.com/3NJDGZ/brain-training-api/game"
	"github.com/3NJDGZ/brain-training-api/maze"
	"github.com/google/uuid"
)

// GameManager owns the live game sessions and everything a controller
// needs to drive one player's run.
type GameManager interface {
	// StartSession begins a fresh maze run for the player, replacing
	// any unfinished one.
	StartSession(ctx context.Context, playerID uuid.UUID) (game.Snapshot, error)

	// Snapshot returns the player's current session state.
	Snapshot(playerID uuid.UUID) (game.Snapshot, error)

	// Move steps the player one cell in the given direction.
	Move(ctx context.Context, playerID uuid.UUID, direction string) (game.Snapshot, error)

	// Hint returns the ordered cell path from the player's position to
	// the exit.
	Hint(playerID uuid.UUID) ([]maze.Position, error)

	// CompleteExercise finishes the exercise pending at the player's
	// cell and records the earned points.
	CompleteExercise(ctx context.Context, playerID uuid.UUID, exerciseID uuid.UUID) (game.Snapshot, error)

	// Watch subscribes to the player's session snapshots. The returned
	// cancel function must be called when the watcher disconnects.
	Watch(playerID uuid.UUID) (<-chan game.Snapshot, func(), error)
}
