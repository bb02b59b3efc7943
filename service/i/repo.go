package i

import (
	"context"

	dmn "github.com/3NJDGZ/brain-training-api/domain"
	"github.com/3NJDGZ/brain-training-api/game"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// PerformanceRepo persists each player's per-cognitive-area point
// totals and the derived exercise-selection weights.
type PerformanceRepo interface {
	// EnsureDefaults creates the player's performance document with
	// zero scores and uniform weights if it does not exist yet.
	EnsureDefaults(ctx context.Context, playerID uuid.UUID) error

	// RecordPoints adds points to the player's total for one area and
	// recomputes the selection weights.
	RecordPoints(ctx context.Context, playerID uuid.UUID, area game.CognitiveArea, points int) error

	// Weights returns the player's current per-area selection weights.
	Weights(ctx context.Context, playerID uuid.UUID) (map[game.CognitiveArea]float64, error)
}
