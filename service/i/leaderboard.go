package i

import (
	"context"

	dmn "github.com/3NJDGZ/brain-training-api/domain"
	"github.com/google/uuid"
)

// Leaderboard ranks players by their best session score.
type Leaderboard interface {
	// SubmitScore records score for the player if it beats their
	// current best; lower scores leave the board unchanged.
	SubmitScore(ctx context.Context, playerID uuid.UUID, username string, score int) error

	// Top returns the highest-scoring players, best first.
	Top(ctx context.Context, n int64) ([]dmn.LeaderboardEntry, error)
}
