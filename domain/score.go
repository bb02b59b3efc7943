package domain

import "github.com/google/uuid"

// LeaderboardEntry is one row of the global best-score ranking.
type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	PlayerID uuid.UUID `json:"player_id"`
	Username string    `json:"username"`
	Score    int       `json:"score"`
}
