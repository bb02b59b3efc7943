// Package gameapi exposes the maze game session endpoints.
package gameapi

import (
	"github.com/3NJDGZ/brain-training-api/maze"
	"github.com/google/uuid"
)

// MoveRequest asks to step the player one cell.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// CompleteExerciseRequest reports the exercise at the player's cell as
// finished.
type CompleteExerciseRequest struct {
	ExerciseID uuid.UUID `json:"exercise_id" binding:"required"`
}

// HintResponse carries the ordered cell path from the player's position
// (excluded) to the exit.
type HintResponse struct {
	Path []maze.Position `json:"path"`
}
