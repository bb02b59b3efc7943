// Package game holds the single-player session logic built on top of
// the maze engine: cognitive exercises attached to maze cells, move and
// hint handling, and scoring.
package game

import (
	"math/rand"

	"github.com/google/uuid"
)

// CognitiveArea classifies an exercise by the ability it trains.
type CognitiveArea int

// The four cognitive areas tracked per player.
const (
	Memory CognitiveArea = iota + 1
	Attention
	Speed
	ProblemSolving
)

// CognitiveAreas lists every area in ID order.
var CognitiveAreas = []CognitiveArea{Memory, Attention, Speed, ProblemSolving}

// DefaultAreaWeight is the selection weight each area starts with for a
// new player.
const DefaultAreaWeight = 0.25

func (a CognitiveArea) String() string {
	switch a {
	case Memory:
		return "Memory"
	case Attention:
		return "Attention"
	case Speed:
		return "Speed"
	case ProblemSolving:
		return "Problem Solving"
	}
	return "Unknown"
}

// Exercise is the payload attached to a maze cell. The maze engine only
// sees its completion state; the session layer awards its points when
// the player finishes it.
type Exercise struct {
	id        uuid.UUID
	area      CognitiveArea
	points    int
	completed bool
}

// NewExercise creates an incomplete exercise for the given area worth
// the given points.
func NewExercise(area CognitiveArea, points int) *Exercise {
	return &Exercise{
		id:     uuid.New(),
		area:   area,
		points: points,
	}
}

// ID returns the exercise identifier.
func (e *Exercise) ID() uuid.UUID { return e.id }

// Area returns the cognitive area the exercise trains.
func (e *Exercise) Area() CognitiveArea { return e.area }

// Points returns the score awarded on completion.
func (e *Exercise) Points() int { return e.points }

// IsComplete reports whether the exercise has been finished.
func (e *Exercise) IsComplete() bool { return e.completed }

// Complete marks the exercise finished.
func (e *Exercise) Complete() { e.completed = true }

// PickArea selects a cognitive area at random, weighted by the player's
// per-area weights so weaker areas come up more often. Missing or
// non-positive weights fall back to a uniform choice.
func PickArea(rng *rand.Rand, weights map[CognitiveArea]float64) CognitiveArea {
	total := 0.0
	for _, area := range CognitiveAreas {
		if w := weights[area]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return CognitiveAreas[rng.Intn(len(CognitiveAreas))]
	}

	r := rng.Float64() * total
	for _, area := range CognitiveAreas {
		w := weights[area]
		if w <= 0 {
			continue
		}
		if r < w {
			return area
		}
		r -= w
	}
	return CognitiveAreas[len(CognitiveAreas)-1]
}
