package gameapi

import (
	"errors"
	"net/http"

	"github.com/3NJDGZ/brain-training-api/api/identity"
	"github.com/3NJDGZ/brain-training-api/game"
	"github.com/3NJDGZ/brain-training-api/maze"
	"github.com/3NJDGZ/brain-training-api/service"
	"github.com/3NJDGZ/brain-training-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const leaderboardSize = 10

// GameController manages the per-player maze session endpoints and the
// public leaderboard.
type GameController struct {
	games       i.GameManager
	leaderboard i.Leaderboard
}

// NewGameController initializes a GameController.
func NewGameController(games i.GameManager, leaderboard i.Leaderboard) (*GameController, error) {
	if games == nil || leaderboard == nil {
		return nil, errors.New("game controller requires a game manager and leaderboard")
	}
	return &GameController{
		games:       games,
		leaderboard: leaderboard,
	}, nil
}

// RegisterPublic registers public routes.
func (gc *GameController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", gc.topScores)
}

// RegisterProtected registers session routes that require a signed-in
// player.
func (gc *GameController) RegisterProtected(route *gin.RouterGroup) {
	games := route.Group("/games")
	{
		games.POST("", gc.start)
		games.GET("/active", gc.active)
		games.POST("/moves", gc.move)
		games.POST("/hints", gc.hint)
		games.POST("/exercises/complete", gc.completeExercise)
		games.GET("/watch", gc.watch)
	}
}

// playerID extracts the authenticated player's ID from the claims the
// authorization middleware attached.
func playerID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, ok := ctx.Get(identity.ContextUserClaims)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return uuid.Nil, false
	}
	idString, ok := claims["userID"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (gc *GameController) start(ctx *gin.Context) {
	id, ok := playerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	snapshot, err := gc.games.StartSession(ctx, id)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not start a game session"})
		return
	}
	ctx.JSON(http.StatusCreated, snapshot)
}

func (gc *GameController) active(ctx *gin.Context) {
	id, ok := playerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	snapshot, err := gc.games.Snapshot(id)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

func (gc *GameController) move(ctx *gin.Context) {
	id, ok := playerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := gc.games.Move(ctx, id, request.Direction)
	if err != nil {
		ctx.JSON(moveStatus(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

func (gc *GameController) hint(ctx *gin.Context) {
	id, ok := playerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	path, err := gc.games.Hint(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, maze.ErrNoPathToExit):
			// Not fatal for the client; it may retry from elsewhere.
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, HintResponse{Path: path})
}

func (gc *GameController) completeExercise(ctx *gin.Context) {
	id, ok := playerID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CompleteExerciseRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := gc.games.CompleteExercise(ctx, id, request.ExerciseID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		}
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

func (gc *GameController) topScores(ctx *gin.Context) {
	entries, err := gc.leaderboard.Top(ctx, leaderboardSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

func moveStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrNoActiveSession):
		return http.StatusNotFound
	case errors.Is(err, maze.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrSessionFinished):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
