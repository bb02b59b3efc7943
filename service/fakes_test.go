package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dmn "github.com/3NJDGZ/brain-training-api/domain"
	"github.com/3NJDGZ/brain-training-api/game"
	"github.com/google/uuid"
)

// In-memory stand-ins for the Mongo and Redis adapters.

type memUserRepo struct {
	sync.Mutex
	users map[uuid.UUID]*dmn.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(user *dmn.User) error {
	r.Lock()
	defer r.Unlock()
	for id, existing := range r.users {
		if existing.Username == user.Username && id != user.ID {
			return errors.New("username conflict")
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) ByID(id uuid.UUID) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *memUserRepo) ByUsername(username string) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

type recordedPoints struct {
	playerID uuid.UUID
	area     game.CognitiveArea
	points   int
}

type memPerformanceRepo struct {
	sync.Mutex
	defaults   []uuid.UUID
	recorded   []recordedPoints
	weights    map[game.CognitiveArea]float64
	weightsErr error
}

func (r *memPerformanceRepo) EnsureDefaults(_ context.Context, playerID uuid.UUID) error {
	r.Lock()
	defer r.Unlock()
	r.defaults = append(r.defaults, playerID)
	return nil
}

func (r *memPerformanceRepo) RecordPoints(_ context.Context, playerID uuid.UUID, area game.CognitiveArea, points int) error {
	r.Lock()
	defer r.Unlock()
	r.recorded = append(r.recorded, recordedPoints{playerID: playerID, area: area, points: points})
	return nil
}

func (r *memPerformanceRepo) Weights(_ context.Context, _ uuid.UUID) (map[game.CognitiveArea]float64, error) {
	r.Lock()
	defer r.Unlock()
	if r.weightsErr != nil {
		return nil, r.weightsErr
	}
	return r.weights, nil
}

type submittedScore struct {
	playerID uuid.UUID
	username string
	score    int
}

type memLeaderboard struct {
	sync.Mutex
	submissions []submittedScore
}

func (l *memLeaderboard) SubmitScore(_ context.Context, playerID uuid.UUID, username string, score int) error {
	l.Lock()
	defer l.Unlock()
	l.submissions = append(l.submissions, submittedScore{playerID: playerID, username: username, score: score})
	return nil
}

func (l *memLeaderboard) Top(_ context.Context, n int64) ([]dmn.LeaderboardEntry, error) {
	l.Lock()
	defer l.Unlock()
	entries := make([]dmn.LeaderboardEntry, 0, len(l.submissions))
	for rank, s := range l.submissions {
		if int64(rank) >= n {
			break
		}
		entries = append(entries, dmn.LeaderboardEntry{
			Rank:     rank + 1,
			PlayerID: s.playerID,
			Username: s.username,
			Score:    s.score,
		})
	}
	return entries, nil
}

type staticTokenizer struct {
	token  string
	claims map[string]interface{}
}

func (t *staticTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	t.claims = claims
	return t.token, nil
}

func (t *staticTokenizer) Decode(_ string) (map[string]interface{}, error) {
	return t.claims, nil
}
