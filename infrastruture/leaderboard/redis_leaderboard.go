// Package leaderboard ranks players by best session score in a Redis
// sorted set.
package leaderboard

import (
	"context"
	"errors"

	dmn "github.com/3NJDGZ/brain-training-api/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKey = "leaderboard:best"
	namesKey   = "leaderboard:names"
)

// RedisLeaderboard keeps each player's best score in a sorted set and
// their display name in a companion hash. Updates take a distributed
// lock so the read-compare-write across both structures stays atomic
// across API instances.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided
// Redis client.
func NewRedisLeaderboard(client *redis.Client) (*RedisLeaderboard, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	board := &RedisLeaderboard{
		client: client,
		key:    defaultKey,
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

// SubmitScore records score for the player if it beats their current
// best; lower or equal scores leave the board unchanged.
func (rl *RedisLeaderboard) SubmitScore(ctx context.Context, playerID uuid.UUID, username string, score int) error {
	mutex := rl.locker.NewMutex(rl.key + ":submit:" + playerID.String())
	if err := mutex.Lock(); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	member := playerID.String()
	current, err := rl.client.ZScore(ctx, rl.key, member).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	if err == nil && current >= float64(score) {
		return nil
	}

	pipe := rl.client.TxPipeline()
	pipe.ZAdd(ctx, rl.key, redis.Z{Score: float64(score), Member: member})
	pipe.HSet(ctx, namesKey, member, username)
	_, err = pipe.Exec(ctx)
	return err
}

// Top returns the n highest-scoring players, best first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	ranked, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, nil
	}

	members := make([]string, 0, len(ranked))
	for _, z := range ranked {
		members = append(members, z.Member.(string))
	}
	names, err := rl.client.HMGet(ctx, namesKey, members...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dmn.LeaderboardEntry, 0, len(ranked))
	for idx, z := range ranked {
		id, err := uuid.Parse(members[idx])
		if err != nil {
			continue
		}
		username := ""
		if names[idx] != nil {
			username, _ = names[idx].(string)
		}
		entries = append(entries, dmn.LeaderboardEntry{
			Rank:     idx + 1,
			PlayerID: id,
			Username: username,
			Score:    int(z.Score),
		})
	}
	return entries, nil
}
