package repo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/3NJDGZ/brain-training-api/game"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PerformanceRepo persists per-player, per-cognitive-area point totals
// together with the exercise-selection weights derived from them.
// Weights are inversely proportional to accumulated points, so the
// areas a player scores worst in come up most often.
type PerformanceRepo struct {
	collection *mongo.Collection
}

type performanceDoc struct {
	PlayerID  uuid.UUID          `bson:"_id"`
	Scores    map[string]int     `bson:"scores"`
	Weights   map[string]float64 `bson:"weights"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// NewPerformanceRepo creates a PerformanceRepo on the given collection.
func NewPerformanceRepo(client *mongo.Client, dbName, collectionName string) *PerformanceRepo {
	return &PerformanceRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureDefaults creates the player's document with zero scores and
// uniform weights when it does not exist yet.
func (p *PerformanceRepo) EnsureDefaults(ctx context.Context, playerID uuid.UUID) error {
	scores := make(map[string]int, len(game.CognitiveAreas))
	weights := make(map[string]float64, len(game.CognitiveAreas))
	for _, area := range game.CognitiveAreas {
		scores[areaKey(area)] = 0
		weights[areaKey(area)] = game.DefaultAreaWeight
	}

	filter := bson.M{"_id": playerID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"scores":    scores,
			"weights":   weights,
			"updatedAt": time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := p.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// RecordPoints adds points to one area's total and refreshes the
// weights from the new totals.
func (p *PerformanceRepo) RecordPoints(ctx context.Context, playerID uuid.UUID, area game.CognitiveArea, points int) error {
	filter := bson.M{"_id": playerID}
	update := bson.M{
		"$inc": bson.M{"scores." + areaKey(area): points},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc performanceDoc
	if err := p.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return errors.New("performance record not found")
		}
		return errors.New("unexpected error: " + err.Error())
	}

	weights := recomputeWeights(doc.Scores)
	_, err := p.collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"weights": weights}})
	if err != nil {
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// Weights returns the player's current per-area selection weights.
func (p *PerformanceRepo) Weights(ctx context.Context, playerID uuid.UUID) (map[game.CognitiveArea]float64, error) {
	var doc performanceDoc
	if err := p.collection.FindOne(ctx, bson.M{"_id": playerID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("performance record not found")
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}

	weights := make(map[game.CognitiveArea]float64, len(game.CognitiveAreas))
	for _, area := range game.CognitiveAreas {
		if w, ok := doc.Weights[areaKey(area)]; ok {
			weights[area] = w
		} else {
			weights[area] = game.DefaultAreaWeight
		}
	}
	return weights, nil
}

func areaKey(area game.CognitiveArea) string {
	return strconv.Itoa(int(area))
}

// recomputeWeights favors the areas with the lowest point totals: each
// area's raw weight is 1/(1+points), normalized to sum to one.
func recomputeWeights(scores map[string]int) map[string]float64 {
	raw := make(map[string]float64, len(game.CognitiveAreas))
	total := 0.0
	for _, area := range game.CognitiveAreas {
		points := scores[areaKey(area)]
		if points < 0 {
			points = 0
		}
		w := 1.0 / float64(1+points)
		raw[areaKey(area)] = w
		total += w
	}

	for key, w := range raw {
		raw[key] = w / total
	}
	return raw
}
