package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asterisk-academy/backend/adaptive"
	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/util"
)

func Questions() *mongo.Collection { return util.DB.Collection("questions") }

func GetQuestionByID(ctx context.Context, id primitive.ObjectID) (models.Question, error) {
	var q models.Question
	err := Questions().FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	return q, err
}

func InsertQuestion(ctx context.Context, q *models.Question) error {
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now
	res, err := Questions().InsertOne(ctx, q)
	if err != nil {
		return err
	}
	q.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// SampleQuestion picks one random question matching the filter. Returns
// mongo.ErrNoDocuments when nothing matches.
func SampleQuestion(ctx context.Context, filter QuestionFilter) (models.Question, error) {
	var q models.Question
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter.Match()}},
		{{Key: "$sample", Value: bson.M{"size": 1}}},
	}
	cursor, err := Questions().Aggregate(ctx, pipeline)
	if err != nil {
		return q, err
	}
	defer cursor.Close(ctx)

	var out []models.Question
	if err := cursor.All(ctx, &out); err != nil {
		return q, err
	}
	if len(out) == 0 {
		return q, mongo.ErrNoDocuments
	}
	return out[0], nil
}

// UpdateQuestionStats persists recomputed attempt counters and ratings after
// a submission.
func UpdateQuestionStats(ctx context.Context, q models.Question) error {
	_, err := Questions().UpdateOne(ctx, bson.M{"_id": q.ID}, bson.M{"$set": bson.M{
		"totalAttempts":              q.TotalAttempts,
		"totalCorrect":               q.TotalCorrect,
		"averageTimeTakenInSeconds":  q.AverageTimeTakenInSeconds,
		"difficultyRating":           q.DifficultyRating,
		"difficultyRatingPercentile": q.DifficultyRatingPercentile,
		"updatedAt":                  time.Now(),
	}})
	return err
}

// DifficultyPercentile ranks a question's difficulty rating among all
// questions of the same subject.
func DifficultyPercentile(ctx context.Context, subjectCode string, rating float64) (float64, error) {
	base := bson.M{"subject.subjectCode": subjectCode}
	total, err := Questions().CountDocuments(ctx, base)
	if err != nil {
		return 0, err
	}

	below, err := Questions().CountDocuments(ctx, bson.M{
		"subject.subjectCode": subjectCode,
		"difficultyRating":    bson.M{"$lt": rating},
	})
	if err != nil {
		return 0, err
	}

	return adaptive.PercentileRank(below, total), nil
}
