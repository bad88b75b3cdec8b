package store

import (
	"math/rand"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionFilter describes one question-selection query. Zero-valued fields
// are left out of the generated match document, so the same type serves both
// the narrow difficulty-band query and the widened fallback query.
type QuestionFilter struct {
	SubjectCode string
	Level       string
	Topics      []string
	Subtopic    string
	ExcludeIDs  []primitive.ObjectID

	// Difficulty-percentile window. Applied only when HasBand is set, so a
	// band of [0, x] is expressible.
	HasBand       bool
	MinPercentile float64
	MaxPercentile float64
}

// Match builds the $match document for the filter.
func (f QuestionFilter) Match() bson.M {
	m := bson.M{"subject.subjectCode": f.SubjectCode}
	if f.Level != "" {
		m["level"] = f.Level
	}
	if len(f.Topics) > 0 {
		m["topic"] = bson.M{"$in": f.Topics}
	}
	if f.Subtopic != "" {
		m["subtopic"] = f.Subtopic
	}
	if len(f.ExcludeIDs) > 0 {
		m["_id"] = bson.M{"$nin": f.ExcludeIDs}
	}
	if f.HasBand {
		m["difficultyRatingPercentile"] = bson.M{
			"$gte": f.MinPercentile,
			"$lte": f.MaxPercentile,
		}
	}
	return m
}

// PickSubtopic chooses one subtopic uniformly at random from the requested
// set. Questions are served one subtopic at a time even when the client asks
// for several.
func PickSubtopic(subtopics []string) string {
	if len(subtopics) == 0 {
		return ""
	}
	return subtopics[rand.Intn(len(subtopics))]
}
