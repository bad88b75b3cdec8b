package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterMatchMinimal(t *testing.T) {
	m := QuestionFilter{SubjectCode: "0620"}.Match()
	assert.Equal(t, bson.M{"subject.subjectCode": "0620"}, m)
}

func TestFilterMatchFull(t *testing.T) {
	id := primitive.NewObjectID()
	f := QuestionFilter{
		SubjectCode:   "0620",
		Level:         "IGCSE",
		Topics:        []string{"Stoichiometry", "Acids and bases"},
		Subtopic:      "The mole concept",
		ExcludeIDs:    []primitive.ObjectID{id},
		HasBand:       true,
		MinPercentile: 40,
		MaxPercentile: 60,
	}
	m := f.Match()

	assert.Equal(t, "0620", m["subject.subjectCode"])
	assert.Equal(t, "IGCSE", m["level"])
	assert.Equal(t, bson.M{"$in": []string{"Stoichiometry", "Acids and bases"}}, m["topic"])
	assert.Equal(t, "The mole concept", m["subtopic"])
	assert.Equal(t, bson.M{"$nin": []primitive.ObjectID{id}}, m["_id"])
	assert.Equal(t, bson.M{"$gte": 40.0, "$lte": 60.0}, m["difficultyRatingPercentile"])
}

func TestFilterMatchBandAtZeroIsKept(t *testing.T) {
	f := QuestionFilter{SubjectCode: "0455", HasBand: true, MinPercentile: 0, MaxPercentile: 10}
	m := f.Match()
	assert.Equal(t, bson.M{"$gte": 0.0, "$lte": 10.0}, m["difficultyRatingPercentile"])
}

func TestFilterMatchOmitsEmptyFields(t *testing.T) {
	m := QuestionFilter{SubjectCode: "9709", Topics: []string{"Vectors"}}.Match()
	_, hasLevel := m["level"]
	_, hasSubtopic := m["subtopic"]
	_, hasIDs := m["_id"]
	_, hasBand := m["difficultyRatingPercentile"]
	assert.False(t, hasLevel)
	assert.False(t, hasSubtopic)
	assert.False(t, hasIDs)
	assert.False(t, hasBand)
}

func TestPickSubtopic(t *testing.T) {
	assert.Equal(t, "", PickSubtopic(nil))
	assert.Equal(t, "only", PickSubtopic([]string{"only"}))

	set := map[string]bool{"a": true, "b": true, "c": true}
	for i := 0; i < 100; i++ {
		got := PickSubtopic([]string{"a", "b", "c"})
		assert.True(t, set[got])
	}
}
