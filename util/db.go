package util

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

// DBConnectAndPopulateDBVar opens the Mongo connection and pings it. Config
// must be loaded first.
func DBConnectAndPopulateDBVar() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(MongoURI))
	if err != nil {
		return err
	}
	if err = client.Ping(ctx, nil); err != nil {
		return err
	}
	DB = client.Database(MongoDBName)
	return nil
}

// EnsureIndexes creates the unique and query indexes the handlers rely on.
// Safe to call on every startup.
func EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := DB.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userName", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "selectedSubjects.userRating", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = DB.Collection("questions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "subject.subjectCode", Value: 1},
			{Key: "difficultyRatingPercentile", Value: 1},
		}},
		{Keys: bson.D{{Key: "subject.subjectCode", Value: 1}, {Key: "difficultyRating", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = DB.Collection("subjects").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subjectCode", Value: 1}}, Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = DB.Collection("papers").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "paperCode", Value: 1}}, Options: unique,
	})
	return err
}
