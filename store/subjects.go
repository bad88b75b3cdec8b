package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/util"
)

func Subjects() *mongo.Collection { return util.DB.Collection("subjects") }

func GetSubjectByCode(ctx context.Context, code string) (models.Subject, error) {
	var s models.Subject
	err := Subjects().FindOne(ctx, bson.M{"subjectCode": code}).Decode(&s)
	return s, err
}

func ListSubjects(ctx context.Context) ([]models.Subject, error) {
	cursor, err := Subjects().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []models.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// UpsertSubjects seeds or refreshes the subject catalogue. Keyed on
// subjectCode so reseeding an existing deployment is safe.
func UpsertSubjects(ctx context.Context, subjects []models.Subject) error {
	for _, s := range subjects {
		_, err := Subjects().ReplaceOne(ctx,
			bson.M{"subjectCode": s.SubjectCode},
			s,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
