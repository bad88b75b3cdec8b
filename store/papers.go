package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/asterisk-academy/backend/models"
	"github.com/asterisk-academy/backend/util"
)

func Papers() *mongo.Collection { return util.DB.Collection("papers") }

func GetPaperByCode(ctx context.Context, code string) (models.Paper, error) {
	var p models.Paper
	err := Papers().FindOne(ctx, bson.M{"paperCode": code}).Decode(&p)
	return p, err
}

func InsertPaper(ctx context.Context, p *models.Paper) error {
	res, err := Papers().InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
