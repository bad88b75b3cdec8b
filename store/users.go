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

func Users() *mongo.Collection { return util.DB.Collection("users") }

func GetUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := Users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	return user, err
}

func GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func GetUserByUserName(ctx context.Context, userName string) (models.User, error) {
	var user models.User
	err := Users().FindOne(ctx, bson.M{"userName": userName}).Decode(&user)
	return user, err
}

func InsertUser(ctx context.Context, user *models.User) error {
	res, err := Users().InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// ReplaceUser writes the whole user document back. Callers mutating attempt
// history must hold the per-user lock around the read-modify-write. Handlers
// that change only a slice of the document should use the targeted updates
// below instead, which cannot drop fields written by a concurrent request.
func ReplaceUser(ctx context.Context, user models.User) error {
	user.UpdatedAt = time.Now()
	_, err := Users().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

func appendGradedEssayUpdate(essay models.GradedEssay, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{"essaysGraded": essay},
		"$set":  bson.M{"updatedAt": now},
	}
}

// AppendGradedEssay records one grader run without rewriting the rest of the
// user document.
func AppendGradedEssay(ctx context.Context, userID primitive.ObjectID, essay models.GradedEssay) error {
	_, err := Users().UpdateOne(ctx, bson.M{"_id": userID}, appendGradedEssayUpdate(essay, time.Now()))
	return err
}

func appendSolvedPaperUpdate(paper models.SolvedPaper, now time.Time) bson.M {
	return bson.M{
		"$push": bson.M{"papersSolvedDetails": paper},
		"$set":  bson.M{"updatedAt": now},
	}
}

// AppendSolvedPaper records one mock paper result without rewriting the rest
// of the user document.
func AppendSolvedPaper(ctx context.Context, userID primitive.ObjectID, paper models.SolvedPaper) error {
	_, err := Users().UpdateOne(ctx, bson.M{"_id": userID}, appendSolvedPaperUpdate(paper, time.Now()))
	return err
}

func setAccessUpdate(premium *models.Access, grader *models.GraderAccess, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if premium != nil {
		set["premiumAccess"] = *premium
	}
	if grader != nil {
		set["graderAccess"] = *grader
	}
	return bson.M{"$set": set}
}

// SetUserAccess overwrites only the entitlement fields that were supplied.
func SetUserAccess(ctx context.Context, userID primitive.ObjectID, premium *models.Access, grader *models.GraderAccess) error {
	_, err := Users().UpdateOne(ctx, bson.M{"_id": userID}, setAccessUpdate(premium, grader, time.Now()))
	return err
}

func setAccountUpdate(subjects []models.SubjectStats, passwordHash string, passwordChangedAt, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if subjects != nil {
		set["selectedSubjects"] = subjects
	}
	if passwordHash != "" {
		set["password"] = passwordHash
		set["passwordChangedAt"] = passwordChangedAt
	}
	return bson.M{"$set": set}
}

// SetAccountDetails writes the reconciled subject list and, when supplied, a
// new password hash. Callers must hold the per-user lock while reconciling the
// subject list so a concurrent submission cannot add an entry in between.
func SetAccountDetails(ctx context.Context, userID primitive.ObjectID, subjects []models.SubjectStats, passwordHash string, passwordChangedAt time.Time) error {
	_, err := Users().UpdateOne(ctx, bson.M{"_id": userID}, setAccountUpdate(subjects, passwordHash, passwordChangedAt, time.Now()))
	return err
}

// DailyAttemptCount counts attempts the user made in their subjects since the
// start of the given day.
func DailyAttemptCount(ctx context.Context, userID primitive.ObjectID, dayStart time.Time) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$unwind", Value: "$questionsSolvedDetails"}},
		{{Key: "$match", Value: bson.M{"questionsSolvedDetails.attemptedOn": bson.M{"$gte": dayStart}}}},
		{{Key: "$count", Value: "attempts"}},
	}
	cursor, err := Users().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var out []struct {
		Attempts int64 `bson:"attempts"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Attempts, nil
}

// ExpireLapsedAccess flips premiumAccess.valid and graderAccess.valid off for
// every user whose access window has passed. Run from the scheduled sweep
// binary, not from the request path.
func ExpireLapsedAccess(ctx context.Context, now time.Time) (premium, grader int64, err error) {
	res, err := Users().UpdateMany(ctx,
		bson.M{"premiumAccess.valid": true, "premiumAccess.accessTill": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"premiumAccess.valid": false}},
	)
	if err != nil {
		return 0, 0, err
	}
	premium = res.ModifiedCount

	res, err = Users().UpdateMany(ctx,
		bson.M{"graderAccess.valid": true, "graderAccess.accessTill": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"graderAccess.valid": false}},
	)
	if err != nil {
		return premium, 0, err
	}
	return premium, res.ModifiedCount, nil
}

// SubjectRatingPercentile ranks a rating against every user who has the
// subject selected. Empty cohort ranks at 0.
func SubjectRatingPercentile(ctx context.Context, subjectCode string, rating int) (float64, error) {
	cohort := bson.M{"selectedSubjects": bson.M{"$elemMatch": bson.M{"subjectCode": subjectCode}}}
	total, err := Users().CountDocuments(ctx, cohort)
	if err != nil {
		return 0, err
	}

	below, err := Users().CountDocuments(ctx, bson.M{
		"selectedSubjects": bson.M{"$elemMatch": bson.M{
			"subjectCode": subjectCode,
			"userRating":  bson.M{"$lt": rating},
		}},
	})
	if err != nil {
		return 0, err
	}

	return adaptive.PercentileRank(below, total), nil
}

// CumulativeRatingPercentile ranks a rating against every user who has
// attempted at least one question.
func CumulativeRatingPercentile(ctx context.Context, rating int) (float64, error) {
	cohort := bson.M{"questionsSolvedDetails.0": bson.M{"$exists": true}}
	total, err := Users().CountDocuments(ctx, cohort)
	if err != nil {
		return 0, err
	}

	below, err := Users().CountDocuments(ctx, bson.M{
		"questionsSolvedDetails.0": bson.M{"$exists": true},
		"cumulativeRating":         bson.M{"$lt": rating},
	})
	if err != nil {
		return 0, err
	}

	return adaptive.PercentileRank(below, total), nil
}
