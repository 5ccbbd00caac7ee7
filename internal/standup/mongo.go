package standup

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/standupbot/standup-services/internal/models"
)

// MongoRepo implements Repository using a MongoDB collection. It is the
// self-hosted alternative to the Airtable backend.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

func (r *MongoRepo) Upsert(ctx context.Context, rec *models.StandupRecord) error {
	filter := bson.M{"memberId": rec.MemberID, "date": rec.Date}
	update := bson.M{
		"$set": bson.M{
			"memberId":    rec.MemberID,
			"date":        rec.Date,
			"yesterday":   rec.Yesterday,
			"today":       rec.Today,
			"blockers":    rec.Blockers,
			"submittedAt": rec.SubmittedAt,
		},
		// string key so decoded ids stay readable in reports and logs
		"$setOnInsert": bson.M{"_id": rec.MemberID + "|" + rec.Date},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("%w: mongo upsert: %v", ErrStoreUnavailable, err)
	}
	rec.ID = rec.MemberID + "|" + rec.Date
	return nil
}

func (r *MongoRepo) QueryByDate(ctx context.Context, date string) ([]models.StandupRecord, error) {
	cur, err := r.col.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, fmt.Errorf("%w: mongo find: %v", ErrStoreUnavailable, err)
	}
	var out []models.StandupRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("%w: mongo decode: %v", ErrStoreUnavailable, err)
	}
	if out == nil {
		out = []models.StandupRecord{}
	}
	return out, nil
}
