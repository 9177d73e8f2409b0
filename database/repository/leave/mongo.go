package leaveRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoLeaveRepo implements LeaveRepository using MongoDB.
type MongoLeaveRepo struct {
	coll *mongo.Collection
}

// NewMongoLeaveRepo creates a new LeaveRepository using MongoDB.
func NewMongoLeaveRepo() LeaveRepository {
	coll := database.MongoClient.Database("slotwise").Collection("leaves")
	return &MongoLeaveRepo{coll: coll}
}

func (r *MongoLeaveRepo) IsOnLeave(ctx context.Context, user string, date time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"user":      user,
		"from_date": bson.M{"$lte": day},
		"to_date":   bson.M{"$gte": day},
	})
	if err != nil {
		return false, fmt.Errorf("check leave for %s: %w", user, err)
	}
	return count > 0, nil
}
