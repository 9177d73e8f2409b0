package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no availability document matches.
var ErrNotFound = errors.New("availability not found")

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a new AvailabilityRepository using MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	coll := database.MongoClient.Database("slotwise").Collection("availabilities")
	repo := &MongoAvailabilityRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAvailabilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "slug", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoAvailabilityRepo) GetByUser(ctx context.Context, user string) (*models.UserAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.UserAvailability
	err := r.coll.FindOne(ctx, bson.M{"user": user}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch availability for %s: %w", user, err)
	}
	return &doc, nil
}

func (r *MongoAvailabilityRepo) GetBySlug(ctx context.Context, slug string) (*models.UserAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.UserAvailability
	err := r.coll.FindOne(ctx, bson.M{"slug": slug, "enable_scheduling": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch availability for slug %s: %w", slug, err)
	}
	return &doc, nil
}

func (r *MongoAvailabilityRepo) ListWithCalendars(ctx context.Context) ([]models.UserAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"google_calendar_id": bson.M{"$nin": bson.A{"", nil}}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list availabilities with calendars: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.UserAvailability
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode availabilities: %w", err)
	}
	return docs, nil
}

func (r *MongoAvailabilityRepo) Upsert(ctx context.Context, availability *models.UserAvailability) error {
	if err := availability.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user": availability.User}
	update := bson.M{"$set": availability}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert availability for %s: %w", availability.User, err)
	}
	return nil
}
