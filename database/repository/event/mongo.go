package eventRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no event matches.
var ErrNotFound = errors.New("event not found")

// MongoEventRepo implements EventRepository using MongoDB.
type MongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo creates a new EventRepository using MongoDB.
func NewMongoEventRepo() EventRepository {
	coll := database.MongoClient.Database("slotwise").Collection("events")
	repo := &MongoEventRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoEventRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "scope", Value: 1}, {Key: "starts_on", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// dayFilter matches events that start and end inside [dayStart, dayEnd).
func dayFilter(scope string, dayStart, dayEnd time.Time) bson.M {
	return bson.M{
		"scope":     scope,
		"starts_on": bson.M{"$gte": dayStart, "$lt": dayEnd},
		"ends_on":   bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
}

func (r *MongoEventRepo) CountEvents(ctx context.Context, scope string, dayStart, dayEnd time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, dayFilter(scope, dayStart, dayEnd))
	if err != nil {
		return 0, fmt.Errorf("count events for %s: %w", scope, err)
	}
	return int(count), nil
}

func (r *MongoEventRepo) ListEvents(ctx context.Context, scope string, dayStart, dayEnd time.Time) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "starts_on", Value: 1}})
	cursor, err := r.coll.Find(ctx, dayFilter(scope, dayStart, dayEnd), opts)
	if err != nil {
		return nil, fmt.Errorf("list events for %s: %w", scope, err)
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events for %s: %w", scope, err)
	}
	return events, nil
}

func (r *MongoEventRepo) CreateEvent(ctx context.Context, event *models.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now().UTC()

	_, err := r.coll.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *MongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var event models.Event
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch event %s: %w", id, err)
	}
	return &event, nil
}

func (r *MongoEventRepo) RescheduleEvent(ctx context.Context, id string, startsOn, endsOn time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"starts_on": startsOn, "ends_on": endsOn}},
	)
	if err != nil {
		return fmt.Errorf("reschedule event %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
