package policyRepo

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

// ErrNotFound is returned when no appointment group matches.
var ErrNotFound = errors.New("appointment group not found")

// MongoPolicyRepo implements PolicyRepository using MongoDB.
type MongoPolicyRepo struct {
	coll *mongo.Collection
}

// NewMongoPolicyRepo creates a new PolicyRepository using MongoDB.
func NewMongoPolicyRepo() PolicyRepository {
	coll := database.MongoClient.Database("slotwise").Collection("appointment_groups")
	repo := &MongoPolicyRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPolicyRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoPolicyRepo) GetByID(ctx context.Context, id string) (*models.AppointmentPolicy, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.AppointmentPolicy
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch appointment group %s: %w", id, err)
	}
	return &doc, nil
}

func (r *MongoPolicyRepo) Create(ctx context.Context, policy *models.AppointmentPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, policy)
	if err != nil {
		return fmt.Errorf("create appointment group %s: %w", policy.ID, err)
	}
	return nil
}
