package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
)

// EventRepo handles MongoDB operations for the property timeline
type EventRepo interface {
	Append(ctx context.Context, event *model.Event) error
	ListByProperty(ctx context.Context, propertyID string, limit int) ([]*model.Event, error)
}

type eventRepo struct {
	collection *mongo.Collection
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *mongo.Database) EventRepo {
	return &eventRepo{
		collection: db.Collection("events"),
	}
}

func (r *eventRepo) Append(ctx context.Context, event *model.Event) error {
	event.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *eventRepo) ListByProperty(ctx context.Context, propertyID string, limit int) ([]*model.Event, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
