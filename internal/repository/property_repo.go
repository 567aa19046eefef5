package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
)

// ListingFilter narrows a public listing search. Zero values mean "no
// constraint"; Limit/Offset drive pagination.
type ListingFilter struct {
	City        string
	MinPrice    float64
	MaxPrice    float64
	MinBedrooms int
	Limit       int
	Offset      int
}

// PropertyRepo handles MongoDB operations for properties
type PropertyRepo interface {
	Create(ctx context.Context, property *model.Property) error
	GetByID(ctx context.Context, id string) (*model.Property, error)
	GetByLandlord(ctx context.Context, landlordID string, includeDeleted bool) ([]*model.Property, error)
	Search(ctx context.Context, filter ListingFilter) ([]*model.Property, int64, error)
	Update(ctx context.Context, property *model.Property) error
	UpdatePrefs(ctx context.Context, id string, prefs compat.OwnerPrefs) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type propertyRepo struct {
	collection *mongo.Collection
}

// NewPropertyRepo creates a new property repository
func NewPropertyRepo(db *mongo.Database) PropertyRepo {
	return &propertyRepo{
		collection: db.Collection("properties"),
	}
}

func (r *propertyRepo) Create(ctx context.Context, property *model.Property) error {
	property.CreatedAt = time.Now()
	property.UpdatedAt = property.CreatedAt
	_, err := r.collection.InsertOne(ctx, property)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	var property model.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepo) GetByLandlord(ctx context.Context, landlordID string, includeDeleted bool) ([]*model.Property, error) {
	filter := bson.M{"landlordId": landlordID}
	if !includeDeleted {
		filter["deleted"] = false
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepo) Search(ctx context.Context, f ListingFilter) ([]*model.Property, int64, error) {
	filter := bson.M{"deleted": false}
	if f.City != "" {
		filter["city"] = bson.M{"$regex": f.City, "$options": "i"}
	}
	price := bson.M{}
	if f.MinPrice > 0 {
		price["$gte"] = f.MinPrice
	}
	if f.MaxPrice > 0 {
		price["$lte"] = f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if f.MinBedrooms > 0 {
		filter["bedrooms"] = bson.M{"$gte": f.MinBedrooms}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64(f.Offset)).
		SetLimit(int64(f.Limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var properties []*model.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyRepo) Update(ctx context.Context, property *model.Property) error {
	property.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": property.ID}, property)
	return err
}

func (r *propertyRepo) UpdatePrefs(ctx context.Context, id string, prefs compat.OwnerPrefs) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"prefs": prefs, "updatedAt": time.Now()},
	})
	return err
}

func (r *propertyRepo) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"deleted": true, "deletedAt": now, "updatedAt": now},
	})
	return err
}

func (r *propertyRepo) Restore(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"deleted": false, "updatedAt": time.Now()},
		"$unset": bson.M{"deletedAt": ""},
	})
	return err
}
