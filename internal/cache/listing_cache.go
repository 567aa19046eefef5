package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
)

// ListingCache handles Redis caching of public listing details
type ListingCache interface {
	Get(ctx context.Context, propertyID string) (*model.PublicListing, error)
	Set(ctx context.Context, listing *model.PublicListing) error
	Invalidate(ctx context.Context, propertyID string) error
}

type listingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListingCache creates a new listing cache
func NewListingCache(client *redis.Client) ListingCache {
	return &listingCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *listingCache) key(propertyID string) string {
	return fmt.Sprintf("listing:%s", propertyID)
}

func (c *listingCache) Get(ctx context.Context, propertyID string) (*model.PublicListing, error) {
	data, err := c.client.Get(ctx, c.key(propertyID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var listing model.PublicListing
	if err := json.Unmarshal([]byte(data), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *listingCache) Set(ctx context.Context, listing *model.PublicListing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(listing.ID), data, c.ttl).Err()
}

func (c *listingCache) Invalidate(ctx context.Context, propertyID string) error {
	return c.client.Del(ctx, c.key(propertyID)).Err()
}
