package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/cache"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/repository"
)

// In-memory fakes for the mongo repositories and redis caches.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User // by ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, nil
}

type memPropertyRepo struct {
	mu    sync.Mutex
	items map[string]*model.Property
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{items: make(map[string]*model.Property)}
}

func (r *memPropertyRepo) Create(ctx context.Context, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *memPropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, nil
}

func (r *memPropertyRepo) GetByLandlord(ctx context.Context, landlordID string, includeDeleted bool) ([]*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Property
	for _, p := range r.items {
		if p.LandlordID != landlordID {
			continue
		}
		if p.Deleted && !includeDeleted {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPropertyRepo) Search(ctx context.Context, f repository.ListingFilter) ([]*model.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*model.Property
	for _, p := range r.items {
		if p.Deleted {
			continue
		}
		if f.City != "" && !strings.Contains(strings.ToLower(p.City), strings.ToLower(f.City)) {
			continue
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		if f.MinBedrooms > 0 && p.Bedrooms < f.MinBedrooms {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (r *memPropertyRepo) Update(ctx context.Context, p *model.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.UpdatedAt = time.Now()
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *memPropertyRepo) UpdatePrefs(ctx context.Context, id string, prefs compat.OwnerPrefs) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		p.Prefs = prefs
		p.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memPropertyRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		now := time.Now()
		p.Deleted = true
		p.DeletedAt = &now
	}
	return nil
}

func (r *memPropertyRepo) Restore(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[id]; ok {
		p.Deleted = false
		p.DeletedAt = nil
	}
	return nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events []*model.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{}
}

func (r *memEventRepo) Append(ctx context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.CreatedAt = time.Now()
	clone := *event
	r.events = append(r.events, &clone)
	return nil
}

func (r *memEventRepo) ListByProperty(ctx context.Context, propertyID string, limit int) ([]*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Event
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].PropertyID == propertyID {
			clone := *r.events[i]
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memStatsCache struct {
	mu      sync.Mutex
	results map[string][]compat.CompatibilityResult
}

func newMemStatsCache() *memStatsCache {
	return &memStatsCache{results: make(map[string][]compat.CompatibilityResult)}
}

func (c *memStatsCache) RecordCheck(ctx context.Context, propertyID string, result compat.CompatibilityResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[propertyID] = append(c.results[propertyID], result)
	return nil
}

func (c *memStatsCache) Get(ctx context.Context, propertyID string) (*cache.CompatStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := &cache.CompatStats{Conflicts: make(map[string]int64)}
	for _, dim := range compat.DimensionOrder {
		stats.Conflicts[dim] = 0
	}
	var sum int64
	for _, res := range c.results[propertyID] {
		stats.Checks++
		sum += int64(res.Score)
		for _, conflict := range res.Conflicts {
			stats.Conflicts[conflict.Dimension]++
		}
	}
	if stats.Checks > 0 {
		stats.AverageScore = float64(sum) / float64(stats.Checks)
	}
	return stats, nil
}

type nopListingCache struct{}

func (nopListingCache) Get(ctx context.Context, propertyID string) (*model.PublicListing, error) {
	return nil, nil
}

func (nopListingCache) Set(ctx context.Context, listing *model.PublicListing) error { return nil }

func (nopListingCache) Invalidate(ctx context.Context, propertyID string) error { return nil }

type recordingBroadcaster struct {
	mu       sync.Mutex
	messages []string // "landlordID:type"
}

func (b *recordingBroadcaster) BroadcastToLandlord(landlordID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, landlordID+":"+msgType)
}
