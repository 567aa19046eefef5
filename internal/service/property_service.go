package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/cache"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/repository"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotOwner         = errors.New("property belongs to another landlord")
	ErrNotDeleted       = errors.New("property is not deleted")
)

// PropertyService orchestrates property CRUD, soft delete/restore,
// preference updates and the public listing search.
type PropertyService struct {
	propertyRepo repository.PropertyRepo
	listingCache cache.ListingCache
	events       *EventService
}

// NewPropertyService creates a new property service
func NewPropertyService(propertyRepo repository.PropertyRepo, listingCache cache.ListingCache, events *EventService) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		listingCache: listingCache,
		events:       events,
	}
}

// Create stores a new property for a landlord. Preferences start out
// all-default; they are configured separately.
func (s *PropertyService) Create(ctx context.Context, property *model.Property) (*model.Property, error) {
	property.ID = "prop_" + uuid.New().String()[:8]
	property.Prefs = compat.DefaultOwnerPrefs()
	property.Deleted = false
	if property.Amenities == nil {
		property.Amenities = []string{}
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.events.Record(ctx, property.ID, property.LandlordID, model.EventPropertyCreated, "listing created", nil)
	return property, nil
}

// GetOwned loads a property and verifies ownership
func (s *PropertyService) GetOwned(ctx context.Context, landlordID, propertyID string) (*model.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrPropertyNotFound
	}
	if property.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	return property, nil
}

// ListByLandlord returns the landlord's properties, optionally including
// soft-deleted ones
func (s *PropertyService) ListByLandlord(ctx context.Context, landlordID string, includeDeleted bool) ([]*model.Property, error) {
	return s.propertyRepo.GetByLandlord(ctx, landlordID, includeDeleted)
}

// Update replaces a property's listing fields. Preferences and the
// deleted flag are not touched here.
func (s *PropertyService) Update(ctx context.Context, landlordID string, updated *model.Property) (*model.Property, error) {
	existing, err := s.GetOwned(ctx, landlordID, updated.ID)
	if err != nil {
		return nil, err
	}

	updated.LandlordID = existing.LandlordID
	updated.Prefs = existing.Prefs
	updated.Deleted = existing.Deleted
	updated.DeletedAt = existing.DeletedAt
	updated.CreatedAt = existing.CreatedAt
	if updated.Amenities == nil {
		updated.Amenities = []string{}
	}
	if err := s.propertyRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx, updated.ID)
	s.events.Record(ctx, updated.ID, landlordID, model.EventPropertyUpdated, "listing updated", nil)
	return updated, nil
}

// Delete soft-deletes a property so it disappears from public search but
// can still be restored
func (s *PropertyService) Delete(ctx context.Context, landlordID, propertyID string) error {
	if _, err := s.GetOwned(ctx, landlordID, propertyID); err != nil {
		return err
	}
	if err := s.propertyRepo.SoftDelete(ctx, propertyID); err != nil {
		return err
	}

	s.invalidateListing(ctx, propertyID)
	s.events.Record(ctx, propertyID, landlordID, model.EventPropertyDeleted, "listing deleted", nil)
	return nil
}

// Restore brings a soft-deleted property back
func (s *PropertyService) Restore(ctx context.Context, landlordID, propertyID string) (*model.Property, error) {
	property, err := s.GetOwned(ctx, landlordID, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.Deleted {
		return nil, ErrNotDeleted
	}
	if err := s.propertyRepo.Restore(ctx, propertyID); err != nil {
		return nil, err
	}
	property.Deleted = false
	property.DeletedAt = nil

	s.invalidateListing(ctx, propertyID)
	s.events.Record(ctx, propertyID, landlordID, model.EventPropertyRestored, "listing restored", nil)
	return property, nil
}

// UpdatePrefs normalizes a raw owner preference payload and stores the
// canonical form. Invalid payloads fail with compat.InvalidInputError.
func (s *PropertyService) UpdatePrefs(ctx context.Context, landlordID, propertyID string, raw interface{}) (*compat.OwnerPrefs, error) {
	if _, err := s.GetOwned(ctx, landlordID, propertyID); err != nil {
		return nil, err
	}

	prefs, err := compat.NormalizeOwnerPrefs(raw)
	if err != nil {
		return nil, err
	}
	if err := s.propertyRepo.UpdatePrefs(ctx, propertyID, prefs); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx, propertyID)
	s.events.Record(ctx, propertyID, landlordID, model.EventPreferencesUpdated, "compatibility preferences updated", nil)
	return &prefs, nil
}

// Search runs the public listing search with pagination
func (s *PropertyService) Search(ctx context.Context, filter repository.ListingFilter) ([]*model.PublicListing, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	properties, total, err := s.propertyRepo.Search(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	listings := make([]*model.PublicListing, len(properties))
	for i, p := range properties {
		listings[i] = p.ToPublicListing()
	}
	return listings, total, nil
}

// GetListing returns the public view of a single property, served from
// cache when possible
func (s *PropertyService) GetListing(ctx context.Context, propertyID string) (*model.PublicListing, error) {
	if cached, err := s.listingCache.Get(ctx, propertyID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Listing cache read failed for %s: %v", propertyID, err)
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil || property.Deleted {
		return nil, ErrPropertyNotFound
	}

	listing := property.ToPublicListing()
	if err := s.listingCache.Set(ctx, listing); err != nil {
		log.Printf("Listing cache write failed for %s: %v", propertyID, err)
	}
	return listing, nil
}

func (s *PropertyService) invalidateListing(ctx context.Context, propertyID string) {
	if err := s.listingCache.Invalidate(ctx, propertyID); err != nil {
		log.Printf("Listing cache invalidation failed for %s: %v", propertyID, err)
	}
}
