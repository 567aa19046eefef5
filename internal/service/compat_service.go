package service

import (
	"context"
	"errors"
	"log"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/cache"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/repository"
)

// ErrNoPreferences means the landlord never configured compatibility
// preferences, so scoring would be meaningless.
var ErrNoPreferences = errors.New("landlord has not configured compatibility preferences")

// CompatService runs compatibility checks against stored properties.
// Tenant answers are scored and discarded; only the aggregate outcome is
// recorded.
type CompatService struct {
	propertyRepo repository.PropertyRepo
	stats        cache.StatsCache
	events       *EventService
}

// NewCompatService creates a new compatibility service
func NewCompatService(propertyRepo repository.PropertyRepo, stats cache.StatsCache, events *EventService) *CompatService {
	return &CompatService{
		propertyRepo: propertyRepo,
		stats:        stats,
		events:       events,
	}
}

// Check normalizes a raw tenant answer payload and scores it against a
// property's stored preferences. The stored preferences were normalized
// at write time, so they feed the scorer directly.
func (s *CompatService) Check(ctx context.Context, propertyID string, raw interface{}) (*compat.CompatibilityResult, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil || property.Deleted {
		return nil, ErrPropertyNotFound
	}
	if !compat.HasAnyOwnerPrefs(property.Prefs) {
		return nil, ErrNoPreferences
	}

	answers, err := compat.NormalizeTenantAnswers(raw)
	if err != nil {
		return nil, err
	}

	result := compat.ComputeCompatibility(property.Prefs, answers)

	if err := s.stats.RecordCheck(ctx, propertyID, result); err != nil {
		log.Printf("Failed to record compat stats for property %s: %v", propertyID, err)
	}
	s.events.Record(ctx, propertyID, property.LandlordID, model.EventCompatibilityChecked, "compatibility check completed", map[string]interface{}{
		"score":     result.Score,
		"conflicts": len(result.Conflicts),
	})

	return &result, nil
}

// Stats returns the accumulated check statistics for an owned property
func (s *CompatService) Stats(ctx context.Context, landlordID, propertyID string) (*cache.CompatStats, error) {
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
	return s.stats.Get(ctx, propertyID)
}
