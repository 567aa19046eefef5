package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/repository"
)

const defaultTimelineLimit = 50

// EventService appends timeline events and fans them out to the
// landlord's live feed.
type EventService struct {
	eventRepo   repository.EventRepo
	broadcaster Broadcaster
}

// NewEventService creates a new event service
func NewEventService(eventRepo repository.EventRepo) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *EventService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Record appends a timeline event for a property. Timeline failures are
// logged, not surfaced: the triggering operation already succeeded.
func (s *EventService) Record(ctx context.Context, propertyID, landlordID string, eventType model.EventType, message string, payload map[string]interface{}) {
	event := &model.Event{
		ID:         "evt_" + uuid.New().String()[:8],
		PropertyID: propertyID,
		LandlordID: landlordID,
		Type:       eventType,
		Message:    message,
		Payload:    payload,
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		log.Printf("Failed to append timeline event %s for property %s: %v", eventType, propertyID, err)
		return
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToLandlord(landlordID, string(eventType), event)
	}
}

// Timeline returns a property's most recent events, newest first
func (s *EventService) Timeline(ctx context.Context, propertyID string, limit int) ([]*model.Event, error) {
	if limit <= 0 || limit > defaultTimelineLimit {
		limit = defaultTimelineLimit
	}
	return s.eventRepo.ListByProperty(ctx, propertyID, limit)
}
