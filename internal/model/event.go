package model

import "time"

// EventType identifies a timeline entry kind.
type EventType string

const (
	EventPropertyCreated      EventType = "property_created"
	EventPropertyUpdated      EventType = "property_updated"
	EventPropertyDeleted      EventType = "property_deleted"
	EventPropertyRestored     EventType = "property_restored"
	EventPreferencesUpdated   EventType = "preferences_updated"
	EventCompatibilityChecked EventType = "compatibility_checked"
)

// Event is one entry in a property's timeline.
type Event struct {
	ID         string                 `json:"id" bson:"_id,omitempty"`
	PropertyID string                 `json:"propertyId" bson:"propertyId"`
	LandlordID string                 `json:"landlordId" bson:"landlordId"`
	Type       EventType              `json:"type" bson:"type"`
	Message    string                 `json:"message" bson:"message"`
	Payload    map[string]interface{} `json:"payload,omitempty" bson:"payload,omitempty"`
	CreatedAt  time.Time              `json:"createdAt" bson:"createdAt"`
}
