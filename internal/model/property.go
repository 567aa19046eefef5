package model

import (
	"time"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
)

// Property is a rental listing managed by a landlord. Prefs holds the
// owner-side compatibility preferences, stored already normalized so the
// scoring path never re-validates them. Deleted listings are kept for
// restore instead of being removed.
type Property struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	LandlordID  string            `json:"landlordId" bson:"landlordId"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description" bson:"description"`
	City        string            `json:"city" bson:"city"`
	Address     string            `json:"address" bson:"address"`
	Price       float64           `json:"price" bson:"price"` // monthly rent
	Bedrooms    int               `json:"bedrooms" bson:"bedrooms"`
	AreaSqm     float64           `json:"areaSqm" bson:"areaSqm"`
	Amenities   []string          `json:"amenities" bson:"amenities"`
	Prefs       compat.OwnerPrefs `json:"prefs" bson:"prefs"`
	Deleted     bool              `json:"deleted" bson:"deleted"`
	DeletedAt   *time.Time        `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// PublicListing is the tenant-facing projection of a property. Owner
// preferences are not exposed verbatim; tenants only learn about them
// through a compatibility check.
type PublicListing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Price       float64  `json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	AreaSqm     float64  `json:"areaSqm"`
	Amenities   []string `json:"amenities"`
	HasPrefs    bool     `json:"hasPrefs"` // whether a compatibility check is meaningful
}

// ToPublicListing strips landlord-only fields from a property.
func (p *Property) ToPublicListing() *PublicListing {
	return &PublicListing{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		City:        p.City,
		Price:       p.Price,
		Bedrooms:    p.Bedrooms,
		AreaSqm:     p.AreaSqm,
		Amenities:   p.Amenities,
		HasPrefs:    compat.HasAnyOwnerPrefs(p.Prefs),
	}
}
