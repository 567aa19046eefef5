package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/repository"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/service"
)

// ListingHandler handles the public tenant-facing endpoints
type ListingHandler struct {
	propertySvc *service.PropertyService
	compatSvc   *service.CompatService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(propertySvc *service.PropertyService, compatSvc *service.CompatService) *ListingHandler {
	return &ListingHandler{
		propertySvc: propertySvc,
		compatSvc:   compatSvc,
	}
}

// Search handles GET /v1/listings
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ListingFilter{City: q.Get("city")}
	filter.MinPrice, _ = strconv.ParseFloat(q.Get("minPrice"), 64)
	filter.MaxPrice, _ = strconv.ParseFloat(q.Get("maxPrice"), 64)
	filter.MinBedrooms, _ = strconv.Atoi(q.Get("minBedrooms"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	listings, total, err := h.propertySvc.Search(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"listings": listings,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// Get handles GET /v1/listings/{propertyId}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	listing, err := h.propertySvc.GetListing(r.Context(), propertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listing)
}

// CheckCompatibility handles POST /v1/listings/{propertyId}/compatibility.
// Works for anonymous tenants; answers are scored, never stored.
func (h *ListingHandler) CheckCompatibility(w http.ResponseWriter, r *http.Request) {
	propertyID := mux.Vars(r)["propertyId"]

	var raw interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.compatSvc.Check(r.Context(), propertyID, raw)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
