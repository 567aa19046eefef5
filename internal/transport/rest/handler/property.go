package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/compat"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/model"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/service"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/transport/rest/middleware"
)

// PropertyHandler handles landlord-facing property endpoints
type PropertyHandler struct {
	propertySvc *service.PropertyService
	compatSvc   *service.CompatService
	eventSvc    *service.EventService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertySvc *service.PropertyService, compatSvc *service.CompatService, eventSvc *service.EventService) *PropertyHandler {
	return &PropertyHandler{
		propertySvc: propertySvc,
		compatSvc:   compatSvc,
		eventSvc:    eventSvc,
	}
}

// PropertyRequest is the request body for creating or updating a property
type PropertyRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Price       float64  `json:"price"`
	Bedrooms    int      `json:"bedrooms"`
	AreaSqm     float64  `json:"areaSqm"`
	Amenities   []string `json:"amenities"`
}

func (req *PropertyRequest) validate() string {
	if req.Title == "" {
		return "title is required"
	}
	if req.City == "" {
		return "city is required"
	}
	if req.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

// Create handles POST /v1/properties
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())

	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	property, err := h.propertySvc.Create(r.Context(), &model.Property{
		LandlordID:  landlordID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		AreaSqm:     req.AreaSqm,
		Amenities:   req.Amenities,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

// List handles GET /v1/properties
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"

	properties, err := h.propertySvc.ListByLandlord(r.Context(), landlordID, includeDeleted)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if properties == nil {
		properties = []*model.Property{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"properties": properties})
}

// Get handles GET /v1/properties/{propertyId}
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	property, err := h.propertySvc.GetOwned(r.Context(), landlordID, propertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// Update handles PUT /v1/properties/{propertyId}
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	var req PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	property, err := h.propertySvc.Update(r.Context(), landlordID, &model.Property{
		ID:          propertyID,
		Title:       req.Title,
		Description: req.Description,
		City:        req.City,
		Address:     req.Address,
		Price:       req.Price,
		Bedrooms:    req.Bedrooms,
		AreaSqm:     req.AreaSqm,
		Amenities:   req.Amenities,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// Delete handles DELETE /v1/properties/{propertyId}
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	if err := h.propertySvc.Delete(r.Context(), landlordID, propertyID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Restore handles POST /v1/properties/{propertyId}/restore
func (h *PropertyHandler) Restore(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	property, err := h.propertySvc.Restore(r.Context(), landlordID, propertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, property)
}

// UpdatePrefs handles PUT /v1/properties/{propertyId}/preferences
func (h *PropertyHandler) UpdatePrefs(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	// The raw payload goes to the normalizer untyped; it owns validation.
	var raw interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := h.propertySvc.UpdatePrefs(r.Context(), landlordID, propertyID, raw)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, prefs)
}

// Timeline handles GET /v1/properties/{propertyId}/timeline
func (h *PropertyHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	if _, err := h.propertySvc.GetOwned(r.Context(), landlordID, propertyID); err != nil {
		writeServiceError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	events, err := h.eventSvc.Timeline(r.Context(), propertyID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if events == nil {
		events = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// Stats handles GET /v1/properties/{propertyId}/stats
func (h *PropertyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	landlordID := middleware.GetLandlordID(r.Context())
	propertyID := mux.Vars(r)["propertyId"]

	stats, err := h.compatSvc.Stats(r.Context(), landlordID, propertyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// writeServiceError maps service and normalization errors onto HTTP codes
func writeServiceError(w http.ResponseWriter, err error) {
	var invalid *compat.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": invalid.Error(),
			"field": invalid.Field,
		})
	case errors.Is(err, service.ErrPropertyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotDeleted), errors.Is(err, service.ErrNoPreferences):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
