package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/TOULI-R/rentiva-backend-sub000/internal/service"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/transport/rest/handler"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/transport/rest/middleware"
	"github.com/TOULI-R/rentiva-backend-sub000/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService     *service.AuthService
	PropertyService *service.PropertyService
	CompatService   *service.CompatService
	EventService    *service.EventService
	WSHub           *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	propertyHandler := handler.NewPropertyHandler(c.PropertyService, c.CompatService, c.EventService)
	listingHandler := handler.NewListingHandler(c.PropertyService, c.CompatService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/listings", listingHandler.Search).Methods("GET", "OPTIONS")
	v1.HandleFunc("/listings/{propertyId}", listingHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/listings/{propertyId}/compatibility", listingHandler.CheckCompatibility).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/feed", wsHandler.LandlordFeed).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Landlord routes (require landlord auth)
	landlordRoutes := v1.NewRoute().Subrouter()
	landlordRoutes.Use(authMW.RequireLandlord)

	landlordRoutes.HandleFunc("/properties", propertyHandler.Create).Methods("POST", "OPTIONS")
	landlordRoutes.HandleFunc("/properties", propertyHandler.List).Methods("GET", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}", propertyHandler.Get).Methods("GET", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}", propertyHandler.Update).Methods("PUT", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}", propertyHandler.Delete).Methods("DELETE", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}/restore", propertyHandler.Restore).Methods("POST", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}/preferences", propertyHandler.UpdatePrefs).Methods("PUT", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}/timeline", propertyHandler.Timeline).Methods("GET", "OPTIONS")
	landlordRoutes.HandleFunc("/properties/{propertyId}/stats", propertyHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
