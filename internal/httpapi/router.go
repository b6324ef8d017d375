package httpapi

import (
	"net/http"

	"github.com/Rajeswari195/kayak/internal/analytics"
	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/booking"
	"github.com/Rajeswari195/kayak/internal/clickstream"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/metrics"
	"github.com/Rajeswari195/kayak/internal/relational"
	"github.com/Rajeswari195/kayak/internal/review"
	"github.com/Rajeswari195/kayak/internal/search"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps bundles every service the HTTP surface delegates to.
type Deps struct {
	Tokens      *auth.Service
	Auth        *auth.AuthService
	Users       *relational.Store
	Bookings    *booking.Engine
	Search      *search.Service
	Reviews     *review.Service
	Clicks      *clickstream.Service
	Analytics   *analytics.Service
	Audit       *document.AuditStore
	Metrics     *metrics.Metrics
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
}

// handler holds the dependencies every route handler closes over.
type handler struct {
	deps Deps
}

// NewRouter builds the full spec.md §6 HTTP surface over gorilla/mux,
// wiring the §4.10 middleware chain (request-id → logging/metrics →
// CORS → rate limit → throttle → route-local auth → handler → error
// shaper, the last of which every handler invokes itself via writeError).
func NewRouter(deps Deps) *mux.Router {
	if deps.RateLimitRPS <= 0 {
		deps.RateLimitRPS = 10
	}
	if deps.RateLimitBurst <= 0 {
		deps.RateLimitBurst = 20
	}
	if deps.MaxInFlight <= 0 {
		deps.MaxInFlight = 100
	}

	h := &handler{deps: deps}
	limiter := newPerIPLimiter(deps.RateLimitRPS, deps.RateLimitBurst)

	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(deps.Metrics))
	r.Use(corsMiddleware)
	r.Use(rateLimitMiddleware(limiter))
	r.Use(throttleMiddleware(deps.MaxInFlight))

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users", h.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)

	required := auth.Required(deps.Tokens)
	optional := auth.Optional(deps.Tokens)

	api.Handle("/auth/me", required(http.HandlerFunc(h.me))).Methods(http.MethodGet)
	api.Handle("/users/{id}", required(http.HandlerFunc(h.getUser))).Methods(http.MethodGet)
	api.Handle("/users/{id}", required(http.HandlerFunc(h.updateUser))).Methods(http.MethodPatch)

	api.HandleFunc("/search/flights", h.searchFlights).Methods(http.MethodGet)
	api.HandleFunc("/search/hotels", h.searchHotels).Methods(http.MethodGet)
	api.HandleFunc("/search/cars", h.searchCars).Methods(http.MethodGet)

	api.Handle("/bookings/flight", required(http.HandlerFunc(h.bookFlight))).Methods(http.MethodPost)
	api.Handle("/bookings/hotel", required(http.HandlerFunc(h.bookHotel))).Methods(http.MethodPost)
	api.Handle("/bookings/car", required(http.HandlerFunc(h.bookCar))).Methods(http.MethodPost)
	api.Handle("/bookings", required(http.HandlerFunc(h.listBookings))).Methods(http.MethodGet)
	api.Handle("/bookings/my", required(http.HandlerFunc(h.listBookings))).Methods(http.MethodGet)

	api.Handle("/reviews", required(http.HandlerFunc(h.createReview))).Methods(http.MethodPost)
	api.Handle("/reviews", optional(http.HandlerFunc(h.listReviews))).Methods(http.MethodGet)

	api.Handle("/analytics/track", optional(http.HandlerFunc(h.track))).Methods(http.MethodPost)
	api.Handle("/analytics/track/batch", optional(http.HandlerFunc(h.trackBatch))).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(required)
	admin.Use(auth.RequireAdmin)

	admin.HandleFunc("/users", h.adminListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.adminGetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/deactivate", h.adminDeactivateUser).Methods(http.MethodPatch)

	admin.HandleFunc("/analytics/revenue/properties", h.adminRevenueProperties).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/revenue/city", h.adminRevenueCity).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/revenue/providers", h.adminRevenueProviders).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/clicks/pages", h.adminClicksPages).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/clicks/listings", h.adminClicksListings).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/users/{id}/trace", h.adminUserTrace).Methods(http.MethodGet)
	admin.HandleFunc("/analytics/cohort/{city}", h.adminCohortTrace).Methods(http.MethodGet)

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
