package httpapi

import (
	"net/http"

	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/models"
)

// bookFlight handles POST /api/bookings/flight.
func (h *handler) bookFlight(w http.ResponseWriter, r *http.Request) {
	var req models.FlightBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := auth.FromContext(r.Context())
	result, err := h.deps.Bookings.BookFlight(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, result)
}

// bookHotel handles POST /api/bookings/hotel.
func (h *handler) bookHotel(w http.ResponseWriter, r *http.Request) {
	var req models.HotelBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := auth.FromContext(r.Context())
	result, err := h.deps.Bookings.BookHotel(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, result)
}

// bookCar handles POST /api/bookings/car.
func (h *handler) bookCar(w http.ResponseWriter, r *http.Request) {
	var req models.CarBookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := auth.FromContext(r.Context())
	result, err := h.deps.Bookings.BookCar(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, result)
}

// listBookings handles GET /api/bookings and /api/bookings/my, both scoped
// to the calling principal; scope=past|current|future|all partitions by the
// booking's dates vs now (see relational.ListUserBookings), defaulting to
// "all".
func (h *handler) listBookings(w http.ResponseWriter, r *http.Request) {
	p := auth.FromContext(r.Context())

	scope := models.BookingScope(r.URL.Query().Get("scope"))
	switch scope {
	case models.ScopePast, models.ScopeCurrent, models.ScopeFuture, models.ScopeAll:
	default:
		scope = models.ScopeAll
	}

	bookings, err := h.deps.Users.ListUserBookings(r.Context(), p.UserID, scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, bookings)
}
