package httpapi

import (
	"net/http"

	"github.com/Rajeswari195/kayak/internal/search"
)

// searchFlights handles GET /api/search/flights.
func (h *handler) searchFlights(w http.ResponseWriter, r *http.Request) {
	filter, err := search.ParseFlightFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.deps.Search.SearchFlights(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, resp)
}

// searchHotels handles GET /api/search/hotels.
func (h *handler) searchHotels(w http.ResponseWriter, r *http.Request) {
	filter, err := search.ParseHotelFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.deps.Search.SearchHotels(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, resp)
}

// searchCars handles GET /api/search/cars.
func (h *handler) searchCars(w http.ResponseWriter, r *http.Request) {
	filter, err := search.ParseCarFilter(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.deps.Search.SearchCars(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, resp)
}
