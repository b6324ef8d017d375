package models

import "time"

// SortOrder is a shared ascending/descending directive for search results.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FlightSearchFilter is the parsed query for GET /api/search/flights.
type FlightSearchFilter struct {
	OriginIata      string
	DestinationIata string
	DepartureDate   time.Time
	ReturnDate      *time.Time
	Passengers      int
	PriceMax        *float64
	Stops           *int
	SortBy          string
	SortOrder       SortOrder
	Page            int
	PageSize        int
}

// HotelSearchFilter is the parsed query for GET /api/search/hotels.
type HotelSearchFilter struct {
	City         string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Guests       int
	PriceMax     *float64
	MinStars     *int
	SortBy       string
	SortOrder    SortOrder
	Page         int
	PageSize     int
}

// CarSearchFilter is the parsed query for GET /api/search/cars.
type CarSearchFilter struct {
	PickupLocation  string
	DropoffLocation string
	PickupDate      time.Time
	DropoffDate     time.Time
	PriceMax        *float64
	CarType         *CarType
	SortBy          string
	SortOrder       SortOrder
	Page            int
	PageSize        int
}

// FlightSearchResponse is returned by SearchFlights.
type FlightSearchResponse struct {
	Items []Flight `json:"items"`
	Total int      `json:"total"`
}

// HotelSearchResponse is returned by SearchHotels.
type HotelSearchResponse struct {
	Items []Hotel `json:"items"`
	Total int     `json:"total"`
}

// CarSearchResponse is returned by SearchCars.
type CarSearchResponse struct {
	Items []Car `json:"items"`
	Total int   `json:"total"`
}
