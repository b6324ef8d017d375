package models

import "time"

// Airport attributes flight revenue to a city in analytics.
type Airport struct {
	ID   int64  `json:"id" db:"id"`
	Iata string `json:"iata" db:"iata"`
	City string `json:"city" db:"city"`
}

// Flight is a bookable flight inventory row.
type Flight struct {
	ID                   int64     `json:"id" db:"id"`
	Airline              string    `json:"airline" db:"airline"`
	FlightNumber         string    `json:"flightNumber" db:"flight_number"`
	OriginAirportID      int64     `json:"originAirportId" db:"origin_airport_id"`
	DestinationAirportID int64     `json:"destinationAirportId" db:"destination_airport_id"`
	DepartureAt          time.Time `json:"departureAt" db:"departure_at"`
	ArrivalAt            time.Time `json:"arrivalAt" db:"arrival_at"`
	CabinClass           string    `json:"cabinClass" db:"cabin_class"`
	BasePrice            float64   `json:"basePrice" db:"base_price"`
	Currency             string    `json:"currency" db:"currency"`
	SeatsAvailable       int       `json:"seatsAvailable" db:"seats_available"`
	Stops                int       `json:"stops" db:"stops"`
	TotalDurationMinutes int       `json:"totalDurationMinutes" db:"total_duration_minutes"`
	IsActive             bool      `json:"isActive" db:"is_active"`
}

// Hotel is a bookable hotel inventory row.
type Hotel struct {
	ID                int64   `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	City              string  `json:"city" db:"city"`
	State             string  `json:"state" db:"state"`
	StarRating         int     `json:"starRating" db:"star_rating"`
	BasePricePerNight float64 `json:"basePricePerNight" db:"base_price_per_night"`
	Currency          string  `json:"currency" db:"currency"`
	RoomsAvailable    int     `json:"roomsAvailable" db:"rooms_available"`
	IsActive          bool    `json:"isActive" db:"is_active"`
}

// CarType enumerates rental car classes.
type CarType string

const (
	CarTypeEconomy CarType = "ECONOMY"
	CarTypeCompact CarType = "COMPACT"
	CarTypeSUV     CarType = "SUV"
	CarTypeLuxury  CarType = "LUXURY"
)

// Car is a bookable rental-car inventory row.
type Car struct {
	ID            int64   `json:"id" db:"id"`
	ProviderName  string  `json:"providerName" db:"provider_name"`
	Make          string  `json:"make" db:"make"`
	Model         string  `json:"model" db:"model"`
	CarType       CarType `json:"carType" db:"car_type"`
	Seats         int     `json:"seats" db:"seats"`
	Transmission  string  `json:"transmission" db:"transmission"`
	PickupCity    string  `json:"pickupCity" db:"pickup_city"`
	DailyPrice    float64 `json:"dailyPrice" db:"daily_price"`
	Currency      string  `json:"currency" db:"currency"`
	UnitsAvailable int    `json:"unitsAvailable" db:"units_available"`
	IsActive      bool    `json:"isActive" db:"is_active"`
}
