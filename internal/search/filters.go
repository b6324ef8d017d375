package search

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

const dateLayout = "2006-01-02"

const (
	defaultPage     = 0
	defaultPageSize = 20
	maxPageSize     = 100
)

func parsePaging(q url.Values) (page, pageSize int) {
	page = defaultPage
	pageSize = defaultPageSize
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page = n
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPageSize {
			pageSize = n
		}
	}
	return page, pageSize
}

func parseSortOrder(q url.Values) models.SortOrder {
	if strings.EqualFold(q.Get("sortOrder"), "desc") {
		return models.SortDesc
	}
	return models.SortAsc
}

func parsePriceMax(q url.Values) (*float64, error) {
	v := q.Get("priceMax")
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, apperr.BadRequest(apperr.CodeInvalidPrice, "priceMax must be a non-negative number")
	}
	return &f, nil
}

func requireField(q url.Values, field string) (string, error) {
	v := strings.TrimSpace(q.Get(field))
	if v == "" {
		return "", apperr.BadRequest(apperr.CodeMissingField, field+" is required").WithDetails(map[string]any{"field": field})
	}
	return v, nil
}

func requireDate(q url.Values, field string) (time.Time, error) {
	v, err := requireField(q, field)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, apperr.BadRequest(apperr.CodeMissingField, field+" must be formatted YYYY-MM-DD").WithDetails(map[string]any{"field": field})
	}
	return t, nil
}

// ParseFlightFilter builds a FlightSearchFilter from GET /api/search/flights
// query parameters, per spec.md §4.2.
func ParseFlightFilter(q url.Values) (*models.FlightSearchFilter, error) {
	origin, err := requireField(q, "originIata")
	if err != nil {
		return nil, err
	}
	destination, err := requireField(q, "destinationIata")
	if err != nil {
		return nil, err
	}
	departureDate, err := requireDate(q, "departureDate")
	if err != nil {
		return nil, err
	}

	var returnDate *time.Time
	if v := q.Get("returnDate"); v != "" {
		rd, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, apperr.BadRequest(apperr.CodeMissingField, "returnDate must be formatted YYYY-MM-DD")
		}
		if !rd.After(departureDate) {
			return nil, apperr.BadRequest(apperr.CodeInvalidDateRange, "returnDate must be after departureDate")
		}
		returnDate = &rd
	}

	passengers := 1
	if v := q.Get("passengers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, apperr.BadRequest(apperr.CodeInvalidSeatCount, "passengers must be a positive integer")
		}
		passengers = n
	}

	priceMax, err := parsePriceMax(q)
	if err != nil {
		return nil, err
	}

	var stops *int
	if v := q.Get("stops"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, apperr.BadRequest(apperr.CodeMissingField, "stops must be a non-negative integer")
		}
		stops = &n
	}

	page, pageSize := parsePaging(q)
	sortBy := q.Get("sortBy")
	if sortBy != "price" && sortBy != "duration" {
		sortBy = "departureTime"
	}

	return &models.FlightSearchFilter{
		OriginIata:      strings.ToUpper(origin),
		DestinationIata: strings.ToUpper(destination),
		DepartureDate:   departureDate,
		ReturnDate:      returnDate,
		Passengers:      passengers,
		PriceMax:        priceMax,
		Stops:           stops,
		SortBy:          sortBy,
		SortOrder:       parseSortOrder(q),
		Page:            page,
		PageSize:        pageSize,
	}, nil
}

// ParseHotelFilter builds a HotelSearchFilter from GET /api/search/hotels
// query parameters, per spec.md §4.2.
func ParseHotelFilter(q url.Values) (*models.HotelSearchFilter, error) {
	city, err := requireField(q, "city")
	if err != nil {
		return nil, err
	}
	checkIn, err := requireDate(q, "checkInDate")
	if err != nil {
		return nil, err
	}
	checkOut, err := requireDate(q, "checkOutDate")
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, apperr.BadRequest(apperr.CodeInvalidDateRange, "checkOutDate must be after checkInDate")
	}

	guests := 1
	if v := q.Get("guests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, apperr.BadRequest(apperr.CodeInvalidSeatCount, "guests must be a positive integer")
		}
		guests = n
	}

	priceMax, err := parsePriceMax(q)
	if err != nil {
		return nil, err
	}

	var minStars *int
	if v := q.Get("minStars"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 5 {
			return nil, apperr.BadRequest(apperr.CodeMissingField, "minStars must be between 1 and 5")
		}
		minStars = &n
	}

	page, pageSize := parsePaging(q)
	sortBy := q.Get("sortBy")
	if sortBy != "rating" {
		sortBy = "price"
	}

	return &models.HotelSearchFilter{
		City:         city,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       guests,
		PriceMax:     priceMax,
		MinStars:     minStars,
		SortBy:       sortBy,
		SortOrder:    parseSortOrder(q),
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

// ParseCarFilter builds a CarSearchFilter from GET /api/search/cars query
// parameters, per spec.md §4.2.
func ParseCarFilter(q url.Values) (*models.CarSearchFilter, error) {
	pickupLocation, err := requireField(q, "pickupLocation")
	if err != nil {
		return nil, err
	}
	pickupDate, err := requireDate(q, "pickupDate")
	if err != nil {
		return nil, err
	}
	dropoffDate, err := requireDate(q, "dropoffDate")
	if err != nil {
		return nil, err
	}
	if !dropoffDate.After(pickupDate) {
		return nil, apperr.BadRequest(apperr.CodeInvalidDateRange, "dropoffDate must be after pickupDate")
	}

	priceMax, err := parsePriceMax(q)
	if err != nil {
		return nil, err
	}

	var carType *models.CarType
	if v := q.Get("carType"); v != "" {
		ct := models.CarType(strings.ToUpper(v))
		carType = &ct
	}

	page, pageSize := parsePaging(q)

	return &models.CarSearchFilter{
		PickupLocation:  pickupLocation,
		DropoffLocation: q.Get("dropoffLocation"),
		PickupDate:      pickupDate,
		DropoffDate:     dropoffDate,
		PriceMax:        priceMax,
		CarType:         carType,
		SortBy:          "price",
		SortOrder:       parseSortOrder(q),
		Page:            page,
		PageSize:        pageSize,
	}, nil
}
