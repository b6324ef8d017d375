package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
	"github.com/Rajeswari195/kayak/internal/relational"
)

// buildFlightPlan pre-validates a flight booking request and assembles its
// plan. Pre-validation is cheap and runs before any transaction opens.
func buildFlightPlan(req *models.FlightBookingRequest) (*plan, error) {
	if req.Seats <= 0 {
		return nil, apperr.BadRequest(apperr.CodeInvalidSeatCount, "seats must be a positive integer")
	}
	if req.PaymentMethodToken == "" {
		return nil, apperr.PaymentRequired(apperr.CodeMissingPaymentMethod, "a payment method token is required")
	}

	passengers, _ := json.Marshal(req.Passengers)

	p := &plan{
		itemType:           models.ItemFlight,
		quantity:           req.Seats,
		reserveUnits:       req.Seats,
		token:              req.PaymentMethodToken,
		expectedTotalPrice: req.ExpectedTotalPrice,
		refs: func() (*int64, *int64, *int64) {
			id := req.FlightID
			return &id, nil, nil
		},
		metadata: func() json.RawMessage { return passengers },
	}

	p.lockAndLoad = func(ctx context.Context, tx *sql.Tx) (float64, string, int, error) {
		flight, err := relational.FindFlightByIDForUpdate(ctx, tx, req.FlightID)
		if err != nil {
			return 0, "", 0, err
		}
		if !flight.IsActive {
			return 0, "", 0, apperr.NotFound(apperr.CodeFlightNotFound, "flight not found")
		}
		p.startDate = flight.DepartureAt
		p.endDate = flight.ArrivalAt
		return flight.BasePrice, flight.Currency, flight.SeatsAvailable, nil
	}

	p.decrement = func(ctx context.Context, tx *sql.Tx) error {
		return relational.DecrementSeatsAvailable(ctx, tx, req.FlightID, req.Seats)
	}

	return p, nil
}

// buildHotelPlan pre-validates a hotel booking request and assembles its
// plan. Nights are max(1, ceil((checkOut-checkIn)/day)).
func buildHotelPlan(req *models.HotelBookingRequest) (*plan, error) {
	if req.Rooms <= 0 {
		return nil, apperr.BadRequest(apperr.CodeInvalidSeatCount, "rooms must be a positive integer")
	}
	if !req.CheckOut.After(req.CheckIn) {
		return nil, apperr.BadRequest(apperr.CodeInvalidDateRange, "checkOut must be after checkIn")
	}
	if req.PaymentMethodToken == "" {
		return nil, apperr.PaymentRequired(apperr.CodeMissingPaymentMethod, "a payment method token is required")
	}

	nights := nightsOrDays(req.CheckIn, req.CheckOut)

	p := &plan{
		itemType:           models.ItemHotel,
		quantity:           req.Rooms,
		reserveUnits:       req.Rooms,
		token:              req.PaymentMethodToken,
		expectedTotalPrice: req.ExpectedTotalPrice,
		startDate:          req.CheckIn,
		endDate:            req.CheckOut,
		refs: func() (*int64, *int64, *int64) {
			id := req.HotelID
			return nil, &id, nil
		},
		metadata: func() json.RawMessage {
			raw, _ := json.Marshal(map[string]any{"nights": nights})
			return raw
		},
	}

	p.lockAndLoad = func(ctx context.Context, tx *sql.Tx) (float64, string, int, error) {
		hotel, err := relational.FindHotelByIDForUpdate(ctx, tx, req.HotelID)
		if err != nil {
			return 0, "", 0, err
		}
		if !hotel.IsActive {
			return 0, "", 0, apperr.NotFound(apperr.CodeHotelNotFound, "hotel not found")
		}
		return hotel.BasePricePerNight * float64(nights), hotel.Currency, hotel.RoomsAvailable, nil
	}

	p.decrement = func(ctx context.Context, tx *sql.Tx) error {
		return relational.DecrementRoomsAvailable(ctx, tx, req.HotelID, req.Rooms)
	}

	return p, nil
}

// buildCarPlan pre-validates a car booking request and assembles its plan.
func buildCarPlan(req *models.CarBookingRequest) (*plan, error) {
	if !req.DropoffDate.After(req.PickupDate) {
		return nil, apperr.BadRequest(apperr.CodeInvalidDateRange, "dropoffDate must be after pickupDate")
	}
	if req.PaymentMethodToken == "" {
		return nil, apperr.PaymentRequired(apperr.CodeMissingPaymentMethod, "a payment method token is required")
	}

	days := nightsOrDays(req.PickupDate, req.DropoffDate)

	p := &plan{
		itemType:           models.ItemCar,
		quantity:           days,
		reserveUnits:       1,
		token:              req.PaymentMethodToken,
		expectedTotalPrice: req.ExpectedTotalPrice,
		startDate:          req.PickupDate,
		endDate:            req.DropoffDate,
		refs: func() (*int64, *int64, *int64) {
			id := req.CarID
			return nil, nil, &id
		},
		metadata: func() json.RawMessage {
			raw, _ := json.Marshal(map[string]any{"days": days})
			return raw
		},
	}

	p.lockAndLoad = func(ctx context.Context, tx *sql.Tx) (float64, string, int, error) {
		car, err := relational.FindCarByIDForUpdate(ctx, tx, req.CarID)
		if err != nil {
			return 0, "", 0, err
		}
		if !car.IsActive {
			return 0, "", 0, apperr.NotFound(apperr.CodeCarNotFound, "car not found")
		}
		return car.DailyPrice, car.Currency, car.UnitsAvailable, nil
	}

	p.decrement = func(ctx context.Context, tx *sql.Tx) error {
		return relational.DecrementUnitsAvailable(ctx, tx, req.CarID, 1)
	}

	return p, nil
}

// nightsOrDays computes max(1, ceil((end-start)/24h)).
func nightsOrDays(start, end time.Time) int {
	n := int(math.Ceil(end.Sub(start).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}
