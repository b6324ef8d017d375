package models

import (
	"encoding/json"
	"time"
)

// BookingStatus is the lifecycle state of a Booking. Transitions only move
// forward: PENDING -> CONFIRMED|FAILED (terminal), or admin-only PENDING ->
// CANCELED (out of core scope).
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingFailed    BookingStatus = "FAILED"
	BookingCanceled  BookingStatus = "CANCELED"
)

// ItemType discriminates the inventory kind a BookingItem reserves.
type ItemType string

const (
	ItemFlight ItemType = "FLIGHT"
	ItemHotel  ItemType = "HOTEL"
	ItemCar    ItemType = "CAR"
)

// PassengerDetails accompanies a flight booking item.
type PassengerDetails struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Booking is the header row grouping one or more BookingItems.
type Booking struct {
	ID          int64         `json:"id" db:"id"`
	UserID      int64         `json:"userId" db:"user_id"`
	Status      BookingStatus `json:"status" db:"status"`
	TotalAmount float64       `json:"totalAmount" db:"total_amount"`
	Currency    string        `json:"currency" db:"currency"`
	StartDate   time.Time     `json:"startDate" db:"start_date"`
	EndDate     time.Time     `json:"endDate" db:"end_date"`
	Notes       string        `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// BookingItem is a single reserved unit tied to exactly one inventory row.
type BookingItem struct {
	ID         int64           `json:"id" db:"id"`
	BookingID  int64           `json:"bookingId" db:"booking_id"`
	ItemType   ItemType        `json:"itemType" db:"item_type"`
	FlightID   *int64          `json:"flightId,omitempty" db:"flight_id"`
	HotelID    *int64          `json:"hotelId,omitempty" db:"hotel_id"`
	CarID      *int64          `json:"carId,omitempty" db:"car_id"`
	StartDate  time.Time       `json:"startDate" db:"start_date"`
	EndDate    time.Time       `json:"endDate" db:"end_date"`
	Quantity   int             `json:"quantity" db:"quantity"`
	UnitPrice  float64         `json:"unitPrice" db:"unit_price"`
	TotalPrice float64         `json:"totalPrice" db:"total_price"`
	Currency   string          `json:"currency" db:"currency"`
	Metadata   json.RawMessage `json:"metadata,omitempty" db:"metadata"`
}

// BillingStatus is the outcome of a BillingTransaction.
type BillingStatus string

const (
	BillingSuccess BillingStatus = "SUCCESS"
	BillingFailed  BillingStatus = "FAILED"
)

// BillingTransaction records a single payment attempt against a Booking.
type BillingTransaction struct {
	ID                int64           `json:"id" db:"id"`
	BookingID         int64           `json:"bookingId" db:"booking_id"`
	UserID            int64           `json:"userId" db:"user_id"`
	Amount            float64         `json:"amount" db:"amount"`
	Currency          string          `json:"currency" db:"currency"`
	PaymentMethod     string          `json:"paymentMethod" db:"payment_method"`
	PaymentToken      string          `json:"-" db:"payment_token"`
	ProviderReference *string         `json:"providerReference,omitempty" db:"provider_reference"`
	Status            BillingStatus   `json:"status" db:"status"`
	ErrorCode         *string         `json:"errorCode,omitempty" db:"error_code"`
	RawResponse       json.RawMessage `json:"rawResponse,omitempty" db:"raw_response"`
	Timestamp         time.Time       `json:"timestamp" db:"timestamp"`
}

// BookingScope partitions a user's bookings by date for GET /api/bookings.
type BookingScope string

const (
	ScopePast    BookingScope = "past"
	ScopeCurrent BookingScope = "current"
	ScopeFuture  BookingScope = "future"
	ScopeAll     BookingScope = "all"
)

// FlightBookingRequest is the wire payload for POST /api/bookings/flight.
type FlightBookingRequest struct {
	FlightID           int64              `json:"flightId"`
	Seats              int                `json:"seats"`
	PaymentMethodToken string             `json:"paymentMethodToken"`
	ExpectedTotalPrice *float64           `json:"expectedTotalPrice,omitempty"`
	Passengers         []PassengerDetails `json:"passengers"`
}

// HotelBookingRequest is the wire payload for POST /api/bookings/hotel.
type HotelBookingRequest struct {
	HotelID            int64     `json:"hotelId"`
	Rooms              int       `json:"rooms"`
	CheckIn            time.Time `json:"checkIn"`
	CheckOut           time.Time `json:"checkOut"`
	PaymentMethodToken string    `json:"paymentMethodToken"`
	ExpectedTotalPrice *float64  `json:"expectedTotalPrice,omitempty"`
}

// CarBookingRequest is the wire payload for POST /api/bookings/car.
type CarBookingRequest struct {
	CarID              int64     `json:"carId"`
	PickupDate         time.Time `json:"pickupDate"`
	DropoffDate        time.Time `json:"dropoffDate"`
	PaymentMethodToken string    `json:"paymentMethodToken"`
	ExpectedTotalPrice *float64  `json:"expectedTotalPrice,omitempty"`
}

// BookingResult is the aggregate returned on a successful booking.
type BookingResult struct {
	Booking *Booking            `json:"booking"`
	Items   []BookingItem       `json:"items"`
	Billing *BillingTransaction `json:"billing"`
}
