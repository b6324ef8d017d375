// Package booking implements the transaction engine that is the heart of
// the system: it atomically reserves inventory, charges the payment
// simulator, and records the outcome, for all three bookable item kinds.
package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"
)

// plan is the capability set a single booking attempt needs from its
// inventory kind. Flight/hotel/car bookings each build one of these (see
// kinds.go) and hand it to the engine, which is itself itemType-agnostic.
type plan struct {
	itemType models.ItemType

	// quantity is the billed quantity persisted on the BookingItem per
	// spec.md §3 ("quantity (seats/rooms/days)") and multiplied against
	// unitPrice to derive totalPrice: seats for a flight, rooms for a
	// hotel, rental days for a car.
	quantity int

	// reserveUnits is how many inventory units must be available and are
	// checked against the locked row's capacity. For flights and hotels
	// this equals quantity (one seat/room per unit booked); for a car
	// rental it is always 1 regardless of how many days are billed, since
	// a multi-day rental still occupies a single physical car.
	reserveUnits int

	token string

	expectedTotalPrice *float64

	startDate time.Time
	endDate   time.Time

	// lockAndLoad acquires the row-level lock and returns the row's unit
	// price, currency, and remaining capacity. Must run inside tx.
	lockAndLoad func(ctx context.Context, tx *sql.Tx) (unitPrice float64, currency string, available int, err error)

	// decrement performs the conditional capacity decrement. Must run
	// inside the same tx as lockAndLoad.
	decrement func(ctx context.Context, tx *sql.Tx) error

	// refs returns the single non-nil foreign key matching itemType.
	refs func() (flightID, hotelID, carID *int64)

	// metadata returns the free-form JSON attached to the booking item.
	metadata func() json.RawMessage
}
