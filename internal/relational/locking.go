package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

// These are the row-level locking and conditional-decrement primitives the
// booking engine composes inside its single transaction. Every function here
// takes the caller's *sql.Tx directly — none of them opens its own
// transaction, so callers control the atomic boundary.

// FindFlightByIDForUpdate acquires a row-level exclusive lock on the flight
// row; concurrent callers on the same id serialize here.
func FindFlightByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*models.Flight, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1 FOR UPDATE`, id)
	f, err := scanFlight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeFlightNotFound, "flight not found")
		}
		return nil, fmt.Errorf("failed to lock flight: %w", err)
	}
	return f, nil
}

// FindHotelByIDForUpdate acquires a row-level exclusive lock on the hotel row.
func FindHotelByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*models.Hotel, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1 FOR UPDATE`, id)
	h, err := scanHotel(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeHotelNotFound, "hotel not found")
		}
		return nil, fmt.Errorf("failed to lock hotel: %w", err)
	}
	return h, nil
}

// FindCarByIDForUpdate acquires a row-level exclusive lock on the car row.
func FindCarByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*models.Car, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = $1 FOR UPDATE`, id)
	c, err := scanCar(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeCarNotFound, "car not found")
		}
		return nil, fmt.Errorf("failed to lock car: %w", err)
	}
	return c, nil
}

// DecrementSeatsAvailable performs the conditional update
// `seats_available = seats_available - seats WHERE id = ? AND seats_available >= seats`
// and raises no_inventory if it affects zero rows.
func DecrementSeatsAvailable(ctx context.Context, tx *sql.Tx, flightID int64, seats int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE flights SET seats_available = seats_available - $1 WHERE id = $2 AND seats_available >= $1`,
		seats, flightID)
	if err != nil {
		return fmt.Errorf("failed to decrement seats: %w", err)
	}
	return requireRowsAffected(result, "failed to decrement seats")
}

// DecrementRoomsAvailable is the hotel-room analogue of DecrementSeatsAvailable.
func DecrementRoomsAvailable(ctx context.Context, tx *sql.Tx, hotelID int64, rooms int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE hotels SET rooms_available = rooms_available - $1 WHERE id = $2 AND rooms_available >= $1`,
		rooms, hotelID)
	if err != nil {
		return fmt.Errorf("failed to decrement rooms: %w", err)
	}
	return requireRowsAffected(result, "failed to decrement rooms")
}

// DecrementUnitsAvailable is the rental-car analogue of DecrementSeatsAvailable.
func DecrementUnitsAvailable(ctx context.Context, tx *sql.Tx, carID int64, units int) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE cars SET units_available = units_available - $1 WHERE id = $2 AND units_available >= $1`,
		units, carID)
	if err != nil {
		return fmt.Errorf("failed to decrement units: %w", err)
	}
	return requireRowsAffected(result, "failed to decrement units")
}

func requireRowsAffected(result sql.Result, context string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	if rows == 0 {
		return apperr.Conflict(apperr.CodeNoInventory, "insufficient inventory")
	}
	return nil
}
