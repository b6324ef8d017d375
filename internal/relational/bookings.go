package relational

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

// CreateBooking inserts the PENDING booking header row (step 4 of the
// engine skeleton). Runs inside the caller's transaction.
func CreateBooking(ctx context.Context, tx *sql.Tx, b *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, status, total_amount, currency, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := tx.QueryRowContext(ctx, query,
		b.UserID, b.Status, b.TotalAmount, b.Currency, b.StartDate, b.EndDate, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return b, nil
}

// CreateBookingItem inserts the single reserved unit tied to the inventory
// row (step 5).
func CreateBookingItem(ctx context.Context, tx *sql.Tx, item *models.BookingItem) (*models.BookingItem, error) {
	query := `
		INSERT INTO booking_items (booking_id, item_type, flight_id, hotel_id, car_id,
			start_date, end_date, quantity, unit_price, total_price, currency, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := tx.QueryRowContext(ctx, query,
		item.BookingID, item.ItemType, item.FlightID, item.HotelID, item.CarID,
		item.StartDate, item.EndDate, item.Quantity, item.UnitPrice, item.TotalPrice,
		item.Currency, item.Metadata,
	).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking item: %w", err)
	}
	return item, nil
}

// UpdateBookingStatus flips a booking's terminal state (step 9). The
// booking engine is the only caller; it never transitions backward.
func UpdateBookingStatus(ctx context.Context, tx *sql.Tx, bookingID int64, status models.BookingStatus) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2`, status, bookingID)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// CreateBillingTransaction inserts the billing row (step 8). Runs inside
// the caller's transaction; a FAILED row rolls back with the rest of the
// transaction per the chosen design (see design notes).
func CreateBillingTransaction(ctx context.Context, tx *sql.Tx, bt *models.BillingTransaction) (*models.BillingTransaction, error) {
	query := `
		INSERT INTO billing_transactions (booking_id, user_id, amount, currency, payment_method,
			payment_token, provider_reference, status, error_code, raw_response, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		RETURNING id, timestamp`

	err := tx.QueryRowContext(ctx, query,
		bt.BookingID, bt.UserID, bt.Amount, bt.Currency, bt.PaymentMethod,
		bt.PaymentToken, bt.ProviderReference, bt.Status, bt.ErrorCode, bt.RawResponse,
	).Scan(&bt.ID, &bt.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to create billing transaction: %w", err)
	}
	return bt, nil
}

const bookingColumns = `id, user_id, status, total_amount, currency, start_date, end_date,
	notes, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.Status, &b.TotalAmount, &b.Currency, &b.StartDate,
		&b.EndDate, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBookingByID fetches a booking header with its items and billing
// transaction (if any).
func (s *Store) GetBookingByID(ctx context.Context, id int64) (*models.BookingResult, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound(apperr.CodeBookingNotFound, "booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	items, err := s.listBookingItems(ctx, id)
	if err != nil {
		return nil, err
	}

	billing, err := s.getBillingForBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.BookingResult{Booking: b, Items: items, Billing: billing}, nil
}

func (s *Store) listBookingItems(ctx context.Context, bookingID int64) ([]models.BookingItem, error) {
	query := `SELECT id, booking_id, item_type, flight_id, hotel_id, car_id, start_date,
		end_date, quantity, unit_price, total_price, currency, metadata
		FROM booking_items WHERE booking_id = $1 ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking items: %w", err)
	}
	defer rows.Close()

	var items []models.BookingItem
	for rows.Next() {
		var item models.BookingItem
		err := rows.Scan(&item.ID, &item.BookingID, &item.ItemType, &item.FlightID, &item.HotelID,
			&item.CarID, &item.StartDate, &item.EndDate, &item.Quantity, &item.UnitPrice,
			&item.TotalPrice, &item.Currency, &item.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) getBillingForBooking(ctx context.Context, bookingID int64) (*models.BillingTransaction, error) {
	query := `SELECT id, booking_id, user_id, amount, currency, payment_method, payment_token,
		provider_reference, status, error_code, raw_response, timestamp
		FROM billing_transactions WHERE booking_id = $1 ORDER BY id DESC LIMIT 1`

	var bt models.BillingTransaction
	err := s.db.QueryRowContext(ctx, query, bookingID).Scan(
		&bt.ID, &bt.BookingID, &bt.UserID, &bt.Amount, &bt.Currency, &bt.PaymentMethod,
		&bt.PaymentToken, &bt.ProviderReference, &bt.Status, &bt.ErrorCode, &bt.RawResponse,
		&bt.Timestamp,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing transaction: %w", err)
	}
	return &bt, nil
}

// ListUserBookings returns a user's bookings partitioned by scope:
// "past" is endDate before now, "current" is startDate <= now <= endDate,
// and "future" is startDate after now.
func (s *Store) ListUserBookings(ctx context.Context, userID int64, scope models.BookingScope) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1`
	args := []any{userID}

	switch scope {
	case models.ScopePast:
		query += ` AND end_date < now()`
	case models.ScopeCurrent:
		query += ` AND start_date <= now() AND end_date >= now()`
	case models.ScopeFuture:
		query += ` AND start_date > now()`
	}
	query += ` ORDER BY start_date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
