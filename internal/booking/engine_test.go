package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/eventbus"
	"github.com/Rajeswari195/kayak/internal/models"
	"github.com/Rajeswari195/kayak/pkg/database"
)

// newMockEngine mirrors relational.newMockStore: a sqlmock-backed *sql.DB
// wrapped in the real Engine type, plus a fake producer so tests can assert
// which event the engine published.
func newMockEngine(t *testing.T) (*Engine, sqlmock.Sqlmock, *fakeProducer, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	fp := &fakeProducer{}
	pub := eventbus.NewPublisher(fp, nil)
	e := NewEngine(&database.DB{DB: db}, pub, nil, 0)
	return e, mock, fp, func() { db.Close() }
}

type fakeProducer struct {
	events []publishedEvent
}

type publishedEvent struct {
	key   string
	event any
}

func (f *fakeProducer) Publish(ctx context.Context, key string, event any) error {
	f.events = append(f.events, publishedEvent{key: key, event: event})
	return nil
}

func (f *fakeProducer) Close() error { return nil }

var flightColumns = []string{
	"id", "airline", "flight_number", "origin_airport_id", "destination_airport_id",
	"departure_at", "arrival_at", "cabin_class", "base_price", "currency",
	"seats_available", "stops", "total_duration_minutes", "is_active",
}

func flightRow(id int64, basePrice float64, seatsAvailable int) *sqlmock.Rows {
	dep := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	arr := dep.Add(3 * time.Hour)
	return sqlmock.NewRows(flightColumns).AddRow(
		id, "Delta", "DL100", int64(1), int64(2), dep, arr, "ECONOMY",
		basePrice, "USD", seatsAvailable, 0, 180, true,
	)
}

func TestBookFlightHappyPathConfirms(t *testing.T) {
	e, mock, fp, cleanup := newMockEngine(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM flights WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(10)).
		WillReturnRows(flightRow(10, 100, 3))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(1), time.Now(), time.Now()))
	mock.ExpectQuery(`INSERT INTO booking_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`UPDATE flights SET seats_available = seats_available - \$1`).
		WithArgs(2, int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO billing_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(1), time.Now()))
	mock.ExpectExec(`UPDATE bookings SET status = \$1`).
		WithArgs(models.BookingConfirmed, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := e.BookFlight(context.Background(), 7, &models.FlightBookingRequest{
		FlightID:           10,
		Seats:              2,
		PaymentMethodToken: "tok_ok",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.Status != models.BookingConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", result.Booking.Status)
	}
	if result.Booking.TotalAmount != 200 {
		t.Fatalf("expected totalAmount 200, got %v", result.Booking.TotalAmount)
	}
	if len(fp.events) != 1 {
		t.Fatalf("expected exactly one published event, got %d", len(fp.events))
	}
	if _, ok := fp.events[0].event.(models.BookingConfirmedEvent); !ok {
		t.Fatalf("expected a BookingConfirmedEvent, got %T", fp.events[0].event)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookFlightNoInventoryRollsBackAndPublishesFailure(t *testing.T) {
	e, mock, fp, cleanup := newMockEngine(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM flights WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(11)).
		WillReturnRows(flightRow(11, 100, 1))
	mock.ExpectRollback()

	_, err := e.BookFlight(context.Background(), 7, &models.FlightBookingRequest{
		FlightID:           11,
		Seats:              2,
		PaymentMethodToken: "tok_ok",
	})

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeNoInventory {
		t.Fatalf("expected no_inventory, got %v", err)
	}
	if len(fp.events) != 1 {
		t.Fatalf("expected exactly one published event, got %d", len(fp.events))
	}
	if _, ok := fp.events[0].event.(models.BookingFailedEvent); !ok {
		t.Fatalf("expected a BookingFailedEvent, got %T", fp.events[0].event)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookFlightPaymentDeclineRollsBackBillingRow(t *testing.T) {
	e, mock, fp, cleanup := newMockEngine(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM flights WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(12)).
		WillReturnRows(flightRow(12, 100, 3))
	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(2), time.Now(), time.Now()))
	mock.ExpectQuery(`INSERT INTO booking_items`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))
	mock.ExpectExec(`UPDATE flights SET seats_available = seats_available - \$1`).
		WithArgs(1, int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO billing_transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(2), time.Now()))
	mock.ExpectExec(`UPDATE bookings SET status = \$1`).
		WithArgs(models.BookingFailed, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	_, err := e.BookFlight(context.Background(), 7, &models.FlightBookingRequest{
		FlightID:           12,
		Seats:              1,
		PaymentMethodToken: "tok_fail_card",
	})

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodePaymentFailed {
		t.Fatalf("expected payment_failed, got %v", err)
	}
	if len(fp.events) != 1 {
		t.Fatalf("expected exactly one published event, got %d", len(fp.events))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookFlightMissingPaymentTokenFailsBeforeAnyQuery(t *testing.T) {
	e, mock, fp, cleanup := newMockEngine(t)
	defer cleanup()

	_, err := e.BookFlight(context.Background(), 7, &models.FlightBookingRequest{
		FlightID: 13,
		Seats:    1,
	})

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeMissingPaymentMethod {
		t.Fatalf("expected missing_payment_method, got %v", err)
	}
	if len(fp.events) != 1 {
		t.Fatalf("expected exactly one published event, got %d", len(fp.events))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations (no queries should have run): %v", err)
	}
}
