package booking

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/eventbus"
	"github.com/Rajeswari195/kayak/internal/metrics"
	"github.com/Rajeswari195/kayak/internal/models"
	"github.com/Rajeswari195/kayak/internal/payment"
	"github.com/Rajeswari195/kayak/internal/relational"
	"github.com/Rajeswari195/kayak/pkg/database"
)

// originBookingEngine tags every event this engine emits.
const originBookingEngine = "booking-engine"

// priceTolerance is the maximum fractional deviation allowed between a
// client-supplied expectedTotalPrice and the price the engine recomputes
// from the locked inventory row.
const priceTolerance = 0.01

// defaultLockTimeout bounds how long a booking attempt waits to acquire the
// inventory row lock per spec.md §5, used when the caller doesn't override it.
const defaultLockTimeout = 5 * time.Second

// Engine is the single orchestrator shared by all three booking kinds; it
// knows nothing about flights, hotels, or cars beyond the plan handed to it.
type Engine struct {
	db          *database.DB
	publisher   *eventbus.Publisher
	metrics     *metrics.Metrics
	lockTimeout time.Duration
}

// NewEngine builds the booking transaction engine. m may be nil in tests.
// lockTimeout bounds the inventory row-lock wait (spec.md §5); pass 0 to use
// the 5s default.
func NewEngine(db *database.DB, publisher *eventbus.Publisher, m *metrics.Metrics, lockTimeout time.Duration) *Engine {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &Engine{db: db, publisher: publisher, metrics: m, lockTimeout: lockTimeout}
}

// BookFlight runs the §4.6 transaction skeleton for a flight booking
// request.
func (e *Engine) BookFlight(ctx context.Context, userID int64, req *models.FlightBookingRequest) (*models.BookingResult, error) {
	pl, err := buildFlightPlan(req)
	if err != nil {
		e.publishPreValidationFailure(ctx, string(models.ItemFlight), userID, err)
		return nil, err
	}
	return e.execute(ctx, string(models.ItemFlight), userID, pl)
}

// BookHotel runs the §4.6 transaction skeleton for a hotel booking request.
func (e *Engine) BookHotel(ctx context.Context, userID int64, req *models.HotelBookingRequest) (*models.BookingResult, error) {
	pl, err := buildHotelPlan(req)
	if err != nil {
		e.publishPreValidationFailure(ctx, string(models.ItemHotel), userID, err)
		return nil, err
	}
	return e.execute(ctx, string(models.ItemHotel), userID, pl)
}

// BookCar runs the §4.6 transaction skeleton for a rental-car booking
// request.
func (e *Engine) BookCar(ctx context.Context, userID int64, req *models.CarBookingRequest) (*models.BookingResult, error) {
	pl, err := buildCarPlan(req)
	if err != nil {
		e.publishPreValidationFailure(ctx, string(models.ItemCar), userID, err)
		return nil, err
	}
	return e.execute(ctx, string(models.ItemCar), userID, pl)
}

// publishPreValidationFailure emits BOOKING_FAILED for a pre-validation
// error raised before any booking row existed (e.g. missing_payment_method),
// matching the booking=nil case the publisher already supports for
// in-transaction no_inventory failures on the very first lock-and-load.
func (e *Engine) publishPreValidationFailure(ctx context.Context, kind string, userID int64, err error) {
	e.metrics.ObserveBookingOutcome(kind, errorCodeOf(err))
	e.publisher.PublishBookingFailed(ctx, nil, userID, errorCodeOf(err), originBookingEngine)
}

func errorCodeOf(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return apperr.CodeInternalError
}

// execute runs the skeleton of §4.6 for a single plan, inside one
// transaction, then publishes the resulting event outside it.
func (e *Engine) execute(ctx context.Context, kind string, userID int64, pl *plan) (*models.BookingResult, error) {
	var result *models.BookingResult
	var partialBooking *models.Booking

	txErr := e.db.WithTxRetryOnDeadlock(ctx, func(tx *sql.Tx) error {
		lockCtx, cancelLock := context.WithTimeout(ctx, e.lockTimeout)
		unitPrice, currency, available, err := pl.lockAndLoad(lockCtx, tx)
		cancelLock()
		if err != nil {
			return err
		}
		if available < pl.reserveUnits {
			return apperr.Conflict(apperr.CodeNoInventory, "insufficient inventory")
		}

		totalAmount := unitPrice * float64(pl.quantity)
		if pl.expectedTotalPrice != nil && totalAmount > 0 {
			if math.Abs(totalAmount-*pl.expectedTotalPrice)/totalAmount > priceTolerance {
				return apperr.Conflict(apperr.CodePriceMismatch, "quoted price no longer matches inventory")
			}
		}

		created, err := relational.CreateBooking(ctx, tx, &models.Booking{
			UserID:      userID,
			Status:      models.BookingPending,
			TotalAmount: totalAmount,
			Currency:    currency,
			StartDate:   pl.startDate,
			EndDate:     pl.endDate,
		})
		if err != nil {
			return err
		}
		partialBooking = created

		flightID, hotelID, carID := pl.refs()
		item, err := relational.CreateBookingItem(ctx, tx, &models.BookingItem{
			BookingID:  created.ID,
			ItemType:   pl.itemType,
			FlightID:   flightID,
			HotelID:    hotelID,
			CarID:      carID,
			StartDate:  pl.startDate,
			EndDate:    pl.endDate,
			Quantity:   pl.quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalAmount,
			Currency:   currency,
			Metadata:   pl.metadata(),
		})
		if err != nil {
			return err
		}

		if err := pl.decrement(ctx, tx); err != nil {
			return err
		}

		outcome := payment.Charge(&models.PaymentCharge{
			UserID:   userID,
			Amount:   totalAmount,
			Currency: currency,
			Token:    pl.token,
		})

		billing := &models.BillingTransaction{
			BookingID:     created.ID,
			UserID:        userID,
			Amount:        totalAmount,
			Currency:      currency,
			PaymentMethod: "CARD",
			PaymentToken:  pl.token,
			RawResponse:   outcome.RawResponse,
		}
		if outcome.Success {
			billing.Status = models.BillingSuccess
			ref := outcome.ProviderRef
			billing.ProviderReference = &ref
		} else {
			billing.Status = models.BillingFailed
			errType := outcome.ErrorType
			billing.ErrorCode = &errType
		}

		createdBilling, err := relational.CreateBillingTransaction(ctx, tx, billing)
		if err != nil {
			return err
		}

		if !outcome.Success {
			// The billing row is written FAILED, then we abort so it rolls
			// back with everything else: operators see the failure only
			// through the emitted event, not a stray DB row.
			_ = relational.UpdateBookingStatus(ctx, tx, created.ID, models.BookingFailed)
			return apperr.PaymentRequired(apperr.CodePaymentFailed, "payment declined: "+outcome.ErrorType)
		}

		if err := relational.UpdateBookingStatus(ctx, tx, created.ID, models.BookingConfirmed); err != nil {
			return err
		}
		created.Status = models.BookingConfirmed

		result = &models.BookingResult{Booking: created, Items: []models.BookingItem{*item}, Billing: createdBilling}
		return nil
	})

	if txErr != nil {
		errorCode := errorCodeOf(txErr)
		e.metrics.ObserveBookingOutcome(kind, errorCode)
		e.publisher.PublishBookingFailed(context.Background(), partialBooking, userID, errorCode, originBookingEngine)
		return nil, txErr
	}

	e.metrics.ObserveBookingOutcome(kind, "confirmed")
	e.publisher.PublishBookingConfirmed(context.Background(), *result.Booking, result.Items, *result.Billing, userID, originBookingEngine)
	return result, nil
}
