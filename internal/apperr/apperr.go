// Package apperr implements the error-as-value taxonomy the HTTP layer
// shapes into {success:false, errorCode, message} responses.
package apperr

import (
	"fmt"
	"log"
)

// Error is a tagged domain failure carrying a stable machine code, a
// human-readable message, the HTTP status it maps to, and optional details.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New constructs an Error with no details.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Message: message, HTTPStatus: status}
}

// Withf constructs an Error with a formatted message.
func Withf(code string, status int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), HTTPStatus: status}
}

// WithDetails attaches structured details and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// Internal wraps an unexpected error as a 500 internal_error, never leaking
// the original error's text to the client (the cause is logged here
// instead).
func Internal(cause error) *Error {
	log.Printf("apperr: internal error: %v", cause)
	return New(CodeInternalError, 500, "an internal error occurred")
}

// Is allows errors.Is(err, apperr.New(code, 0, "")) to match on Code alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Stable error codes from the taxonomy (status in parentheses in spec).
const (
	// Input (400)
	CodeInvalidUserID      = "invalid_user_id"
	CodeMalformedState     = "malformed_state"
	CodeMalformedZip       = "malformed_zip"
	CodeInvalidEmail       = "invalid_email"
	CodeInvalidRating      = "invalid_rating"
	CodeInvalidEventType   = "invalid_event_type"
	CodeInvalidDateRange   = "invalid_date_range"
	CodeInvalidSeatCount   = "invalid_seat_count"
	CodeBatchTooLarge      = "batch_too_large"
	CodeInvalidYear        = "invalid_year"
	CodeInvalidMonth       = "invalid_month"
	CodeInvalidListingType = "invalid_listing_type"
	CodeInvalidListingID   = "invalid_listing_id"
	CodeInvalidPrice       = "invalid_price"
	CodeMissingField       = "missing_field"

	// Auth (401/403)
	CodeTokenMissing      = "token_missing"
	CodeTokenInvalid      = "token_invalid"
	CodeTokenExpired      = "token_expired"
	CodeInvalidCredential = "invalid_credentials"
	CodeForbidden         = "forbidden"

	// Uniqueness (409)
	CodeDuplicateEmail  = "duplicate_email"
	CodeDuplicateUserID = "duplicate_user_id"
	CodeDuplicateReview = "duplicate_review"

	// Domain (404/409/402)
	CodeFlightNotFound       = "flight_not_found"
	CodeHotelNotFound        = "hotel_not_found"
	CodeCarNotFound          = "car_not_found"
	CodeUserNotFound         = "user_not_found"
	CodeBookingNotFound      = "booking_not_found"
	CodeNoInventory          = "no_inventory"
	CodePriceMismatch        = "price_mismatch"
	CodePaymentFailed        = "payment_failed"
	CodeMissingPaymentMethod = "missing_payment_method"
	CodeInvalidAmount        = "invalid_amount"

	// Infrastructure (429/500/502)
	CodeRateLimited   = "rate_limited"
	CodeInternalError = "internal_error"
	CodeNetworkError  = "network_error"
)

func TooManyRequests(message string) *Error { return New(CodeRateLimited, 429, message) }
func BadRequest(code, message string) *Error { return New(code, 400, message) }
func Unauthorized(code, message string) *Error { return New(code, 401, message) }
func ForbiddenErr(message string) *Error { return New(CodeForbidden, 403, message) }
func NotFound(code, message string) *Error { return New(code, 404, message) }
func Conflict(code, message string) *Error { return New(code, 409, message) }
func PaymentRequired(code, message string) *Error { return New(code, 402, message) }
func BadGateway(code, message string) *Error { return New(code, 502, message) }
