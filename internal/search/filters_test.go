package search

import (
	"net/url"
	"testing"

	"github.com/Rajeswari195/kayak/internal/apperr"
)

func TestParseFlightFilterRequiresOrigin(t *testing.T) {
	q := url.Values{}
	q.Set("destinationIata", "LAX")
	q.Set("departureDate", "2026-08-01")

	_, err := ParseFlightFilter(q)
	if err == nil {
		t.Fatal("expected error for missing originIata")
	}
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeMissingField {
		t.Fatalf("expected missing_field error, got %v", err)
	}
}

func TestParseFlightFilterDefaultsAndUppercasesIata(t *testing.T) {
	q := url.Values{}
	q.Set("originIata", "jfk")
	q.Set("destinationIata", "lax")
	q.Set("departureDate", "2026-08-01")

	f, err := ParseFlightFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.OriginIata != "JFK" || f.DestinationIata != "LAX" {
		t.Fatalf("expected uppercased IATA codes, got %s/%s", f.OriginIata, f.DestinationIata)
	}
	if f.Passengers != 1 {
		t.Fatalf("expected default passengers 1, got %d", f.Passengers)
	}
	if f.PageSize != defaultPageSize {
		t.Fatalf("expected default page size, got %d", f.PageSize)
	}
}

func TestParseFlightFilterRejectsReturnBeforeDeparture(t *testing.T) {
	q := url.Values{}
	q.Set("originIata", "JFK")
	q.Set("destinationIata", "LAX")
	q.Set("departureDate", "2026-08-10")
	q.Set("returnDate", "2026-08-05")

	_, err := ParseFlightFilter(q)
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeInvalidDateRange {
		t.Fatalf("expected invalid_date_range, got %v", err)
	}
}

func TestParseHotelFilterRejectsBadDateOrder(t *testing.T) {
	q := url.Values{}
	q.Set("city", "Chicago")
	q.Set("checkInDate", "2026-08-10")
	q.Set("checkOutDate", "2026-08-10")

	_, err := ParseHotelFilter(q)
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeInvalidDateRange {
		t.Fatalf("expected invalid_date_range, got %v", err)
	}
}

func TestParseCarFilterRequiresPickupLocation(t *testing.T) {
	q := url.Values{}
	q.Set("pickupDate", "2026-08-10")
	q.Set("dropoffDate", "2026-08-12")

	_, err := ParseCarFilter(q)
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeMissingField {
		t.Fatalf("expected missing_field, got %v", err)
	}
}

func TestParseCarFilterAcceptsValidRange(t *testing.T) {
	q := url.Values{}
	q.Set("pickupLocation", "Chicago")
	q.Set("pickupDate", "2026-08-10")
	q.Set("dropoffDate", "2026-08-12")
	q.Set("carType", "suv")

	f, err := ParseCarFilter(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.CarType == nil || *f.CarType != "SUV" {
		t.Fatalf("expected uppercased car type SUV, got %v", f.CarType)
	}
}
