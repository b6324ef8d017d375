package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/models"
	"github.com/Rajeswari195/kayak/internal/relational"
)

type fakeRelational struct {
	properties []relational.PropertyRevenue
	cities     []relational.CityRevenue
	providers  []relational.ProviderRevenue
	userIDs    []int64
	err        error
	gotLimit   int
}

func (f *fakeRelational) TopPropertiesByRevenue(ctx context.Context, year, limit int) ([]relational.PropertyRevenue, error) {
	f.gotLimit = limit
	return f.properties, f.err
}

func (f *fakeRelational) CityRevenueForYear(ctx context.Context, year int) ([]relational.CityRevenue, error) {
	return f.cities, f.err
}

func (f *fakeRelational) TopProvidersForMonth(ctx context.Context, year, month, limit int) ([]relational.ProviderRevenue, error) {
	return f.providers, f.err
}

func (f *fakeRelational) UserIDsByCity(ctx context.Context, city string, limit int) ([]int64, error) {
	return f.userIDs, f.err
}

type fakeClicks struct {
	byUser            []models.ClickstreamEvent
	byUserIDs         []models.ClickstreamEvent
	pageStats         []document.PageEventCount
	listingStats      []document.ListingEventCount
}

func (f *fakeClicks) ByUser(ctx context.Context, userID int64, limit int64) ([]models.ClickstreamEvent, error) {
	return f.byUser, nil
}

func (f *fakeClicks) ByUserIDs(ctx context.Context, userIDs []int64, limit int64) ([]models.ClickstreamEvent, error) {
	return f.byUserIDs, nil
}

func (f *fakeClicks) PageClickStats(ctx context.Context, sinceDays int, limit int64) ([]document.PageEventCount, error) {
	return f.pageStats, nil
}

func (f *fakeClicks) ListingClickStats(ctx context.Context, sinceDays int, limit int64) ([]document.ListingEventCount, error) {
	return f.listingStats, nil
}

func ptr(v int64) *int64 { return &v }

func TestTopPropertiesByRevenueRejectsBadYear(t *testing.T) {
	svc := NewService(&fakeRelational{}, &fakeClicks{}, nil, 0)

	_, err := svc.TopPropertiesByRevenue(context.Background(), 1899, 10)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidYear {
		t.Fatalf("expected invalid_year, got %v", err)
	}
}

func TestTopPropertiesByRevenueClampsLimit(t *testing.T) {
	rel := &fakeRelational{properties: []relational.PropertyRevenue{{ItemType: "HOTEL", ListingID: 1, ListingName: "Inn", TotalRevenue: 500, Currency: "USD"}}}
	svc := NewService(rel, &fakeClicks{}, nil, 0)

	rows, err := svc.TopPropertiesByRevenue(context.Background(), 2025, 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ListingName != "Inn" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
	if rel.gotLimit != maxRevenueLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxRevenueLimit, rel.gotLimit)
	}
}

func TestTopProvidersForMonthRejectsBadMonth(t *testing.T) {
	svc := NewService(&fakeRelational{}, &fakeClicks{}, nil, 0)

	_, err := svc.TopProvidersForMonth(context.Background(), 2025, 13, 10)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Code != apperr.CodeInvalidMonth {
		t.Fatalf("expected invalid_month, got %v", err)
	}
}

func TestCityRevenueForYearPassesThrough(t *testing.T) {
	rel := &fakeRelational{cities: []relational.CityRevenue{{City: "Austin", TotalRevenue: 1200}}}
	svc := NewService(rel, &fakeClicks{}, nil, 0)

	rows, err := svc.CityRevenueForYear(context.Background(), 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].City != "Austin" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestUserTracePartitionsBySession(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clicks := &fakeClicks{byUser: []models.ClickstreamEvent{
		{SessionID: "s1", Page: "/home", CreatedAt: base},
		{SessionID: "s1", Page: "/search", CreatedAt: base.Add(time.Minute)},
		{SessionID: "s2", Page: "/home", CreatedAt: base.Add(2 * time.Minute)},
	}}
	svc := NewService(&fakeRelational{}, clicks, nil, 0)

	traces, err := svc.UserTrace(context.Background(), 42, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(traces) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(traces))
	}
	if traces[0].SessionID != "s1" || len(traces[0].Pages) != 2 {
		t.Fatalf("unexpected first session trace: %+v", traces[0])
	}
	if !traces[0].LastSeen.After(traces[0].FirstSeen) {
		t.Fatal("expected LastSeen after FirstSeen")
	}
}

func TestCohortTraceByCityReturnsEmptyForNoUsers(t *testing.T) {
	svc := NewService(&fakeRelational{userIDs: nil}, &fakeClicks{}, nil, 0)

	traces, err := svc.CohortTraceByCity(context.Background(), "Nowhere", 10, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(traces) != 0 {
		t.Fatalf("expected no traces, got %+v", traces)
	}
}

func TestCohortTraceByCityCountsMatchingSequences(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rel := &fakeRelational{userIDs: []int64{1, 2, 3}}
	clicks := &fakeClicks{byUserIDs: []models.ClickstreamEvent{
		{UserID: ptr(1), SessionID: "a", Page: "/home", CreatedAt: base},
		{UserID: ptr(1), SessionID: "a", Page: "/search", CreatedAt: base.Add(time.Minute)},
		{UserID: ptr(2), SessionID: "b", Page: "/home", CreatedAt: base},
		{UserID: ptr(2), SessionID: "b", Page: "/search", CreatedAt: base.Add(time.Minute)},
		{UserID: ptr(3), SessionID: "c", Page: "/pricing", CreatedAt: base},
	}}
	svc := NewService(rel, clicks, nil, 0)

	traces, err := svc.CohortTraceByCity(context.Background(), "Austin", 10, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(traces) != 2 {
		t.Fatalf("expected 2 distinct sequences, got %+v", traces)
	}
	if traces[0].Count != 2 {
		t.Fatalf("expected the /home,/search sequence to have count 2, got %+v", traces[0])
	}
}
