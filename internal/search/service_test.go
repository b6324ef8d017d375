package search

import (
	"context"
	"testing"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"
)

type fakeFlightStore struct {
	calls int
	items []models.Flight
	total int
}

func (f *fakeFlightStore) SearchFlights(ctx context.Context, filter *models.FlightSearchFilter) ([]models.Flight, int, error) {
	f.calls++
	return f.items, f.total, nil
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string]string{}} }

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.store[key]
	if !ok {
		return "", nil
	}
	return v, nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.store[key] = value.(string)
	return nil
}

func TestSearchFlightsCachesSecondCall(t *testing.T) {
	fs := &fakeFlightStore{items: []models.Flight{{ID: 1}}, total: 1}
	c := newFakeCache()
	svc := NewService(fs, nil, nil, c)

	filter := &models.FlightSearchFilter{OriginIata: "JFK", DestinationIata: "LAX", Passengers: 1}

	resp1, err := svc.SearchFlights(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp2, err := svc.SearchFlights(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fs.calls != 1 {
		t.Fatalf("expected store to be hit once, got %d calls", fs.calls)
	}
	if resp1.Total != resp2.Total || len(resp1.Items) != len(resp2.Items) {
		t.Fatalf("expected cached response to match original")
	}
}

func TestSearchFlightsWithoutCacheHitsStoreEveryTime(t *testing.T) {
	fs := &fakeFlightStore{items: []models.Flight{{ID: 1}}, total: 1}
	svc := NewService(fs, nil, nil, nil)

	filter := &models.FlightSearchFilter{OriginIata: "JFK", DestinationIata: "LAX", Passengers: 1}
	svc.SearchFlights(context.Background(), filter)
	svc.SearchFlights(context.Background(), filter)

	if fs.calls != 2 {
		t.Fatalf("expected store hit on every call without a cache, got %d", fs.calls)
	}
}
