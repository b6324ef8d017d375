// Package search implements the read-only, non-transactional listing
// service of spec.md §4.2: filter parsing plus a thin caching layer over the
// relational catalog so repeat queries for the same itinerary don't hit
// Postgres on every request.
package search

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"
)

// resultTTL bounds how long a search response is trusted before it is
// re-fetched; generalized from the teacher's single flight-result TTL.
const resultTTL = 60 * time.Second

// flightStore, hotelStore, and carStore are the narrow slices of
// *relational.Store the service actually calls, so tests can substitute a
// fake without standing up Postgres.
type flightStore interface {
	SearchFlights(ctx context.Context, f *models.FlightSearchFilter) ([]models.Flight, int, error)
}

type hotelStore interface {
	SearchHotels(ctx context.Context, f *models.HotelSearchFilter) ([]models.Hotel, int, error)
}

type carStore interface {
	SearchCars(ctx context.Context, f *models.CarSearchFilter) ([]models.Car, int, error)
}

// cache is the subset of *redis.Client the service needs. Get returning
// redis.Nil (surfaced by the concrete client as a plain error) is treated as
// a cache miss, never a hard failure.
type cache interface {
	Get(ctx context.Context, key string) (string, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service answers flight/hotel/car searches, caching serialized responses
// behind a digest of the filter so two identical queries within the TTL
// share one Postgres round trip.
type Service struct {
	flights flightStore
	hotels  hotelStore
	cars    carStore
	cache   cache
}

// NewService wires the listing service to its backing store and cache. Pass
// a nil cache to disable caching (used in tests).
func NewService(flights flightStore, hotels hotelStore, cars carStore, c cache) *Service {
	return &Service{flights: flights, hotels: hotels, cars: cars, cache: c}
}

func cacheKey(prefix string, filter any) string {
	b, err := json.Marshal(filter)
	if err != nil {
		return ""
	}
	sum := sha1.Sum(b)
	return fmt.Sprintf("search:%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// SearchFlights implements spec.md §4.2's flight search, caching the
// serialized response by filter digest.
func (s *Service) SearchFlights(ctx context.Context, f *models.FlightSearchFilter) (*models.FlightSearchResponse, error) {
	key := cacheKey("flights", f)
	if resp, ok := s.fromCache(ctx, key, &models.FlightSearchResponse{}); ok {
		return resp.(*models.FlightSearchResponse), nil
	}

	items, total, err := s.flights.SearchFlights(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &models.FlightSearchResponse{Items: items, Total: total}
	s.toCache(ctx, key, resp)
	return resp, nil
}

// SearchHotels implements spec.md §4.2's hotel search.
func (s *Service) SearchHotels(ctx context.Context, f *models.HotelSearchFilter) (*models.HotelSearchResponse, error) {
	key := cacheKey("hotels", f)
	if resp, ok := s.fromCache(ctx, key, &models.HotelSearchResponse{}); ok {
		return resp.(*models.HotelSearchResponse), nil
	}

	items, total, err := s.hotels.SearchHotels(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &models.HotelSearchResponse{Items: items, Total: total}
	s.toCache(ctx, key, resp)
	return resp, nil
}

// SearchCars implements spec.md §4.2's rental-car search.
func (s *Service) SearchCars(ctx context.Context, f *models.CarSearchFilter) (*models.CarSearchResponse, error) {
	key := cacheKey("cars", f)
	if resp, ok := s.fromCache(ctx, key, &models.CarSearchResponse{}); ok {
		return resp.(*models.CarSearchResponse), nil
	}

	items, total, err := s.cars.SearchCars(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := &models.CarSearchResponse{Items: items, Total: total}
	s.toCache(ctx, key, resp)
	return resp, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest any) (any, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("search: dropping corrupt cache entry key=%s: %v", key, err)
		return nil, false
	}
	return dest, true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil || key == "" {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, string(b), resultTTL); err != nil {
		log.Printf("search: failed to populate cache key=%s: %v", key, err)
	}
}
