package document

import (
	"context"
	"fmt"
	"time"

	"github.com/Rajeswari195/kayak/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ClickstreamStore is the clickstream_events collection gateway.
type ClickstreamStore struct {
	collection *mongo.Collection
}

// NewClickstreamStore builds a ClickstreamStore over the shared document
// database.
func NewClickstreamStore(db *mongo.Database) *ClickstreamStore {
	return &ClickstreamStore{collection: db.Collection("clickstream_events")}
}

// Insert writes a single event. Ingestion is fire-and-forget from the
// caller's perspective; this call itself is synchronous.
func (s *ClickstreamStore) Insert(ctx context.Context, e *models.ClickstreamEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.collection.InsertOne(ctx, e)
	if err != nil {
		return fmt.Errorf("failed to insert clickstream event: %w", err)
	}
	return nil
}

// InsertBatch ingests events one at a time so a single bad document doesn't
// fail the whole batch; failures are returned for the caller to log, not
// surfaced to the original HTTP caller (§4.8 partial success).
func (s *ClickstreamStore) InsertBatch(ctx context.Context, events []models.ClickstreamEvent) (accepted int, failures []error) {
	for i := range events {
		if err := s.Insert(ctx, &events[i]); err != nil {
			failures = append(failures, err)
			continue
		}
		accepted++
	}
	return accepted, failures
}

// BySession returns a session's events in chronological order.
func (s *ClickstreamStore) BySession(ctx context.Context, sessionID string) ([]models.ClickstreamEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list session events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.ClickstreamEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode session events: %w", err)
	}
	return events, nil
}

// ByUser returns a user's events in chronological order, capped at limit.
func (s *ClickstreamStore) ByUser(ctx context.Context, userID int64, limit int64) ([]models.ClickstreamEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list user events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.ClickstreamEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode user events: %w", err)
	}
	return events, nil
}

// ByUserIDs returns events for any of the given users, chronological, capped
// at limit. Used by cohort analytics to fetch an entire city's worth of
// sessions in one round trip instead of one query per user.
func (s *ClickstreamStore) ByUserIDs(ctx context.Context, userIDs []int64, limit int64) ([]models.ClickstreamEvent, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := s.collection.Find(ctx, bson.M{"userId": bson.M{"$in": userIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohort events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.ClickstreamEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode cohort events: %w", err)
	}
	return events, nil
}

// PageEventCount is one row of the PageClickStats aggregation.
type PageEventCount struct {
	Page      string
	EventType models.ClickstreamEventType
	Count     int64
}

// PageClickStats groups events by (page, eventType) over the trailing
// sinceDays window, ordered by count descending.
func (s *ClickstreamStore) PageClickStats(ctx context.Context, sinceDays int, limit int64) ([]PageEventCount, error) {
	since := time.Now().AddDate(0, 0, -sinceDays)
	pipeline := bson.A{
		bson.M{"$match": bson.M{"createdAt": bson.M{"$gte": since}}},
		bson.M{"$group": bson.M{
			"_id":   bson.M{"page": "$page", "eventType": "$eventType"},
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"count": -1}},
		bson.M{"$limit": limit},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate page click stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []PageEventCount
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				Page      string                      `bson:"page"`
				EventType models.ClickstreamEventType `bson:"eventType"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode page click stats row: %w", err)
		}
		results = append(results, PageEventCount{Page: row.ID.Page, EventType: row.ID.EventType, Count: row.Count})
	}
	return results, nil
}

// ListingEventCount is one row of the ListingClickStats aggregation.
type ListingEventCount struct {
	ListingType models.ListingType
	ListingID   int64
	Count       int64
}

// ListingClickStats groups events by (listingType, listingId), requiring
// both to be non-null, over the trailing sinceDays window.
func (s *ClickstreamStore) ListingClickStats(ctx context.Context, sinceDays int, limit int64) ([]ListingEventCount, error) {
	since := time.Now().AddDate(0, 0, -sinceDays)
	pipeline := bson.A{
		bson.M{"$match": bson.M{
			"createdAt":   bson.M{"$gte": since},
			"listingType": bson.M{"$ne": nil},
			"listingId":   bson.M{"$ne": nil},
		}},
		bson.M{"$group": bson.M{
			"_id":   bson.M{"listingType": "$listingType", "listingId": "$listingId"},
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"count": -1}},
		bson.M{"$limit": limit},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate listing click stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []ListingEventCount
	for cursor.Next(ctx) {
		var row struct {
			ID struct {
				ListingType models.ListingType `bson:"listingType"`
				ListingID   int64              `bson:"listingId"`
			} `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode listing click stats row: %w", err)
		}
		results = append(results, ListingEventCount{ListingType: row.ID.ListingType, ListingID: row.ID.ListingID, Count: row.Count})
	}
	return results, nil
}
