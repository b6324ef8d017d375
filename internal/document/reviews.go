// Package document is the typed gateway onto the document store:
// reviews, clickstream events, and admin audit logs. Deal snapshots have
// no gateway in this package.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewStore is the reviews collection gateway.
type ReviewStore struct {
	collection *mongo.Collection
}

// NewReviewStore builds a ReviewStore over the shared document database.
func NewReviewStore(db *mongo.Database) *ReviewStore {
	return &ReviewStore{collection: db.Collection("reviews")}
}

// Create inserts a review, translating the unique-index violation on
// (userId, listingType, listingId) into duplicate_review.
func (s *ReviewStore) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now

	result, err := s.collection.InsertOne(ctx, r)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict(apperr.CodeDuplicateReview, "a review for this listing already exists")
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(interface{ Hex() string }); ok {
		r.ID = oid.Hex()
	}
	return r, nil
}

// ReviewQuery filters GetReviews.
type ReviewQuery struct {
	ListingType *models.ListingType
	ListingID   *int64
	UserID      *int64
	Limit       int64
	Offset      int64
}

// List returns reviews matching the query, newest first.
func (s *ReviewStore) List(ctx context.Context, q ReviewQuery) ([]models.Review, error) {
	filter := bson.M{}
	if q.ListingType != nil {
		filter["listingType"] = *q.ListingType
	}
	if q.ListingID != nil {
		filter["listingId"] = *q.ListingID
	}
	if q.UserID != nil {
		filter["userId"] = *q.UserID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.Offset > 0 {
		opts.SetSkip(q.Offset)
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// Distribution aggregates the rating buckets for one listing.
func (s *ReviewStore) Distribution(ctx context.Context, listingType models.ListingType, listingID int64) (*models.ReviewDistribution, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"listingType": listingType, "listingId": listingID}},
		bson.M{"$group": bson.M{"_id": "$rating", "count": bson.M{"$sum": 1}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate review distribution: %w", err)
	}
	defer cursor.Close(ctx)

	counts := make(map[int]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    int   `bson:"_id"`
			Count int64 `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode review distribution row: %w", err)
		}
		counts[row.ID] = row.Count
	}

	var total int64
	var ratingSum int64
	buckets := make([]models.ReviewDistributionBucket, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		count := counts[rating]
		total += count
		ratingSum += int64(rating) * count
		buckets = append(buckets, models.ReviewDistributionBucket{Rating: rating, Count: count})
	}

	for i := range buckets {
		if total > 0 {
			buckets[i].Percentage = float64(buckets[i].Count) / float64(total) * 100
		}
	}

	dist := &models.ReviewDistribution{
		ListingType:  listingType,
		ListingID:    listingID,
		Buckets:      buckets,
		TotalReviews: total,
	}
	if total > 0 {
		avg := float64(ratingSum) / float64(total)
		dist.AverageRating = &avg
	}
	return dist, nil
}
