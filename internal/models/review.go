package models

import "time"

// ListingType discriminates which catalog a Review/ClickstreamEvent refers
// to.
type ListingType string

const (
	ListingFlight ListingType = "FLIGHT"
	ListingHotel  ListingType = "HOTEL"
	ListingCar    ListingType = "CAR"
)

// Review is a document-store entity: at most one per (userId, listingType,
// listingId).
type Review struct {
	ID          string                 `json:"id" bson:"_id,omitempty"`
	UserID      int64                  `json:"userId" bson:"userId"`
	ListingType ListingType            `json:"listingType" bson:"listingType"`
	ListingID   int64                  `json:"listingId" bson:"listingId"`
	BookingID   *int64                 `json:"bookingId,omitempty" bson:"bookingId,omitempty"`
	Rating      int                    `json:"rating" bson:"rating"`
	Title       string                 `json:"title" bson:"title"`
	Comment     string                 `json:"comment" bson:"comment"`
	StayDate    time.Time              `json:"stayDate" bson:"stayDate"`
	Metadata    map[string]any         `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt" bson:"updatedAt"`
}

// CreateReviewRequest is the wire payload for POST /api/reviews.
type CreateReviewRequest struct {
	ListingType ListingType `json:"listingType"`
	ListingID   int64       `json:"listingId"`
	BookingID   *int64      `json:"bookingId,omitempty"`
	Rating      int         `json:"rating"`
	Title       string      `json:"title"`
	Comment     string      `json:"comment"`
	StayDate    time.Time   `json:"stayDate"`
}

// ReviewDistributionBucket is one star-rating bucket in a distribution
// response.
type ReviewDistributionBucket struct {
	Rating     int     `json:"rating"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ReviewDistribution is the aggregate returned by review.Service.Distribution.
// No HTTP route in the router exposes it.
type ReviewDistribution struct {
	ListingType   ListingType                 `json:"listingType"`
	ListingID     int64                       `json:"listingId"`
	Buckets       []ReviewDistributionBucket  `json:"buckets"`
	TotalReviews  int64                       `json:"totalReviews"`
	AverageRating *float64                    `json:"averageRating"`
}
