// Package review implements spec.md §4.x's review workflow: one review per
// (user, listing), rating validated to a 1-5 star scale, plus the
// distribution aggregate used by listing detail pages.
package review

import (
	"context"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/models"
)

// store is the subset of *document.ReviewStore the service calls.
type store interface {
	Create(ctx context.Context, r *models.Review) (*models.Review, error)
	List(ctx context.Context, q document.ReviewQuery) ([]models.Review, error)
	Distribution(ctx context.Context, listingType models.ListingType, listingID int64) (*models.ReviewDistribution, error)
}

// Service validates and persists reviews.
type Service struct {
	store store
}

// NewService wires the review service to its document-store gateway.
func NewService(s store) *Service {
	return &Service{store: s}
}

// Create validates and inserts a review on behalf of userID.
func (s *Service) Create(ctx context.Context, userID int64, req *models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.BadRequest(apperr.CodeInvalidRating, "rating must be between 1 and 5")
	}
	switch req.ListingType {
	case models.ListingFlight, models.ListingHotel, models.ListingCar:
	default:
		return nil, apperr.BadRequest(apperr.CodeInvalidListingType, "listingType must be FLIGHT, HOTEL, or CAR")
	}
	if req.ListingID <= 0 {
		return nil, apperr.BadRequest(apperr.CodeInvalidListingID, "listingId must be positive")
	}

	review := &models.Review{
		UserID:      userID,
		ListingType: req.ListingType,
		ListingID:   req.ListingID,
		BookingID:   req.BookingID,
		Rating:      req.Rating,
		Title:       req.Title,
		Comment:     req.Comment,
		StayDate:    req.StayDate,
	}
	return s.store.Create(ctx, review)
}

// List answers GetReviews, optionally scoped to a listing or to "my"
// reviews via userID.
func (s *Service) List(ctx context.Context, q document.ReviewQuery) ([]models.Review, error) {
	return s.store.List(ctx, q)
}

// Distribution answers the star-rating breakdown for one listing.
func (s *Service) Distribution(ctx context.Context, listingType models.ListingType, listingID int64) (*models.ReviewDistribution, error) {
	return s.store.Distribution(ctx, listingType, listingID)
}
