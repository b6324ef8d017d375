package review

import (
	"context"
	"testing"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/models"
)

type fakeStore struct {
	created *models.Review
}

func (f *fakeStore) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	f.created = r
	return r, nil
}

func (f *fakeStore) List(ctx context.Context, q document.ReviewQuery) ([]models.Review, error) {
	return nil, nil
}

func (f *fakeStore) Distribution(ctx context.Context, listingType models.ListingType, listingID int64) (*models.ReviewDistribution, error) {
	return &models.ReviewDistribution{ListingType: listingType, ListingID: listingID}, nil
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	svc := NewService(&fakeStore{})
	_, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{
		ListingType: models.ListingHotel, ListingID: 5, Rating: 6, StayDate: time.Now(),
	})
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeInvalidRating {
		t.Fatalf("expected invalid_rating, got %v", err)
	}
}

func TestCreateRejectsUnknownListingType(t *testing.T) {
	svc := NewService(&fakeStore{})
	_, err := svc.Create(context.Background(), 1, &models.CreateReviewRequest{
		ListingType: "BOAT", ListingID: 5, Rating: 4, StayDate: time.Now(),
	})
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeInvalidListingType {
		t.Fatalf("expected invalid_listing_type, got %v", err)
	}
}

func TestCreateSucceedsWithValidInput(t *testing.T) {
	fs := &fakeStore{}
	svc := NewService(fs)
	userID := int64(42)
	review, err := svc.Create(context.Background(), userID, &models.CreateReviewRequest{
		ListingType: models.ListingHotel, ListingID: 5, Rating: 4, StayDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.UserID != userID || fs.created.UserID != userID {
		t.Fatalf("expected review to carry userID %d, got %d", userID, review.UserID)
	}
}
