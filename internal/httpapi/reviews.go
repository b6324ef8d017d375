package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/document"
	"github.com/Rajeswari195/kayak/internal/models"
)

// createReview handles POST /api/reviews.
func (h *handler) createReview(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	p := auth.FromContext(r.Context())

	review, err := h.deps.Reviews.Create(r.Context(), p.UserID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCreated(w, review)
}

// listReviews handles GET /api/reviews. my=true (requires auth) scopes to
// the caller's own reviews; listingType+listingId scope to one listing.
func (h *handler) listReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var query document.ReviewQuery

	if q.Get("my") == "true" {
		p := auth.FromContext(r.Context())
		if p == nil {
			writeError(w, authRequired)
			return
		}
		query.UserID = &p.UserID
	}

	if lt := q.Get("listingType"); lt != "" {
		listingType := models.ListingType(lt)
		query.ListingType = &listingType
	}
	if id := q.Get("listingId"); id != "" {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil {
			query.ListingID = &n
		}
	}

	reviews, err := h.deps.Reviews.List(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, reviews)
}
