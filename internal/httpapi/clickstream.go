package httpapi

import (
	"net"
	"net/http"

	"github.com/Rajeswari195/kayak/internal/auth"
	"github.com/Rajeswari195/kayak/internal/models"
)

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func principalUserID(r *http.Request) *int64 {
	p := auth.FromContext(r.Context())
	if p == nil {
		return nil
	}
	return &p.UserID
}

// track handles POST /api/analytics/track, optionally authenticated.
func (h *handler) track(w http.ResponseWriter, r *http.Request) {
	var req models.TrackEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.deps.Clicks.Track(r.Context(), principalUserID(r), clientIP(r), r.UserAgent(), req); err != nil {
		writeError(w, err)
		return
	}
	writeAccepted(w)
}

// trackBatch handles POST /api/analytics/track/batch, optionally
// authenticated, rejecting batches over 100 events.
func (h *handler) trackBatch(w http.ResponseWriter, r *http.Request) {
	var req models.TrackBatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.deps.Clicks.TrackBatch(r.Context(), principalUserID(r), clientIP(r), r.UserAgent(), req); err != nil {
		writeError(w, err)
		return
	}
	writeAccepted(w)
}
