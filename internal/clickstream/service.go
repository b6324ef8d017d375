// Package clickstream implements spec.md §4.8's event-ingestion contract:
// fire-and-forget tracking calls that never block the HTTP response on the
// document store, plus the session-replay read path.
package clickstream

import (
	"context"
	"log"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

// maxBatchSize bounds a single POST /api/analytics/track/batch request.
const maxBatchSize = 100

// store is the subset of *document.ClickstreamStore the service calls.
type store interface {
	Insert(ctx context.Context, e *models.ClickstreamEvent) error
	InsertBatch(ctx context.Context, events []models.ClickstreamEvent) (accepted int, failures []error)
	BySession(ctx context.Context, sessionID string) ([]models.ClickstreamEvent, error)
}

// Service ingests and replays clickstream events.
type Service struct {
	store store
}

// NewService wires the clickstream service to its document-store gateway.
func NewService(s store) *Service {
	return &Service{store: s}
}

func toEvent(req models.TrackEventRequest, userID *int64, ip, userAgent string) (*models.ClickstreamEvent, error) {
	if !models.IsValidEventType(req.EventType) {
		return nil, apperr.BadRequest(apperr.CodeInvalidEventType, "eventType is not recognized")
	}
	if req.Page == "" {
		return nil, apperr.BadRequest(apperr.CodeMissingField, "page is required").WithDetails(map[string]any{"field": "page"})
	}
	return &models.ClickstreamEvent{
		UserID:       userID,
		SessionID:    req.SessionID,
		EventType:    req.EventType,
		Page:         req.Page,
		Referrer:     req.Referrer,
		ElementID:    req.ElementID,
		ElementLabel: req.ElementLabel,
		ListingType:  req.ListingType,
		ListingID:    req.ListingID,
		IP:           ip,
		UserAgent:    userAgent,
		Metadata:     req.Metadata,
		CreatedAt:    time.Now(),
	}, nil
}

// Track validates req and inserts it in the background: the caller gets an
// immediate accept, and a slow or unavailable document store never delays
// the response.
func (s *Service) Track(ctx context.Context, userID *int64, ip, userAgent string, req models.TrackEventRequest) error {
	event, err := toEvent(req, userID, ip, userAgent)
	if err != nil {
		return err
	}

	go func() {
		if err := s.store.Insert(context.Background(), event); err != nil {
			log.Printf("clickstream: failed to persist event page=%s type=%s: %v", event.Page, event.EventType, err)
		}
	}()
	return nil
}

// TrackBatch validates and inserts up to maxBatchSize events in the
// background, per spec.md §4.8.
func (s *Service) TrackBatch(ctx context.Context, userID *int64, ip, userAgent string, req models.TrackBatchRequest) error {
	if len(req.Events) > maxBatchSize {
		return apperr.BadRequest(apperr.CodeBatchTooLarge, "a batch may contain at most 100 events")
	}

	events := make([]models.ClickstreamEvent, 0, len(req.Events))
	for _, e := range req.Events {
		event, err := toEvent(e, userID, ip, userAgent)
		if err != nil {
			return err
		}
		events = append(events, *event)
	}

	go func() {
		accepted, failures := s.store.InsertBatch(context.Background(), events)
		if len(failures) > 0 {
			log.Printf("clickstream: batch insert accepted %d/%d events, %d failures", accepted, len(events), len(failures))
		}
	}()
	return nil
}

// SessionEvents returns one session's ordered events plus an aggregated
// SessionStats summary. No HTTP route in the router exposes it.
func (s *Service) SessionEvents(ctx context.Context, sessionID string) (*models.SessionEventsResponse, error) {
	events, err := s.store.BySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	stats := models.SessionStats{TotalEvents: len(events)}
	if len(events) > 0 {
		stats.FirstSeen = events[0].CreatedAt
		stats.LastSeen = events[len(events)-1].CreatedAt
	}
	return &models.SessionEventsResponse{Events: events, Stats: stats}, nil
}
