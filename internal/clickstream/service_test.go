package clickstream

import (
	"context"
	"testing"
	"time"

	"github.com/Rajeswari195/kayak/internal/apperr"
	"github.com/Rajeswari195/kayak/internal/models"
)

type fakeStore struct {
	inserted chan models.ClickstreamEvent
	batches  chan []models.ClickstreamEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{inserted: make(chan models.ClickstreamEvent, 8), batches: make(chan []models.ClickstreamEvent, 8)}
}

func (f *fakeStore) Insert(ctx context.Context, e *models.ClickstreamEvent) error {
	f.inserted <- *e
	return nil
}

func (f *fakeStore) InsertBatch(ctx context.Context, events []models.ClickstreamEvent) (int, []error) {
	f.batches <- events
	return len(events), nil
}

func (f *fakeStore) BySession(ctx context.Context, sessionID string) ([]models.ClickstreamEvent, error) {
	now := time.Now()
	return []models.ClickstreamEvent{
		{SessionID: sessionID, Page: "/home", CreatedAt: now},
		{SessionID: sessionID, Page: "/search", CreatedAt: now.Add(time.Minute)},
	}, nil
}

func TestTrackRejectsUnknownEventType(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.Track(context.Background(), nil, "1.2.3.4", "ua", models.TrackEventRequest{
		EventType: "NOT_REAL", Page: "/home", SessionID: "s1",
	})
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeInvalidEventType {
		t.Fatalf("expected invalid_event_type, got %v", err)
	}
}

func TestTrackRejectsMissingPage(t *testing.T) {
	svc := NewService(newFakeStore())
	err := svc.Track(context.Background(), nil, "1.2.3.4", "ua", models.TrackEventRequest{
		EventType: models.EventPageView, SessionID: "s1",
	})
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeMissingField {
		t.Fatalf("expected missing_field, got %v", err)
	}
}

func TestTrackInsertsInBackground(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	err := svc.Track(context.Background(), nil, "1.2.3.4", "ua", models.TrackEventRequest{
		EventType: models.EventPageView, Page: "/home", SessionID: "s1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case e := <-fs.inserted:
		if e.Page != "/home" {
			t.Fatalf("expected page /home, got %s", e.Page)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for background insert")
	}
}

func TestTrackBatchRejectsOversizedBatch(t *testing.T) {
	svc := NewService(newFakeStore())
	events := make([]models.TrackEventRequest, 101)
	for i := range events {
		events[i] = models.TrackEventRequest{EventType: models.EventPageView, Page: "/home"}
	}
	err := svc.TrackBatch(context.Background(), nil, "1.2.3.4", "ua", models.TrackBatchRequest{Events: events})
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Code != apperr.CodeBatchTooLarge {
		t.Fatalf("expected batch_too_large, got %v", err)
	}
}

func TestSessionEventsAggregatesStats(t *testing.T) {
	svc := NewService(newFakeStore())
	resp, err := svc.SessionEvents(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Stats.TotalEvents != 2 {
		t.Fatalf("expected 2 total events, got %d", resp.Stats.TotalEvents)
	}
	if !resp.Stats.LastSeen.After(resp.Stats.FirstSeen) {
		t.Fatal("expected lastSeen after firstSeen")
	}
}
