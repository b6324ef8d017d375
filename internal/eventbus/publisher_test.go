package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/Rajeswari195/kayak/internal/models"
)

type fakeProducer struct {
	published []string
	failNext  bool
}

func (f *fakeProducer) Publish(ctx context.Context, key string, event any) error {
	if f.failNext {
		return errors.New("broker unavailable")
	}
	f.published = append(f.published, key)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

func TestPublishBookingConfirmedUsesBookingKey(t *testing.T) {
	fp := &fakeProducer{}
	p := NewPublisher(fp, nil)

	p.PublishBookingConfirmed(context.Background(), models.Booking{ID: 42}, nil, models.BillingTransaction{}, 1, "booking-engine")

	if len(fp.published) != 1 || fp.published[0] != "booking-42" {
		t.Fatalf("expected one publish keyed booking-42, got %v", fp.published)
	}
}

func TestPublishBookingFailedFallsBackToUserKeyWithoutBooking(t *testing.T) {
	fp := &fakeProducer{}
	p := NewPublisher(fp, nil)

	p.PublishBookingFailed(context.Background(), nil, 7, "no_inventory", "booking-engine")

	if len(fp.published) != 1 || fp.published[0] != "user-7" {
		t.Fatalf("expected one publish keyed user-7, got %v", fp.published)
	}
}

func TestPublishSwallowsProducerErrors(t *testing.T) {
	fp := &fakeProducer{failNext: true}
	p := NewPublisher(fp, nil)

	// Must not panic or otherwise surface the error to the caller.
	p.PublishBookingConfirmed(context.Background(), models.Booking{ID: 1}, nil, models.BillingTransaction{}, 1, "booking-engine")
}
