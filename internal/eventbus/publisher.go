// Package eventbus publishes booking outcomes to the message bus after a
// transaction has already decided them. Every method here swallows and logs
// its own errors: publication must never fail the HTTP response that
// triggered it, since by the time it's called the booking's fate is already
// committed (or rolled back) in the relational store.
package eventbus

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Rajeswari195/kayak/internal/metrics"
	"github.com/Rajeswari195/kayak/internal/models"
)

// maxRetries bounds the out-of-band retry budget for a single event. After
// this many attempts the failure is logged and counted, never raised.
const maxRetries = 3

// producer is the subset of *kafka.Producer the publisher needs, so tests
// can substitute a fake without touching a real broker.
type producer interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// Publisher emits BookingConfirmed/BookingFailed events at-least-once. A
// failed publish is handed to a background retry loop — grounded on the
// teacher's async-goroutine style (originally used for async payment
// processing, repurposed here for publish retry) — so the request path
// never blocks on broker availability.
type Publisher struct {
	producer producer
	metrics  *metrics.Metrics
	retryCh  chan retryJob
}

type retryJob struct {
	key     string
	event   any
	attempt int
}

// NewPublisher wraps a producer for booking-event emission. m may be nil in
// tests.
func NewPublisher(p producer, m *metrics.Metrics) *Publisher {
	pub := &Publisher{producer: p, metrics: m, retryCh: make(chan retryJob, 256)}
	go pub.retryLoop()
	return pub
}

// PublishBookingConfirmed emits a BOOKING_CONFIRMED record. Safe to call
// after commit; never blocks the caller on a publish failure.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, booking models.Booking, items []models.BookingItem, billing models.BillingTransaction, userID int64, origin string) {
	event := models.BookingConfirmedEvent{
		Booking:   booking,
		Items:     items,
		Billing:   billing,
		UserID:    userID,
		Origin:    origin,
		EmittedAt: time.Now(),
	}
	p.publish(ctx, fmt.Sprintf("booking-%d", booking.ID), event)
}

// PublishBookingFailed emits a BOOKING_FAILED record. booking is nil when
// the failure happened before a booking row existed.
func (p *Publisher) PublishBookingFailed(ctx context.Context, booking *models.Booking, userID int64, errorCode, origin string) {
	event := models.BookingFailedEvent{
		Booking:   booking,
		UserID:    userID,
		ErrorCode: errorCode,
		Origin:    origin,
		EmittedAt: time.Now(),
	}
	key := fmt.Sprintf("user-%d", userID)
	if booking != nil {
		key = fmt.Sprintf("booking-%d", booking.ID)
	}
	p.publish(ctx, key, event)
}

func (p *Publisher) publish(ctx context.Context, key string, event any) {
	// Best-effort: a transient broker outage here must never surface to
	// the HTTP caller, whose transaction has already committed.
	if err := p.producer.Publish(ctx, key, event); err != nil {
		log.Printf("eventbus: failed to publish event key=%s: %v", key, err)
		p.enqueueRetry(retryJob{key: key, event: event, attempt: 1})
	}
}

func (p *Publisher) enqueueRetry(job retryJob) {
	select {
	case p.retryCh <- job:
	default:
		log.Printf("eventbus: retry queue full, dropping retry for key=%s", job.key)
		p.metrics.IncEventPublishFailure()
	}
}

// retryLoop is the single background consumer draining the retry queue.
// Each retry backs off linearly by attempt number before trying again.
func (p *Publisher) retryLoop() {
	for job := range p.retryCh {
		time.Sleep(time.Duration(job.attempt) * time.Second)

		if err := p.producer.Publish(context.Background(), job.key, job.event); err != nil {
			p.metrics.IncEventPublishRetry()
			if job.attempt >= maxRetries {
				log.Printf("eventbus: giving up on event key=%s after %d attempts: %v", job.key, job.attempt, err)
				p.metrics.IncEventPublishFailure()
				continue
			}
			p.enqueueRetry(retryJob{key: job.key, event: job.event, attempt: job.attempt + 1})
			continue
		}
	}
}
