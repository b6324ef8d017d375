package models

import "time"

// ClickstreamEventType enumerates the recognized event kinds.
type ClickstreamEventType string

const (
	EventPageView        ClickstreamEventType = "PAGE_VIEW"
	EventClick           ClickstreamEventType = "CLICK"
	EventSearch          ClickstreamEventType = "SEARCH"
	EventBookingStarted   ClickstreamEventType = "BOOKING_STARTED"
	EventBookingCompleted ClickstreamEventType = "BOOKING_COMPLETED"
	EventBookingFailed    ClickstreamEventType = "BOOKING_FAILED"
	EventScroll          ClickstreamEventType = "SCROLL"
	EventCustom          ClickstreamEventType = "CUSTOM"
)

var validClickstreamEventTypes = map[ClickstreamEventType]bool{
	EventPageView: true, EventClick: true, EventSearch: true,
	EventBookingStarted: true, EventBookingCompleted: true, EventBookingFailed: true,
	EventScroll: true, EventCustom: true,
}

// IsValidEventType reports whether et is one of the recognized enum values.
func IsValidEventType(et ClickstreamEventType) bool {
	return validClickstreamEventTypes[et]
}

// ClickstreamEvent is a document-store entity recording a single
// user-interaction.
type ClickstreamEvent struct {
	ID          string                 `json:"id" bson:"_id,omitempty"`
	UserID      *int64                 `json:"userId,omitempty" bson:"userId,omitempty"`
	SessionID   string                 `json:"sessionId" bson:"sessionId"`
	EventType   ClickstreamEventType   `json:"eventType" bson:"eventType"`
	Page        string                 `json:"page" bson:"page"`
	Referrer    string                 `json:"referrer,omitempty" bson:"referrer,omitempty"`
	ElementID   string                 `json:"elementId,omitempty" bson:"elementId,omitempty"`
	ElementLabel string                `json:"elementLabel,omitempty" bson:"elementLabel,omitempty"`
	ListingType *ListingType           `json:"listingType,omitempty" bson:"listingType,omitempty"`
	ListingID   *int64                 `json:"listingId,omitempty" bson:"listingId,omitempty"`
	IP          string                 `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent   string                 `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Metadata    map[string]any         `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" bson:"createdAt"`
}

// TrackEventRequest is the wire payload for POST /api/analytics/track.
type TrackEventRequest struct {
	SessionID    string               `json:"sessionId"`
	EventType    ClickstreamEventType `json:"eventType"`
	Page         string               `json:"page"`
	Referrer     string               `json:"referrer,omitempty"`
	ElementID    string               `json:"elementId,omitempty"`
	ElementLabel string               `json:"elementLabel,omitempty"`
	ListingType  *ListingType         `json:"listingType,omitempty"`
	ListingID    *int64               `json:"listingId,omitempty"`
	Metadata     map[string]any       `json:"metadata,omitempty"`
}

// TrackBatchRequest is the wire payload for POST /api/analytics/track/batch.
type TrackBatchRequest struct {
	Events []TrackEventRequest `json:"events"`
}

// SessionEventsResponse is returned by clickstream.Service.SessionEvents.
type SessionEventsResponse struct {
	Events []ClickstreamEvent `json:"events"`
	Stats  SessionStats       `json:"stats"`
}

// SessionStats aggregates a single session's events.
type SessionStats struct {
	TotalEvents int       `json:"totalEvents"`
	FirstSeen   time.Time `json:"firstSeen"`
	LastSeen    time.Time `json:"lastSeen"`
}

// AdminAuditLog records an admin mutation. Written by the core only for
// user deactivation; otherwise populated by out-of-scope workers.
type AdminAuditLog struct {
	ID       string         `json:"id" bson:"_id,omitempty"`
	ActorID  int64          `json:"actorId" bson:"actorId"`
	Action   string         `json:"action" bson:"action"`
	TargetID string         `json:"targetId" bson:"targetId"`
	Details  map[string]any `json:"details,omitempty" bson:"details,omitempty"`
	At       time.Time      `json:"at" bson:"at"`
}

// DealSnapshot is a document-store collection written by out-of-scope
// workers; the core defines the shape but owns no write path for it.
type DealSnapshot struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ListingType ListingType `json:"listingType" bson:"listingType"`
	ListingID   int64     `json:"listingId" bson:"listingId"`
	Price       float64   `json:"price" bson:"price"`
	Currency    string    `json:"currency" bson:"currency"`
	CapturedAt  time.Time `json:"capturedAt" bson:"capturedAt"`
}
