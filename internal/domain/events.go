package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names consumed by the notification worker
const (
	StreamAforoAlerts      = "stream:aforo:alerts"
	StreamPermisosApproved = "stream:permisos:approved"
)

// AlertRaisedEvent - published when an occupancy update crosses a threshold
type AlertRaisedEvent struct {
	AlertID    uuid.UUID `json:"alert_id"`
	VenueID    uuid.UUID `json:"venue_id"`
	Kind       AlertKind `json:"kind"`
	Percentage float64   `json:"percentage"`
	Timestamp  time.Time `json:"timestamp"`
}

// RequestApprovedEvent - published when a permit request is approved
type RequestApprovedEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	VendorID     uuid.UUID `json:"vendor_id"`
	PermitNumber string    `json:"permit_number"`
	Fee          float64   `json:"fee"`
	Timestamp    time.Time `json:"timestamp"`
}

// StreamMessage - message read from a Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
