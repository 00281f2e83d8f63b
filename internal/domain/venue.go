package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// VenueCategory - fixed set of public venue kinds monitored during the event
type VenueCategory string

const (
	VenuePlaza      VenueCategory = "plaza"
	VenuePark       VenueCategory = "parque"
	VenueStadium    VenueCategory = "estadio"
	VenueAuditorium VenueCategory = "auditorio"
)

// VenueStatus - operational status of a venue
type VenueStatus string

const (
	VenueActive      VenueStatus = "active"
	VenueMaintenance VenueStatus = "maintenance"
	VenueClosed      VenueStatus = "closed"
)

// Venue - a physical space with a fixed maximum capacity.
// MaxCapacity is set at creation and never changes afterwards.
type Venue struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Location    string        `json:"location" db:"location"`
	MaxCapacity int           `json:"max_capacity" db:"max_capacity"`
	Category    VenueCategory `json:"category" db:"category"`
	Status      VenueStatus   `json:"status" db:"status"`
	Description string        `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// Occupancy - current headcount of a venue, 1:1 with Venue,
// created at 0 together with the venue
type Occupancy struct {
	VenueID    uuid.UUID `json:"venue_id" db:"venue_id"`
	Current    int       `json:"current" db:"current"`
	Percentage float64   `json:"percentage" db:"percentage"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// AlertKind - kind of a capacity alert
type AlertKind string

const (
	AlertCriticalCapacity AlertKind = "critical-capacity"
	AlertWarningCapacity  AlertKind = "warning-capacity"
	AlertLowOccupancy     AlertKind = "low-occupancy"
)

// Alert - record generated when an occupancy update crosses a threshold.
// Alerts are append-only; the processed flag is the only mutable field.
type Alert struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VenueID    uuid.UUID `json:"venue_id" db:"venue_id"`
	Kind       AlertKind `json:"kind" db:"kind"`
	Percentage float64   `json:"percentage" db:"percentage"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	Processed  bool      `json:"processed" db:"processed"`
}

// OccupancyState - derived classification of the current occupancy percentage
type OccupancyState string

const (
	StateNormal   OccupancyState = "normal"
	StateWarning  OccupancyState = "warning"
	StateCritical OccupancyState = "critical"
	StateLow      OccupancyState = "low"
)

// AlertThresholds - percentage thresholds shared by alert generation
// and state classification
type AlertThresholds struct {
	Critical float64 `json:"critical"`
	Warning  float64 `json:"warning"`
	Low      float64 `json:"low"`
}

// DefaultThresholds returns the thresholds used when config provides none.
func DefaultThresholds() AlertThresholds {
	return AlertThresholds{
		Critical: 90,
		Warning:  75,
		Low:      20,
	}
}

// Classify maps a percentage to a state. Priority order matters: a value
// satisfying both critical and warning must classify as critical.
func (t AlertThresholds) Classify(percentage float64) OccupancyState {
	switch {
	case percentage >= t.Critical:
		return StateCritical
	case percentage >= t.Warning:
		return StateWarning
	case percentage <= t.Low:
		return StateLow
	default:
		return StateNormal
	}
}

// AlertKindFor returns the alert kind for a percentage, or false when the
// value sits in the normal band and no alert should be raised.
func (t AlertThresholds) AlertKindFor(percentage float64) (AlertKind, bool) {
	switch {
	case percentage >= t.Critical:
		return AlertCriticalCapacity, true
	case percentage >= t.Warning:
		return AlertWarningCapacity, true
	case percentage <= t.Low:
		return AlertLowOccupancy, true
	default:
		return "", false
	}
}

// OccupancyPercentage computes current/max*100 rounded to 2 decimals.
func OccupancyPercentage(current, maxCapacity int) float64 {
	if maxCapacity <= 0 {
		return 0
	}
	p := float64(current) / float64(maxCapacity) * 100
	return math.Round(p*100) / 100
}

// VenueDetails - venue together with its occupancy record
type VenueDetails struct {
	Venue     Venue     `json:"venue"`
	Occupancy Occupancy `json:"occupancy"`
}

// VenueReportRow - one venue line in the aggregate occupancy report
type VenueReportRow struct {
	VenueID     uuid.UUID      `json:"venue_id"`
	Name        string         `json:"name"`
	Category    VenueCategory  `json:"category"`
	MaxCapacity int            `json:"max_capacity"`
	Current     int            `json:"current"`
	Percentage  float64        `json:"percentage"`
	State       OccupancyState `json:"state"`
}
