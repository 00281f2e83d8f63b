package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/carnaval-microservice/internal/domain"
)

// VenueRepository abstracts storage for venues, their occupancy and alerts.
// The default implementation is in-memory; durable backends implement the
// same contract.
type VenueRepository interface {
	// CreateVenue stores a venue and initializes its occupancy record at 0
	CreateVenue(ctx context.Context, venue *domain.Venue) error

	// GetVenue returns a venue by id
	GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error)

	// GetAllVenues returns every stored venue
	GetAllVenues(ctx context.Context) ([]*domain.Venue, error)

	// UpdateVenue persists mutable venue fields (status, description, name, location)
	UpdateVenue(ctx context.Context, venue *domain.Venue) error

	// DeleteVenue removes a venue together with its occupancy record
	DeleteVenue(ctx context.Context, id uuid.UUID) error

	// GetOccupancy returns the occupancy record of a venue
	GetOccupancy(ctx context.Context, venueID uuid.UUID) (*domain.Occupancy, error)

	// UpdateOccupancy overwrites the occupancy record of a venue
	UpdateOccupancy(ctx context.Context, occupancy *domain.Occupancy) error

	// CreateAlert appends an alert row
	CreateAlert(ctx context.Context, alert *domain.Alert) error

	// GetActiveAlerts returns the unprocessed alerts of a venue
	GetActiveAlerts(ctx context.Context, venueID uuid.UUID) ([]*domain.Alert, error)

	// MarkAlertProcessed flips the processed flag of an alert
	MarkAlertProcessed(ctx context.Context, alertID uuid.UUID) error
}
