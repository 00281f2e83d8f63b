package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	"github.com/carnaval-microservice/internal/pkg/errors"
)

// venueRepository - map-backed implementation of VenueRepository.
// A single RWMutex covers all three maps so that venue+occupancy
// creation stays atomic.
type venueRepository struct {
	mu          sync.RWMutex
	venues      map[uuid.UUID]*domain.Venue
	occupancies map[uuid.UUID]*domain.Occupancy
	alerts      map[uuid.UUID]*domain.Alert
	logger      *zap.Logger
}

// NewVenueRepository creates the in-memory VenueRepository
func NewVenueRepository(logger *zap.Logger) repository.VenueRepository {
	return &venueRepository{
		venues:      make(map[uuid.UUID]*domain.Venue),
		occupancies: make(map[uuid.UUID]*domain.Occupancy),
		alerts:      make(map[uuid.UUID]*domain.Alert),
		logger:      logger,
	}
}

func (r *venueRepository) CreateVenue(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *venue
	r.venues[venue.ID] = &stored
	r.occupancies[venue.ID] = &domain.Occupancy{
		VenueID:    venue.ID,
		Current:    0,
		Percentage: 0,
		UpdatedAt:  time.Now(),
	}

	r.logger.Debug("Venue stored", zap.String("venue_id", venue.ID.String()))
	return nil
}

func (r *venueRepository) GetVenue(_ context.Context, id uuid.UUID) (*domain.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	venue, ok := r.venues[id]
	if !ok {
		return nil, errors.ErrVenueNotFound
	}

	copied := *venue
	return &copied, nil
}

func (r *venueRepository) GetAllVenues(_ context.Context) ([]*domain.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	venues := make([]*domain.Venue, 0, len(r.venues))
	for _, venue := range r.venues {
		copied := *venue
		venues = append(venues, &copied)
	}
	return venues, nil
}

func (r *venueRepository) UpdateVenue(_ context.Context, venue *domain.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.venues[venue.ID]; !ok {
		return errors.ErrVenueNotFound
	}

	stored := *venue
	stored.UpdatedAt = time.Now()
	r.venues[venue.ID] = &stored
	return nil
}

func (r *venueRepository) DeleteVenue(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.venues[id]; !ok {
		return errors.ErrVenueNotFound
	}

	delete(r.venues, id)
	delete(r.occupancies, id)
	return nil
}

func (r *venueRepository) GetOccupancy(_ context.Context, venueID uuid.UUID) (*domain.Occupancy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	occupancy, ok := r.occupancies[venueID]
	if !ok {
		return nil, errors.ErrOccupancyNotFound
	}

	copied := *occupancy
	return &copied, nil
}

func (r *venueRepository) UpdateOccupancy(_ context.Context, occupancy *domain.Occupancy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.occupancies[occupancy.VenueID]; !ok {
		return errors.ErrOccupancyNotFound
	}

	stored := *occupancy
	r.occupancies[occupancy.VenueID] = &stored
	return nil
}

func (r *venueRepository) CreateAlert(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *alert
	r.alerts[alert.ID] = &stored

	r.logger.Debug("Alert stored",
		zap.String("alert_id", alert.ID.String()),
		zap.String("venue_id", alert.VenueID.String()),
		zap.String("kind", string(alert.Kind)))
	return nil
}

func (r *venueRepository) GetActiveAlerts(_ context.Context, venueID uuid.UUID) ([]*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alerts := make([]*domain.Alert, 0)
	for _, alert := range r.alerts {
		if alert.VenueID == venueID && !alert.Processed {
			copied := *alert
			alerts = append(alerts, &copied)
		}
	}
	return alerts, nil
}

func (r *venueRepository) MarkAlertProcessed(_ context.Context, alertID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[alertID]
	if !ok {
		return errors.ErrAlertNotFound
	}

	alert.Processed = true
	return nil
}
