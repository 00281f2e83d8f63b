package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	"github.com/carnaval-microservice/internal/pkg/errors"
	"github.com/carnaval-microservice/internal/usecase/dto"
)

// AlertCallback - subscriber for raised alerts, invoked synchronously
type AlertCallback func(event domain.AlertRaisedEvent)

// VenueUseCase - business logic for venue capacity monitoring and alerting
type VenueUseCase struct {
	venueRepo  repository.VenueRepository
	streamRepo repository.StreamRepository
	logger     *zap.Logger

	venueLocks *keyedMutex

	thresholdsMu sync.RWMutex
	thresholds   domain.AlertThresholds

	subscribersMu sync.RWMutex
	subscribers   []AlertCallback
}

// NewVenueUseCase creates a new VenueUseCase. streamRepo may be nil, in
// which case events are delivered to in-process subscribers only.
func NewVenueUseCase(
	venueRepo repository.VenueRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	thresholds domain.AlertThresholds,
) *VenueUseCase {
	return &VenueUseCase{
		venueRepo:  venueRepo,
		streamRepo: streamRepo,
		logger:     logger,
		venueLocks: newKeyedMutex(),
		thresholds: thresholds,
	}
}

// CreateVenue registers a venue with status active and occupancy 0
func (uc *VenueUseCase) CreateVenue(ctx context.Context, req dto.CreateVenueRequest) (*domain.Venue, error) {
	now := time.Now()
	venue := &domain.Venue{
		ID:          uuid.New(),
		Name:        req.Name,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
		Category:    domain.VenueCategory(req.Category),
		Status:      domain.VenueActive,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.venueRepo.CreateVenue(ctx, venue); err != nil {
		return nil, err
	}

	uc.logger.Info("Venue created",
		zap.String("venue_id", venue.ID.String()),
		zap.String("name", venue.Name),
		zap.Int("max_capacity", venue.MaxCapacity))
	return venue, nil
}

// GetVenues returns every registered venue
func (uc *VenueUseCase) GetVenues(ctx context.Context) ([]*domain.Venue, error) {
	return uc.venueRepo.GetAllVenues(ctx)
}

// GetVenueDetails returns a venue together with its occupancy record
func (uc *VenueUseCase) GetVenueDetails(ctx context.Context, venueID uuid.UUID) (*domain.VenueDetails, error) {
	venue, err := uc.venueRepo.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	occupancy, err := uc.venueRepo.GetOccupancy(ctx, venueID)
	if err != nil {
		return nil, err
	}

	return &domain.VenueDetails{
		Venue:     *venue,
		Occupancy: *occupancy,
	}, nil
}

// UpdateVenue changes mutable venue fields; max capacity is fixed at creation
func (uc *VenueUseCase) UpdateVenue(ctx context.Context, venueID uuid.UUID, req dto.UpdateVenueRequest) (*domain.Venue, error) {
	venue, err := uc.venueRepo.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Location != nil {
		venue.Location = *req.Location
	}
	if req.Status != nil {
		venue.Status = domain.VenueStatus(*req.Status)
	}
	if req.Description != nil {
		venue.Description = *req.Description
	}
	venue.UpdatedAt = time.Now()

	if err := uc.venueRepo.UpdateVenue(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// DeleteVenue removes a venue and its occupancy record
func (uc *VenueUseCase) DeleteVenue(ctx context.Context, venueID uuid.UUID) error {
	unlock := uc.venueLocks.Lock(venueID)
	defer unlock()

	if err := uc.venueRepo.DeleteVenue(ctx, venueID); err != nil {
		return err
	}

	uc.logger.Info("Venue deleted", zap.String("venue_id", venueID.String()))
	return nil
}

// UpdateOccupancy sets the absolute headcount of a venue and evaluates
// alert thresholds afterwards
func (uc *VenueUseCase) UpdateOccupancy(ctx context.Context, venueID uuid.UUID, newCount int) (*domain.Occupancy, error) {
	unlock := uc.venueLocks.Lock(venueID)
	defer unlock()

	return uc.applyOccupancy(ctx, venueID, newCount)
}

// RegisterEntry increments occupancy by count (people entering).
// The sum is checked against capacity before the update path re-checks it.
func (uc *VenueUseCase) RegisterEntry(ctx context.Context, venueID uuid.UUID, count int) (*domain.Occupancy, error) {
	if count <= 0 {
		count = 1
	}

	unlock := uc.venueLocks.Lock(venueID)
	defer unlock()

	venue, err := uc.venueRepo.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	occupancy, err := uc.venueRepo.GetOccupancy(ctx, venueID)
	if err != nil {
		return nil, err
	}

	newCount := occupancy.Current + count
	if newCount > venue.MaxCapacity {
		return nil, errors.ErrCapacityExceeded.WithDetails(map[string]interface{}{
			"requested":    newCount,
			"max_capacity": venue.MaxCapacity,
		})
	}

	return uc.applyOccupancy(ctx, venueID, newCount)
}

// RegisterExit decrements occupancy by count (people leaving), clamped at 0
func (uc *VenueUseCase) RegisterExit(ctx context.Context, venueID uuid.UUID, count int) (*domain.Occupancy, error) {
	if count <= 0 {
		count = 1
	}

	unlock := uc.venueLocks.Lock(venueID)
	defer unlock()

	occupancy, err := uc.venueRepo.GetOccupancy(ctx, venueID)
	if err != nil {
		return nil, err
	}

	newCount := occupancy.Current - count
	if newCount < 0 {
		newCount = 0
	}

	return uc.applyOccupancy(ctx, venueID, newCount)
}

// GetOccupancyState classifies the current percentage against the
// thresholds. This is a pure re-derivation, independent of stored alerts.
func (uc *VenueUseCase) GetOccupancyState(ctx context.Context, venueID uuid.UUID) (*dto.OccupancyStateResponse, error) {
	details, err := uc.GetVenueDetails(ctx, venueID)
	if err != nil {
		return nil, err
	}

	return &dto.OccupancyStateResponse{
		Venue:     details.Venue,
		Occupancy: details.Occupancy,
		State:     uc.GetThresholds().Classify(details.Occupancy.Percentage),
	}, nil
}

// GetActiveAlerts returns the unprocessed alerts of a venue
func (uc *VenueUseCase) GetActiveAlerts(ctx context.Context, venueID uuid.UUID) ([]*domain.Alert, error) {
	if _, err := uc.venueRepo.GetVenue(ctx, venueID); err != nil {
		return nil, err
	}
	return uc.venueRepo.GetActiveAlerts(ctx, venueID)
}

// MarkAlertProcessed flips the processed flag of an alert
func (uc *VenueUseCase) MarkAlertProcessed(ctx context.Context, alertID uuid.UUID) error {
	return uc.venueRepo.MarkAlertProcessed(ctx, alertID)
}

// GenerateReport emits one row per venue with its derived state.
// Venues lacking an occupancy record are silently skipped.
func (uc *VenueUseCase) GenerateReport(ctx context.Context) (*dto.OccupancyReportResponse, error) {
	venues, err := uc.venueRepo.GetAllVenues(ctx)
	if err != nil {
		return nil, err
	}

	thresholds := uc.GetThresholds()
	rows := make([]*domain.VenueReportRow, 0, len(venues))
	for _, venue := range venues {
		occupancy, err := uc.venueRepo.GetOccupancy(ctx, venue.ID)
		if err != nil {
			continue
		}
		rows = append(rows, &domain.VenueReportRow{
			VenueID:     venue.ID,
			Name:        venue.Name,
			Category:    venue.Category,
			MaxCapacity: venue.MaxCapacity,
			Current:     occupancy.Current,
			Percentage:  occupancy.Percentage,
			State:       thresholds.Classify(occupancy.Percentage),
		})
	}

	return &dto.OccupancyReportResponse{
		GeneratedAt: time.Now(),
		TotalVenues: len(rows),
		Rows:        rows,
	}, nil
}

// GetThresholds returns a snapshot of the current alert thresholds
func (uc *VenueUseCase) GetThresholds() domain.AlertThresholds {
	uc.thresholdsMu.RLock()
	defer uc.thresholdsMu.RUnlock()
	return uc.thresholds
}

// UpdateThresholds applies a partial update to the thresholds.
// The change affects all subsequent evaluations process-wide.
func (uc *VenueUseCase) UpdateThresholds(req dto.UpdateThresholdsRequest) domain.AlertThresholds {
	uc.thresholdsMu.Lock()
	defer uc.thresholdsMu.Unlock()

	if req.Critical != nil {
		uc.thresholds.Critical = *req.Critical
	}
	if req.Warning != nil {
		uc.thresholds.Warning = *req.Warning
	}
	if req.Low != nil {
		uc.thresholds.Low = *req.Low
	}

	uc.logger.Info("Alert thresholds updated",
		zap.Float64("critical", uc.thresholds.Critical),
		zap.Float64("warning", uc.thresholds.Warning),
		zap.Float64("low", uc.thresholds.Low))
	return uc.thresholds
}

// OnAlert registers a callback invoked synchronously for every raised alert
func (uc *VenueUseCase) OnAlert(cb AlertCallback) {
	uc.subscribersMu.Lock()
	defer uc.subscribersMu.Unlock()
	uc.subscribers = append(uc.subscribers, cb)
}

// applyOccupancy persists a validated headcount and runs alert evaluation.
// Callers must hold the venue lock.
func (uc *VenueUseCase) applyOccupancy(ctx context.Context, venueID uuid.UUID, newCount int) (*domain.Occupancy, error) {
	venue, err := uc.venueRepo.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	if newCount > venue.MaxCapacity {
		return nil, errors.ErrCapacityExceeded.WithDetails(map[string]interface{}{
			"requested":    newCount,
			"max_capacity": venue.MaxCapacity,
		})
	}

	occupancy := &domain.Occupancy{
		VenueID:    venueID,
		Current:    newCount,
		Percentage: domain.OccupancyPercentage(newCount, venue.MaxCapacity),
		UpdatedAt:  time.Now(),
	}

	if err := uc.venueRepo.UpdateOccupancy(ctx, occupancy); err != nil {
		return nil, err
	}

	uc.evaluateAlerts(ctx, venue, occupancy)
	return occupancy, nil
}

// evaluateAlerts appends an alert when the percentage crosses a threshold.
// Priority: critical, then warning, then low. Consecutive duplicates are
// not suppressed.
func (uc *VenueUseCase) evaluateAlerts(ctx context.Context, venue *domain.Venue, occupancy *domain.Occupancy) {
	kind, ok := uc.GetThresholds().AlertKindFor(occupancy.Percentage)
	if !ok {
		return
	}

	alert := &domain.Alert{
		ID:         uuid.New(),
		VenueID:    venue.ID,
		Kind:       kind,
		Percentage: occupancy.Percentage,
		Timestamp:  time.Now(),
		Processed:  false,
	}

	if err := uc.venueRepo.CreateAlert(ctx, alert); err != nil {
		uc.logger.Error("Failed to store alert",
			zap.String("venue_id", venue.ID.String()),
			zap.Error(err))
		return
	}

	uc.logger.Warn("Occupancy alert raised",
		zap.String("venue_id", venue.ID.String()),
		zap.String("kind", string(kind)),
		zap.Float64("percentage", occupancy.Percentage))

	event := domain.AlertRaisedEvent{
		AlertID:    alert.ID,
		VenueID:    venue.ID,
		Kind:       kind,
		Percentage: occupancy.Percentage,
		Timestamp:  alert.Timestamp,
	}

	uc.subscribersMu.RLock()
	subscribers := make([]AlertCallback, len(uc.subscribers))
	copy(subscribers, uc.subscribers)
	uc.subscribersMu.RUnlock()

	for _, cb := range subscribers {
		cb(event)
	}

	// Best-effort publish for the notification worker; a failed publish
	// never fails the occupancy update
	if uc.streamRepo != nil {
		if err := uc.streamRepo.PublishToStream(ctx, domain.StreamAforoAlerts, event); err != nil {
			uc.logger.Warn("Failed to publish alert event", zap.Error(err))
		}
	}
}
