package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	apperrors "github.com/carnaval-microservice/internal/pkg/errors"
)

type venueRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewVenueRepository creates the PostgreSQL backed VenueRepository
func NewVenueRepository(db *DB, logger *zap.Logger) repository.VenueRepository {
	return &venueRepository{
		db:     db,
		logger: logger,
	}
}

// CreateVenue inserts the venue and its zeroed occupancy row in one transaction
func (r *venueRepository) CreateVenue(ctx context.Context, venue *domain.Venue) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO venues (id, name, location, max_capacity, category, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, venue.ID, venue.Name, venue.Location, venue.MaxCapacity, venue.Category,
		venue.Status, venue.Description, venue.CreatedAt, venue.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO occupancies (venue_id, current, percentage, updated_at)
		VALUES ($1, 0, 0, $2)
	`, venue.ID, time.Now())
	if err != nil {
		return fmt.Errorf("insert occupancy: %w", err)
	}

	return tx.Commit()
}

func (r *venueRepository) GetVenue(ctx context.Context, id uuid.UUID) (*domain.Venue, error) {
	venue := &domain.Venue{}
	err := r.db.GetContext(ctx, venue, `
		SELECT id, name, location, max_capacity, category, status, description, created_at, updated_at
		FROM venues
		WHERE id = $1
	`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrVenueNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (r *venueRepository) GetAllVenues(ctx context.Context) ([]*domain.Venue, error) {
	venues := make([]*domain.Venue, 0)
	err := r.db.SelectContext(ctx, &venues, `
		SELECT id, name, location, max_capacity, category, status, description, created_at, updated_at
		FROM venues
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	return venues, nil
}

func (r *venueRepository) UpdateVenue(ctx context.Context, venue *domain.Venue) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE venues
		SET name = $1, location = $2, status = $3, description = $4, updated_at = $5
		WHERE id = $6
	`, venue.Name, venue.Location, venue.Status, venue.Description, time.Now(), venue.ID)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrVenueNotFound)
}

func (r *venueRepository) DeleteVenue(ctx context.Context, id uuid.UUID) error {
	// occupancies and alerts cascade via FK
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrVenueNotFound)
}

func (r *venueRepository) GetOccupancy(ctx context.Context, venueID uuid.UUID) (*domain.Occupancy, error) {
	occupancy := &domain.Occupancy{}
	err := r.db.GetContext(ctx, occupancy, `
		SELECT venue_id, current, percentage, updated_at
		FROM occupancies
		WHERE venue_id = $1
	`, venueID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrOccupancyNotFound
		}
		return nil, fmt.Errorf("get occupancy: %w", err)
	}
	return occupancy, nil
}

func (r *venueRepository) UpdateOccupancy(ctx context.Context, occupancy *domain.Occupancy) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE occupancies
		SET current = $1, percentage = $2, updated_at = $3
		WHERE venue_id = $4
	`, occupancy.Current, occupancy.Percentage, occupancy.UpdatedAt, occupancy.VenueID)
	if err != nil {
		return fmt.Errorf("update occupancy: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrOccupancyNotFound)
}

func (r *venueRepository) CreateAlert(ctx context.Context, alert *domain.Alert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (id, venue_id, kind, percentage, timestamp, processed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, alert.ID, alert.VenueID, alert.Kind, alert.Percentage, alert.Timestamp, alert.Processed)
	if err != nil {
		return fmt.Errorf("insert alert: %w", err)
	}
	return nil
}

func (r *venueRepository) GetActiveAlerts(ctx context.Context, venueID uuid.UUID) ([]*domain.Alert, error) {
	alerts := make([]*domain.Alert, 0)
	err := r.db.SelectContext(ctx, &alerts, `
		SELECT id, venue_id, kind, percentage, timestamp, processed
		FROM alerts
		WHERE venue_id = $1 AND processed = false
		ORDER BY timestamp
	`, venueID)
	if err != nil {
		return nil, fmt.Errorf("select alerts: %w", err)
	}
	return alerts, nil
}

func (r *venueRepository) MarkAlertProcessed(ctx context.Context, alertID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE alerts SET processed = true WHERE id = $1
	`, alertID)
	if err != nil {
		return fmt.Errorf("mark alert processed: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrAlertNotFound)
}

func requireRowAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
