package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/pkg/errors"
	"github.com/carnaval-microservice/internal/repository/memory"
)

func newTestVenue() *domain.Venue {
	now := time.Now()
	return &domain.Venue{
		ID:          uuid.New(),
		Name:        "Plaza Mayor",
		Location:    "Centro Histórico",
		MaxCapacity: 500,
		Category:    domain.VenuePlaza,
		Status:      domain.VenueActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestVenueRepository_CreateVenueInitializesOccupancy(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())
	ctx := context.Background()

	venue := newTestVenue()
	require.NoError(t, repo.CreateVenue(ctx, venue))

	occupancy, err := repo.GetOccupancy(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, occupancy.Current)
	assert.Equal(t, float64(0), occupancy.Percentage)
}

func TestVenueRepository_GetVenueNotFound(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())

	_, err := repo.GetVenue(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrVenueNotFound)
}

func TestVenueRepository_GetVenueReturnsCopy(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())
	ctx := context.Background()

	venue := newTestVenue()
	require.NoError(t, repo.CreateVenue(ctx, venue))

	got, err := repo.GetVenue(ctx, venue.ID)
	require.NoError(t, err)

	got.Name = "mutated"

	again, err := repo.GetVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plaza Mayor", again.Name)
}

func TestVenueRepository_DeleteVenueRemovesOccupancy(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())
	ctx := context.Background()

	venue := newTestVenue()
	require.NoError(t, repo.CreateVenue(ctx, venue))
	require.NoError(t, repo.DeleteVenue(ctx, venue.ID))

	_, err := repo.GetVenue(ctx, venue.ID)
	assert.ErrorIs(t, err, errors.ErrVenueNotFound)

	_, err = repo.GetOccupancy(ctx, venue.ID)
	assert.ErrorIs(t, err, errors.ErrOccupancyNotFound)
}

func TestVenueRepository_UpdateOccupancy(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())
	ctx := context.Background()

	venue := newTestVenue()
	require.NoError(t, repo.CreateVenue(ctx, venue))

	require.NoError(t, repo.UpdateOccupancy(ctx, &domain.Occupancy{
		VenueID:    venue.ID,
		Current:    120,
		Percentage: 24,
		UpdatedAt:  time.Now(),
	}))

	occupancy, err := repo.GetOccupancy(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 120, occupancy.Current)
	assert.Equal(t, float64(24), occupancy.Percentage)
}

func TestVenueRepository_ActiveAlerts(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())
	ctx := context.Background()

	venue := newTestVenue()
	require.NoError(t, repo.CreateVenue(ctx, venue))

	first := &domain.Alert{
		ID:         uuid.New(),
		VenueID:    venue.ID,
		Kind:       domain.AlertWarningCapacity,
		Percentage: 80,
		Timestamp:  time.Now(),
	}
	second := &domain.Alert{
		ID:         uuid.New(),
		VenueID:    venue.ID,
		Kind:       domain.AlertCriticalCapacity,
		Percentage: 95,
		Timestamp:  time.Now(),
	}
	require.NoError(t, repo.CreateAlert(ctx, first))
	require.NoError(t, repo.CreateAlert(ctx, second))

	alerts, err := repo.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)

	// Processing one alert removes it from the active set
	require.NoError(t, repo.MarkAlertProcessed(ctx, first.ID))

	alerts, err = repo.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, second.ID, alerts[0].ID)
}

func TestVenueRepository_MarkAlertProcessedNotFound(t *testing.T) {
	repo := memory.NewVenueRepository(zap.NewNop())

	err := repo.MarkAlertProcessed(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrAlertNotFound)
}
