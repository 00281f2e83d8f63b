package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/pkg/errors"
	"github.com/carnaval-microservice/internal/repository/memory"
	"github.com/carnaval-microservice/internal/usecase"
	"github.com/carnaval-microservice/internal/usecase/dto"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func newVenueUseCase(t *testing.T) *usecase.VenueUseCase {
	t.Helper()
	return usecase.NewVenueUseCase(
		memory.NewVenueRepository(zap.NewNop()),
		nil,
		zap.NewNop(),
		domain.DefaultThresholds(),
	)
}

func createVenue(t *testing.T, uc *usecase.VenueUseCase, maxCapacity int) *domain.Venue {
	t.Helper()
	venue, err := uc.CreateVenue(context.Background(), dto.CreateVenueRequest{
		Name:        "Plaza Mayor",
		Location:    "Centro Histórico",
		MaxCapacity: maxCapacity,
		Category:    "plaza",
	})
	require.NoError(t, err)
	return venue
}

func TestVenueUseCase_CreateVenueStartsEmpty(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 500)

	details, err := uc.GetVenueDetails(context.Background(), venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, details.Occupancy.Current)
	assert.Equal(t, float64(0), details.Occupancy.Percentage)
	assert.Equal(t, domain.VenueActive, details.Venue.Status)
}

func TestVenueUseCase_RegisterEntry(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 300)
	ctx := context.Background()

	occupancy, err := uc.RegisterEntry(ctx, venue.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, occupancy.Current)
	assert.Equal(t, 33.33, occupancy.Percentage)

	// Count <= 0 defaults to 1
	occupancy, err = uc.RegisterEntry(ctx, venue.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 101, occupancy.Current)
}

func TestVenueUseCase_RegisterEntryOverCapacity(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, venue.ID, 90)
	require.NoError(t, err)

	_, err = uc.RegisterEntry(ctx, venue.ID, 11)
	assert.ErrorIs(t, err, errors.ErrCapacityExceeded)

	// Occupancy is unchanged after the rejected entry
	details, err := uc.GetVenueDetails(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 90, details.Occupancy.Current)

	// Filling exactly to capacity is allowed
	occupancy, err := uc.RegisterEntry(ctx, venue.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 100, occupancy.Current)
	assert.Equal(t, float64(100), occupancy.Percentage)
}

func TestVenueUseCase_RegisterExitClampsAtZero(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	_, err := uc.RegisterEntry(ctx, venue.ID, 5)
	require.NoError(t, err)

	occupancy, err := uc.RegisterExit(ctx, venue.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, occupancy.Current)
	assert.Equal(t, float64(0), occupancy.Percentage)
}

func TestVenueUseCase_UpdateOccupancyOverCapacity(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)

	_, err := uc.UpdateOccupancy(context.Background(), venue.ID, 101)
	assert.ErrorIs(t, err, errors.ErrCapacityExceeded)
}

func TestVenueUseCase_CriticalAlertRaisedOnce(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	var events []domain.AlertRaisedEvent
	uc.OnAlert(func(event domain.AlertRaisedEvent) {
		events = append(events, event)
	})

	_, err := uc.UpdateOccupancy(ctx, venue.ID, 95)
	require.NoError(t, err)

	alerts, err := uc.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertCriticalCapacity, alerts[0].Kind)
	assert.Equal(t, float64(95), alerts[0].Percentage)
	assert.False(t, alerts[0].Processed)

	require.Len(t, events, 1)
	assert.Equal(t, alerts[0].ID, events[0].AlertID)
	assert.Equal(t, venue.ID, events[0].VenueID)
}

func TestVenueUseCase_AlertKindPriority(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	// 80% is warning, 10% is low occupancy, 50% raises nothing
	_, err := uc.UpdateOccupancy(ctx, venue.ID, 80)
	require.NoError(t, err)
	_, err = uc.UpdateOccupancy(ctx, venue.ID, 10)
	require.NoError(t, err)
	_, err = uc.UpdateOccupancy(ctx, venue.ID, 50)
	require.NoError(t, err)

	alerts, err := uc.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	kinds := map[domain.AlertKind]bool{}
	for _, alert := range alerts {
		kinds[alert.Kind] = true
	}
	assert.True(t, kinds[domain.AlertWarningCapacity])
	assert.True(t, kinds[domain.AlertLowOccupancy])
}

func TestVenueUseCase_ConsecutiveDuplicateAlertsKept(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	_, err := uc.UpdateOccupancy(ctx, venue.ID, 95)
	require.NoError(t, err)
	_, err = uc.UpdateOccupancy(ctx, venue.ID, 96)
	require.NoError(t, err)

	alerts, err := uc.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}

func TestVenueUseCase_AlertPublishedToStream(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockStream.On("PublishToStream", mock.Anything, domain.StreamAforoAlerts, mock.Anything).Return(nil)

	uc := usecase.NewVenueUseCase(
		memory.NewVenueRepository(zap.NewNop()),
		mockStream,
		zap.NewNop(),
		domain.DefaultThresholds(),
	)
	venue := createVenue(t, uc, 100)

	_, err := uc.UpdateOccupancy(context.Background(), venue.ID, 95)
	require.NoError(t, err)

	mockStream.AssertCalled(t, "PublishToStream", mock.Anything, domain.StreamAforoAlerts, mock.Anything)
}

func TestVenueUseCase_GetOccupancyState(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	_, err := uc.UpdateOccupancy(ctx, venue.ID, 80)
	require.NoError(t, err)

	state, err := uc.GetOccupancyState(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StateWarning, state.State)
	assert.Equal(t, 80, state.Occupancy.Current)
}

func TestVenueUseCase_UpdateThresholdsAffectsEvaluation(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	critical := 50.0
	updated := uc.UpdateThresholds(dto.UpdateThresholdsRequest{Critical: &critical})
	assert.Equal(t, 50.0, updated.Critical)
	// Untouched fields keep their previous values
	assert.Equal(t, 75.0, updated.Warning)

	_, err := uc.UpdateOccupancy(ctx, venue.ID, 55)
	require.NoError(t, err)

	alerts, err := uc.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertCriticalCapacity, alerts[0].Kind)
}

func TestVenueUseCase_MarkAlertProcessed(t *testing.T) {
	uc := newVenueUseCase(t)
	venue := createVenue(t, uc, 100)
	ctx := context.Background()

	_, err := uc.UpdateOccupancy(ctx, venue.ID, 95)
	require.NoError(t, err)

	alerts, err := uc.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	require.NoError(t, uc.MarkAlertProcessed(ctx, alerts[0].ID))

	alerts, err = uc.GetActiveAlerts(ctx, venue.ID)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestVenueUseCase_GenerateReport(t *testing.T) {
	uc := newVenueUseCase(t)
	ctx := context.Background()

	first := createVenue(t, uc, 100)
	createVenue(t, uc, 200)

	_, err := uc.UpdateOccupancy(ctx, first.ID, 95)
	require.NoError(t, err)

	report, err := uc.GenerateReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalVenues)
	require.Len(t, report.Rows, 2)

	states := map[domain.OccupancyState]int{}
	for _, row := range report.Rows {
		states[row.State]++
	}
	assert.Equal(t, 1, states[domain.StateCritical])
	assert.Equal(t, 1, states[domain.StateLow])
}

func TestVenueUseCase_GetVenueDetailsNotFound(t *testing.T) {
	uc := newVenueUseCase(t)

	_, err := uc.GetVenueDetails(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrVenueNotFound)
}
