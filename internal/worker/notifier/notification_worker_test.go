package notifier_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/worker/notifier"
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

func TestNotificationWorker_Name(t *testing.T) {
	mockStream := &MockStreamRepository{}

	worker := notifier.NewNotificationWorker(mockStream, "test-group", zap.NewNop())

	assert.Equal(t, "notification", worker.Name())
	assert.Equal(t, "test-group", worker.ConsumerGroup())
}

func TestNotificationWorker_StopIsIdempotent(t *testing.T) {
	mockStream := &MockStreamRepository{}

	worker := notifier.NewNotificationWorker(mockStream, "test-group", zap.NewNop())

	require.NoError(t, worker.Stop())
	require.NoError(t, worker.Stop())
	assert.True(t, worker.IsStopped())
}

func TestNotificationWorker_ConsumesAndAcks(t *testing.T) {
	mockStream := &MockStreamRepository{}

	alertCh := make(chan domain.StreamMessage, 1)
	approvalCh := make(chan domain.StreamMessage, 1)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamAforoAlerts, "test-group").Return(nil)
	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPermisosApproved, "test-group").Return(nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamAforoAlerts, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(alertCh), nil)
	mockStream.On("ConsumeStream", mock.Anything, domain.StreamPermisosApproved, "test-group", mock.Anything).
		Return((<-chan domain.StreamMessage)(approvalCh), nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamAforoAlerts, "test-group", "1-0").Return(nil)

	worker := notifier.NewNotificationWorker(mockStream, "test-group", zap.NewNop())

	payload, err := json.Marshal(domain.AlertRaisedEvent{
		AlertID:    uuid.New(),
		VenueID:    uuid.New(),
		Kind:       domain.AlertCriticalCapacity,
		Percentage: 95,
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)
	alertCh <- domain.StreamMessage{ID: "1-0", Data: string(payload)}

	done := make(chan error, 1)
	go func() {
		done <- worker.Start(context.Background())
	}()

	// Give the worker a moment to drain the channel, then stop it
	assert.Eventually(t, func() bool {
		for _, call := range mockStream.Calls {
			if call.Method == "AckMessage" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, worker.Stop())
	require.NoError(t, <-done)

	mockStream.AssertCalled(t, "AckMessage", mock.Anything, domain.StreamAforoAlerts, "test-group", "1-0")
}
