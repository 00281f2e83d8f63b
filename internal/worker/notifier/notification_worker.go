package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/carnaval-microservice/internal/domain"
	"github.com/carnaval-microservice/internal/domain/repository"
	"github.com/carnaval-microservice/internal/worker"
)

// NotificationWorker consumes alert and approval events from Redis Streams
// and emits notifications. Delivery is a structured log line; a real channel
// (mail, push) would plug in at notify.
type NotificationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	consumerName string
}

// NewNotificationWorker creates a new NotificationWorker
func NewNotificationWorker(
	streamRepo repository.StreamRepository,
	consumerGroup string,
	logger *zap.Logger,
) *NotificationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &NotificationWorker{
		BaseWorker:   worker.NewBaseWorker("notification", consumerGroup, logger),
		streamRepo:   streamRepo,
		consumerName: consumerName,
	}
}

// Start consumes both streams until Stop or context cancellation
func (w *NotificationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting NotificationWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	streams := []string{domain.StreamAforoAlerts, domain.StreamPermisosApproved}

	channels := make(map[string]<-chan domain.StreamMessage, len(streams))
	for _, stream := range streams {
		if err := w.streamRepo.CreateConsumerGroup(ctx, stream, w.ConsumerGroup()); err != nil {
			logger.Error("Failed to create consumer group",
				zap.String("stream", stream), zap.Error(err))
			return fmt.Errorf("failed to create consumer group: %w", err)
		}

		ch, err := w.streamRepo.ConsumeStream(ctx, stream, w.ConsumerGroup(), w.consumerName)
		if err != nil {
			return fmt.Errorf("failed to consume stream %s: %w", stream, err)
		}
		channels[stream] = ch
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-channels[domain.StreamAforoAlerts]:
			if !ok {
				logger.Info("Alert stream closed")
				return nil
			}
			w.handleAlert(ctx, msg)

		case msg, ok := <-channels[domain.StreamPermisosApproved]:
			if !ok {
				logger.Info("Approval stream closed")
				return nil
			}
			w.handleApproval(ctx, msg)
		}
	}
}

func (w *NotificationWorker) handleAlert(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.AlertRaisedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Failed to decode alert event",
			zap.String("message_id", msg.ID), zap.Error(err))
		// Ack anyway: a malformed message never becomes parseable
		w.ack(ctx, domain.StreamAforoAlerts, msg.ID)
		return
	}

	w.notify("Capacity alert",
		zap.String("venue_id", event.VenueID.String()),
		zap.String("kind", string(event.Kind)),
		zap.Float64("percentage", event.Percentage))

	w.ack(ctx, domain.StreamAforoAlerts, msg.ID)
}

func (w *NotificationWorker) handleApproval(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.RequestApprovedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Error("Failed to decode approval event",
			zap.String("message_id", msg.ID), zap.Error(err))
		w.ack(ctx, domain.StreamPermisosApproved, msg.ID)
		return
	}

	w.notify("Permit approved",
		zap.String("vendor_id", event.VendorID.String()),
		zap.String("permit_number", event.PermitNumber),
		zap.Float64("fee", event.Fee))

	w.ack(ctx, domain.StreamPermisosApproved, msg.ID)
}

// notify is the delivery point for outbound notifications
func (w *NotificationWorker) notify(message string, fields ...zap.Field) {
	w.Logger().Info(message, fields...)
}

func (w *NotificationWorker) ack(ctx context.Context, stream, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, stream, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("stream", stream),
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
