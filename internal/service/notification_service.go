package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/capture-portal/internal/events"
	"github.com/spec-kit/capture-portal/internal/observability"
)

// NotificationService logs and counts portal events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSubmissionRecorded, n.handleSubmissionRecorded)
	n.dispatcher.Subscribe(events.EventMirrorFailed, n.handleMirrorFailed)
	n.dispatcher.Subscribe(events.EventModeChanged, n.handleModeChanged)
}

func (n *NotificationService) handleSubmissionRecorded(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SubmissionRecordedPayload)
	if !ok {
		return nil
	}
	n.metrics.RecordSubmission(string(payload.Kind))
	n.logger.Info("SubmissionRecorded",
		zap.String("event_id", event.ID),
		zap.String("kind", string(payload.Kind)),
		zap.Int64("id", payload.ID))
	return nil
}

func (n *NotificationService) handleMirrorFailed(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MirrorFailedPayload)
	if !ok {
		return nil
	}
	n.metrics.RecordMirrorFailure(string(payload.Kind))
	return nil
}

func (n *NotificationService) handleModeChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ModeChangedPayload)
	if !ok {
		return nil
	}
	n.metrics.RecordModeChange(string(payload.NewMode))
	n.logger.Info("ModeChanged",
		zap.String("old_mode", string(payload.OldMode)),
		zap.String("new_mode", string(payload.NewMode)))
	return nil
}
