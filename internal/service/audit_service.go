package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-connection/internal/events"
)

// AuditService writes connection events to the structured log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventCustomerDrafted, a.handleCustomerDrafted)
	a.dispatcher.Subscribe(events.EventConnectionAssembled, a.handleConnectionAssembled)
}

func (a *AuditService) handleCustomerDrafted(ctx context.Context, event events.Event) error {
	a.logger.Info("CustomerDrafted", zap.String("event_id", event.ID), zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleConnectionAssembled(ctx context.Context, event events.Event) error {
	a.logger.Info("ConnectionAssembled",
		zap.String("event_id", event.ID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
