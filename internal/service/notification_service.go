package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bank-crm-service/internal/events"
	"github.com/spec-kit/bank-crm-service/internal/notification"
)

// NotificationService turns domain events into customer email notifications.
// Dispatch is fire-and-forget: a queue failure is logged and never propagates
// into the request that produced the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	queue      notification.EmailQueue
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, queue notification.EmailQueue, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		queue:      queue,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventClientCreated, n.emailHandler("Your profile was created successfully on %s"))
	n.dispatcher.Subscribe(events.EventClientUpdated, n.emailHandler("Your profile was updated successfully on %s"))
	n.dispatcher.Subscribe(events.EventClientVerified, n.emailHandler("Your profile was verified successfully on %s"))
	n.dispatcher.Subscribe(events.EventClientDeleted, n.emailHandler("Your profile was deleted on %s"))
	n.dispatcher.Subscribe(events.EventAccountCreated, n.emailHandler("Your account was created successfully on %s"))
	n.dispatcher.Subscribe(events.EventAccountUpdated, n.emailHandler("Your account was updated successfully on %s"))
	n.dispatcher.Subscribe(events.EventAccountDeleted, n.emailHandler("Your account was closed on %s"))
	n.dispatcher.Subscribe(events.EventStaffProvisioned, n.logOnly)
	n.dispatcher.Subscribe(events.EventStaffUpdated, n.logOnly)
	n.dispatcher.Subscribe(events.EventStaffDeactivated, n.logOnly)
}

func (n *NotificationService) emailHandler(bodyFormat string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		if n.queue == nil || event.RecipientEmail == "" {
			return nil
		}
		body := fmt.Sprintf(bodyFormat, time.Now().Format(time.RFC3339))
		if err := n.queue.SendEmail(ctx, event.RecipientEmail, body); err != nil {
			n.logger.Warn("email notification dispatch failed",
				zap.String("event_type", string(event.Type)),
				zap.String("resource_id", event.ResourceID),
				zap.Error(err))
		}
		return nil
	}
}

func (n *NotificationService) logOnly(ctx context.Context, event events.Event) error {
	n.logger.Info("staff lifecycle event",
		zap.String("event_type", string(event.Type)),
		zap.String("resource_id", event.ResourceID),
		zap.String("actor_id", event.Actor.StaffID))
	return nil
}
