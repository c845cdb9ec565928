package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/bank-crm-service/internal/events"
)

type emailQueueStub struct {
	sent    []string
	sendErr error
}

func (q *emailQueueStub) SendEmail(ctx context.Context, recipient, body string) error {
	q.sent = append(q.sent, recipient)
	return q.sendErr
}

func TestNotificationServiceSendsClientEmails(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	queue := &emailQueueStub{}
	NewNotificationService(dispatcher, queue, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:           events.EventClientCreated,
		ResourceID:     "c1",
		RecipientEmail: "jane@clients.test",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"jane@clients.test"}, queue.sent)
}

func TestNotificationServiceSkipsEmptyRecipient(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	queue := &emailQueueStub{}
	NewNotificationService(dispatcher, queue, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:       events.EventAccountUpdated,
		ResourceID: "a1",
	})
	require.NoError(t, err)
	require.Empty(t, queue.sent)
}

func TestNotificationServiceQueueFailureDoesNotPropagate(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	queue := &emailQueueStub{sendErr: errors.New("sqs unavailable")}
	NewNotificationService(dispatcher, queue, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:           events.EventClientDeleted,
		ResourceID:     "c1",
		RecipientEmail: "jane@clients.test",
	})
	require.NoError(t, err)
}

func TestNotificationServiceStaffEventsLogOnly(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	queue := &emailQueueStub{}
	NewNotificationService(dispatcher, queue, zap.NewNop()).RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.Event{
		Type:           events.EventStaffProvisioned,
		ResourceID:     "sub-1",
		RecipientEmail: "staff@bank.test",
	})
	require.NoError(t, err)
	require.Empty(t, queue.sent, "staff lifecycle events never email anyone")
}
