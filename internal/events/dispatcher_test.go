package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var secondRan bool
	dispatcher.Subscribe(EventClientCreated, func(ctx context.Context, event Event) error {
		return errors.New("first handler failed")
	})
	dispatcher.Subscribe(EventClientCreated, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventClientCreated, ResourceID: "c1"})
	require.NoError(t, err, "handler failures never propagate to the publisher")
	require.True(t, secondRan)
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(nil)

	var ran bool
	dispatcher.Subscribe(EventClientCreated, func(ctx context.Context, event Event) error {
		ran = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventAccountDeleted}))
	require.False(t, ran)
}
