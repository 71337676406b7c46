package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_SubscribeAndUnsubscribe(t *testing.T) {
	eb := NewEventBus()
	ctx := context.Background()

	var first, second int
	unsubscribe := eb.Subscribe(events.BasketChanged, func(ctx context.Context, payload interface{}) error {
		first++
		return nil
	})
	eb.Subscribe(events.BasketChanged, func(ctx context.Context, payload interface{}) error {
		second++
		return nil
	})

	require.NoError(t, eb.Publish(ctx, events.BasketChanged, nil))
	unsubscribe()
	require.NoError(t, eb.Publish(ctx, events.BasketChanged, nil))

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestEventBus_HandlerError(t *testing.T) {
	eb := NewEventBus()
	eb.Subscribe(events.MenuItemRemoved, func(ctx context.Context, payload interface{}) error {
		return fmt.Errorf("boom")
	})

	err := eb.Publish(context.Background(), events.MenuItemRemoved, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "menu.item_removed")

	assert.NoError(t, eb.Publish(context.Background(), events.MenuItemCreated, nil))
}

func TestEventBus_PublishAsync(t *testing.T) {
	eb := NewEventBus()
	done := make(chan interface{}, 1)
	eb.Subscribe(events.SystemStartup, func(ctx context.Context, payload interface{}) error {
		done <- payload
		return nil
	})

	eb.PublishAsync(events.SystemStartup, "ready")

	select {
	case got := <-done:
		assert.Equal(t, "ready", got)
	case <-time.After(time.Second):
		t.Fatal("async handler was not called")
	}

	eb.Clear()
	assert.NoError(t, eb.Publish(context.Background(), events.SystemStartup, nil))
}
