package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
)

// EventType is an alias to the domain type
type EventType = events.EventType

// MenuItemEventPayload is published for menu mutations
type MenuItemEventPayload struct {
	Item    models.MenuItem     `json:"item"`
	OldItem *models.MenuItem    `json:"old_item,omitempty"`
	Actor   *models.UserSession `json:"actor,omitempty"`
}

// BasketEventPayload is published whenever a basket changes
type BasketEventPayload struct {
	SessionID string  `json:"session_id"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// AuthEventPayload is published for signup, login and logout
type AuthEventPayload struct {
	UserID    string `json:"user_id"`
	UserCode  string `json:"user_code"`
	SessionID string `json:"session_id"`
}

// SweepEventPayload is published after expired sessions are purged
type SweepEventPayload struct {
	SessionIDs []string `json:"session_ids"`
}

// SweptCount returns how many sessions the sweep removed
func (p SweepEventPayload) SweptCount() int {
	return len(p.SessionIDs)
}

// PlatformEvent represents a dispatched event
type PlatformEvent struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// EventHandler is a function that handles an event.
type EventHandler = ports.EventHandler

type subscription struct {
	id      uint64
	handler EventHandler
}

// EventBus manages publish-subscribe event system.
// It implements ports.EventPublisher interface.
type EventBus struct {
	handlers map[EventType][]subscription
	nextID   uint64
	mu       sync.RWMutex
}

var _ ports.EventPublisher = (*EventBus)(nil)

// NewEventBus creates a new EventBus instance
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
// Returns an unsubscribe function
func (eb *EventBus) Subscribe(eventType EventType, handler EventHandler) func() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eb.nextID
	eb.handlers[eventType] = append(eb.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()

		subs := eb.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				eb.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Publish publishes an event to all registered handlers
func (eb *EventBus) Publish(ctx context.Context, eventType EventType, payload interface{}) error {
	eb.mu.RLock()
	subs := append([]subscription(nil), eb.handlers[eventType]...)
	eb.mu.RUnlock()

	if len(subs) == 0 {
		return nil
	}

	event := PlatformEvent{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	// Execute handlers in sequence
	for _, s := range subs {
		if err := s.handler(ctx, event.Payload); err != nil {
			return fmt.Errorf("EventBus handler error for %s: %w", eventType, err)
		}
	}

	return nil
}

// PublishAsync publishes an event asynchronously
func (eb *EventBus) PublishAsync(eventType EventType, payload interface{}) {
	go func() {
		if err := eb.Publish(context.Background(), eventType, payload); err != nil {
			log.Printf("EventBus async publish error: %v", err)
		}
	}()
}

// Clear removes all handlers (useful for testing)
func (eb *EventBus) Clear() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.handlers = make(map[EventType][]subscription)
}

// publishOrLog dispatches an event after a mutation has already been applied.
// Handler failures are logged rather than surfaced to the caller.
func publishOrLog(ctx context.Context, publisher ports.EventPublisher, eventType EventType, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, eventType, payload); err != nil {
		log.Printf("⚠️ %v", err)
	}
}
