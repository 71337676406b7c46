package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/currency"
	"github.com/christoffels/menu/pkg/errors"
)

// BasketLine is a basket entry as returned to clients
type BasketLine struct {
	models.BasketItem
	LineTotal          float64 `json:"line_total"`
	LineTotalFormatted string  `json:"line_total_formatted"`
}

// BasketView is a basket with its computed totals
type BasketView struct {
	Items          []BasketLine `json:"items"`
	ItemCount      int          `json:"item_count"`
	Total          float64      `json:"total"`
	TotalFormatted string       `json:"total_formatted"`
}

// BasketService manages one basket per session.
// Read-modify-write cycles are serialized by a single mutex.
type BasketService struct {
	baskets ports.BasketRepository
	menu    ports.MenuRepository
	events  ports.EventPublisher
	mu      sync.Mutex
}

// NewBasketService creates a new BasketService
func NewBasketService(baskets ports.BasketRepository, menu ports.MenuRepository, publisher ports.EventPublisher) *BasketService {
	return &BasketService{
		baskets: baskets,
		menu:    menu,
		events:  publisher,
	}
}

// Get returns the session's basket
func (s *BasketService) Get(ctx context.Context, sessionID string) (*BasketView, error) {
	basket, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newBasketView(basket), nil
}

// Add puts quantity units of a menu item in the basket, merging with an existing line
func (s *BasketService) Add(ctx context.Context, sessionID, itemID string, quantity int) (*BasketView, error) {
	if quantity <= 0 {
		return nil, errors.NewValidationError(constants.FieldQuantity, "must be greater than 0")
	}

	item, err := s.menu.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu item: %w", err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("menu item", itemID)
	}

	return s.mutate(ctx, sessionID, func(b *models.Basket) {
		for i := range b.Items {
			if b.Items[i].ID == itemID {
				b.Items[i].Quantity += quantity
				return
			}
		}
		b.Items = append(b.Items, models.BasketItem{MenuItem: *item, Quantity: quantity})
	})
}

// Remove drops a line from the basket. Removing an absent item is not an error.
func (s *BasketService) Remove(ctx context.Context, sessionID, itemID string) (*BasketView, error) {
	return s.mutate(ctx, sessionID, func(b *models.Basket) {
		b.Items = removeLine(b.Items, itemID)
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
// Unknown items leave the basket unchanged.
func (s *BasketService) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*BasketView, error) {
	return s.mutate(ctx, sessionID, func(b *models.Basket) {
		if quantity <= 0 {
			b.Items = removeLine(b.Items, itemID)
			return
		}
		for i := range b.Items {
			if b.Items[i].ID == itemID {
				b.Items[i].Quantity = quantity
				return
			}
		}
	})
}

// Clear empties the basket
func (s *BasketService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return errors.NewUnauthorizedError("No active session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.baskets.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear basket: %w", err)
	}
	publishOrLog(ctx, s.events, events.BasketCleared, BasketEventPayload{SessionID: sessionID})
	return nil
}

func (s *BasketService) load(ctx context.Context, sessionID string) (*models.Basket, error) {
	if sessionID == "" {
		return nil, errors.NewUnauthorizedError("No active session")
	}
	basket, err := s.baskets.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load basket: %w", err)
	}
	return basket, nil
}

func (s *BasketService) mutate(ctx context.Context, sessionID string, fn func(*models.Basket)) (*BasketView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	basket, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fn(basket)

	if err := s.baskets.Save(ctx, basket); err != nil {
		return nil, fmt.Errorf("failed to save basket: %w", err)
	}

	publishOrLog(ctx, s.events, events.BasketChanged, BasketEventPayload{
		SessionID: sessionID,
		ItemCount: basket.ItemCount(),
		Total:     basket.Total(),
	})
	return newBasketView(basket), nil
}

func removeLine(items []models.BasketItem, itemID string) []models.BasketItem {
	out := items[:0]
	for _, it := range items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	return out
}

func newBasketView(b *models.Basket) *BasketView {
	view := &BasketView{
		Items:     make([]BasketLine, 0, len(b.Items)),
		ItemCount: b.ItemCount(),
		Total:     b.Total(),
	}
	for _, it := range b.Items {
		line := it.LineTotal()
		view.Items = append(view.Items, BasketLine{
			BasketItem:         it,
			LineTotal:          line,
			LineTotalFormatted: currency.FormatZAR(line),
		})
	}
	view.TotalFormatted = currency.FormatZAR(view.Total)
	return view
}
