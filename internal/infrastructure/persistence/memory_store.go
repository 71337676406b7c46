package persistence

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/christoffels/menu/pkg/utils"
)

// NewMemoryStore returns repositories that keep all state in process memory.
// Everything is lost on restart, matching the app's original behaviour.
func NewMemoryStore() *ports.Store {
	return &ports.Store{
		Menu:     NewMemoryMenuRepository(),
		Users:    NewMemoryUserRepository(),
		Sessions: NewMemorySessionRepository(),
		Baskets:  NewMemoryBasketRepository(),
	}
}

// MemoryMenuRepository is a slice of items guarded by a RWMutex
type MemoryMenuRepository struct {
	mu    sync.RWMutex
	items []models.MenuItem
}

var _ ports.MenuRepository = (*MemoryMenuRepository)(nil)

func NewMemoryMenuRepository() *MemoryMenuRepository {
	return &MemoryMenuRepository{items: make([]models.MenuItem, 0)}
}

func (r *MemoryMenuRepository) List(_ context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.MenuItem, len(r.items))
	for i, item := range r.items {
		out[i] = copyItem(item)
	}
	return out, nil
}

func (r *MemoryMenuRepository) Get(_ context.Context, id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.ID == id {
			found := copyItem(item)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryMenuRepository) Insert(_ context.Context, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == item.ID {
			return errors.NewConflictError("MenuItem", constants.FieldID, item.ID)
		}
	}
	r.items = append(r.items, copyItem(item))
	return nil
}

func (r *MemoryMenuRepository) Update(_ context.Context, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = copyItem(item)
			return nil
		}
	}
	return errors.NewNotFoundError("MenuItem", item.ID)
}

func (r *MemoryMenuRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func copyItem(item models.MenuItem) models.MenuItem {
	if item.ImageURL != nil {
		img := *item.ImageURL
		item.ImageURL = &img
	}
	return item
}

// MemoryUserRepository resolves codes by linear search
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []*models.User
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make([]*models.User, 0)}
}

func (r *MemoryUserRepository) List(_ context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.User, len(r.users))
	for i, u := range r.users {
		cp := *u
		out[i] = &cp
	}
	return out, nil
}

func (r *MemoryUserRepository) FindByCode(_ context.Context, code string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	code = strings.TrimSpace(code)
	for _, u := range r.users {
		if strings.EqualFold(u.UserCode, code) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) Insert(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.UserCode, user.UserCode) {
			return errors.NewConflictError("User", constants.FieldUserCode, user.UserCode)
		}
	}
	cp := *user
	cp.UserCode = utils.NormalizeCode(cp.UserCode)
	r.users = append(r.users, &cp)
	return nil
}

// MemorySessionRepository keys sessions by their jti
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

var _ ports.SessionRepository = (*MemorySessionRepository)(nil)

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]models.Session)}
}

func (r *MemorySessionRepository) Insert(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *MemorySessionRepository) Get(_ context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *MemorySessionRepository) Revoke(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.IsRevoked = true
		r.sessions[id] = s
	}
	return nil
}

func (r *MemorySessionRepository) Touch(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.LastActivity = at
		r.sessions[id] = s
	}
	return nil
}

func (r *MemorySessionRepository) DeleteExpired(_ context.Context, cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, s := range r.sessions {
		if s.IsRevoked || s.ExpiresAt.Before(cutoff) {
			ids = append(ids, id)
			delete(r.sessions, id)
		}
	}
	return ids, nil
}

// MemoryBasketRepository keeps one basket per session id
type MemoryBasketRepository struct {
	mu      sync.RWMutex
	baskets map[string][]models.BasketItem
}

var _ ports.BasketRepository = (*MemoryBasketRepository)(nil)

func NewMemoryBasketRepository() *MemoryBasketRepository {
	return &MemoryBasketRepository{baskets: make(map[string][]models.BasketItem)}
}

func (r *MemoryBasketRepository) Get(_ context.Context, sessionID string) (*models.Basket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lines := r.baskets[sessionID]
	out := make([]models.BasketItem, len(lines))
	for i, line := range lines {
		out[i] = models.BasketItem{MenuItem: copyItem(line.MenuItem), Quantity: line.Quantity}
	}
	return &models.Basket{SessionID: sessionID, Items: out}, nil
}

func (r *MemoryBasketRepository) Save(_ context.Context, basket *models.Basket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(basket.Items) == 0 {
		delete(r.baskets, basket.SessionID)
		return nil
	}
	lines := make([]models.BasketItem, len(basket.Items))
	for i, line := range basket.Items {
		lines[i] = models.BasketItem{MenuItem: copyItem(line.MenuItem), Quantity: line.Quantity}
	}
	r.baskets[basket.SessionID] = lines
	return nil
}

func (r *MemoryBasketRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.baskets, sessionID)
	return nil
}
