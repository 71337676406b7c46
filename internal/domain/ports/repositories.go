package ports

import (
	"context"
	"time"

	"github.com/christoffels/menu/internal/domain/models"
)

// MenuRepository stores menu items in insertion order.
// Get returns (nil, nil) when the item does not exist.
type MenuRepository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Insert(ctx context.Context, item models.MenuItem) error
	Update(ctx context.Context, item models.MenuItem) error
	Delete(ctx context.Context, id string) (bool, error)
}

// UserRepository stores users. User codes are unique ignoring case;
// Insert returns a ConflictError when the code is taken.
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	FindByCode(ctx context.Context, code string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

// SessionRepository stores the server-side half of login sessions.
type SessionRepository interface {
	Insert(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Revoke(ctx context.Context, id string) error
	Touch(ctx context.Context, id string, at time.Time) error
	// DeleteExpired removes sessions that expired before the cutoff or were revoked,
	// returning their ids so dependent state can be discarded.
	DeleteExpired(ctx context.Context, cutoff time.Time) ([]string, error)
}

// BasketRepository stores one basket per session.
// Get returns an empty basket for unknown sessions.
type BasketRepository interface {
	Get(ctx context.Context, sessionID string) (*models.Basket, error)
	Save(ctx context.Context, basket *models.Basket) error
	Delete(ctx context.Context, sessionID string) error
}

// Store bundles the repositories of one storage backend.
type Store struct {
	Menu     MenuRepository
	Users    UserRepository
	Sessions SessionRepository
	Baskets  BasketRepository
}
