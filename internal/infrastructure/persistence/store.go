package persistence

import (
	"database/sql"

	"github.com/christoffels/menu/internal/domain/ports"
)

// NewMySQLStore wires the MySQL repositories over one connection pool
func NewMySQLStore(db *sql.DB) *ports.Store {
	return &ports.Store{
		Menu:     NewMenuRepository(db),
		Users:    NewUserRepository(db),
		Sessions: NewSessionRepository(db),
		Baskets:  NewBasketRepository(db),
	}
}
