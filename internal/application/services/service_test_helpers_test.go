package services

import (
	"context"
	"testing"
	"time"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/internal/infrastructure/persistence"
	"github.com/christoffels/menu/pkg/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// newTestManager builds a ServiceManager over a memory store holding the seed menu and users
func newTestManager(t *testing.T) (*ServiceManager, *ports.Store) {
	t.Helper()

	store := persistence.NewMemoryStore()
	ctx := context.Background()

	for _, item := range seedItems() {
		require.NoError(t, store.Menu.Insert(ctx, item))
	}
	for _, u := range []*models.User{
		{ID: "u-owner", Name: "Christoffel", UserCode: "OWNER001", Type: models.RoleOwner},
		{ID: "u-emp1", Name: "Employee 1", UserCode: "EMP001", Type: models.RoleEmployee},
		{ID: "u-cust1", Name: "Customer 1", UserCode: "CUST001", Type: models.RoleCustomer},
	} {
		require.NoError(t, store.Users.Insert(ctx, u))
	}

	sm, err := NewServiceManager(store, ManagerOptions{
		Tokens: auth.NewTokenManager(testSecret, time.Hour),
	})
	require.NoError(t, err)
	return sm, store
}

func seedItems() []models.MenuItem {
	return []models.MenuItem{
		{ID: "1", Name: "Tomato Bruschetta", Description: "Toasted bread topped with fresh tomatoes and basil", Course: models.CourseStarters, Price: 65},
		{ID: "2", Name: "Grilled Ribeye", Description: "Prime ribeye steak with herb butter", Course: models.CourseMains, Price: 220},
	}
}

func testUser(role models.Role) *models.UserSession {
	return &models.UserSession{ID: "u-" + string(role), Name: "Test " + string(role), UserCode: "TEST", Role: role, SessionID: "sess-" + string(role)}
}
