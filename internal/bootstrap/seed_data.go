package bootstrap

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
)

//go:embed seed_data.json
var seedDataJSON []byte

// SeedData is the initial catalog and the built-in accounts
type SeedData struct {
	Users []struct {
		ID       string      `json:"id"`
		Name     string      `json:"name"`
		UserCode string      `json:"user_code"`
		Type     models.Role `json:"type"`
	} `json:"users"`
	MenuItems []models.MenuItem `json:"menu_items"`
}

// LoadSeedData parses the embedded seed file
func LoadSeedData() (*SeedData, error) {
	var data SeedData
	if err := json.Unmarshal(seedDataJSON, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed_data.json: %w", err)
	}
	return &data, nil
}

// InitializeSeedData inserts the seed users and menu items that are not present yet.
// Existing rows are left untouched so a persistent store keeps its edits across restarts.
func InitializeSeedData(ctx context.Context, store *ports.Store) error {
	log.Println("🔧 Initializing seed data...")

	data, err := LoadSeedData()
	if err != nil {
		return err
	}

	users := 0
	for _, u := range data.Users {
		if !u.Type.IsValid() {
			return fmt.Errorf("seed user %s has unknown type %q", u.UserCode, u.Type)
		}
		existing, err := store.Users.FindByCode(ctx, u.UserCode)
		if err != nil {
			return fmt.Errorf("failed to look up seed user %s: %w", u.UserCode, err)
		}
		if existing != nil {
			continue
		}
		if err := store.Users.Insert(ctx, &models.User{ID: u.ID, Name: u.Name, UserCode: u.UserCode, Type: u.Type}); err != nil {
			return fmt.Errorf("failed to insert seed user %s: %w", u.UserCode, err)
		}
		users++
	}
	log.Printf("   ✅ Ensured %d seed users (%d new)", len(data.Users), users)

	items := 0
	for _, item := range data.MenuItems {
		existing, err := store.Menu.Get(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("failed to look up seed item %s: %w", item.ID, err)
		}
		if existing != nil {
			continue
		}
		if err := store.Menu.Insert(ctx, item); err != nil {
			return fmt.Errorf("failed to insert seed item %s: %w", item.ID, err)
		}
		items++
	}
	log.Printf("   ✅ Ensured %d seed menu items (%d new)", len(data.MenuItems), items)

	return nil
}
