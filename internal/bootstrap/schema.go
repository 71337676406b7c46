package bootstrap

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/christoffels/menu/internal/infrastructure/persistence"
)

//go:embed menu_tables.json
var menuTablesJSON []byte

// TableCreator applies table definitions to a database
type TableCreator interface {
	EnsureTables(ctx context.Context, defs []persistence.TableDefinition) error
}

// GetMenuTableDefinitions returns the declarative definitions of every menu table
func GetMenuTableDefinitions() ([]persistence.TableDefinition, error) {
	var defs []persistence.TableDefinition
	if err := json.Unmarshal(menuTablesJSON, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse menu_tables.json: %w", err)
	}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// InitializeSchema creates the menu tables if they do not exist yet
func InitializeSchema(ctx context.Context, creator TableCreator) error {
	log.Println("🔧 Initializing menu schema...")

	defs, err := GetMenuTableDefinitions()
	if err != nil {
		return err
	}
	if err := creator.EnsureTables(ctx, defs); err != nil {
		return err
	}

	log.Printf("✅ Menu schema initialized (%d tables)", len(defs))
	return nil
}
