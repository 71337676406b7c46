package main

import (
	"context"
	"log"

	"github.com/christoffels/menu/internal/config"
	"github.com/christoffels/menu/internal/infrastructure/database"
	"github.com/christoffels/menu/internal/infrastructure/persistence"
	"github.com/christoffels/menu/pkg/constants"
)

// Drops every menu table from the configured MySQL database.
// The next server start recreates and reseeds them.
func main() {
	cfg, err := config.Load(".env", "../.env", "../../.env")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.MySQL.Options())
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	log.Printf("⚠️  Wiping menu tables from %s...", cfg.MySQL.Database)
	if err := persistence.NewSchemaRepository(db).DropTables(ctx, constants.AllTables()); err != nil {
		log.Fatalf("wipe failed: %v", err)
	}
	log.Println("✅ Database wiped successfully.")
}
