package main

import (
	"context"
	"log"
	"os"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/internal/config"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/infrastructure/database"
	"github.com/christoffels/menu/internal/infrastructure/persistence"
	"github.com/christoffels/menu/pkg/auth"
)

// Creates a staff or customer account in the MySQL store if its code is free.
// Signup only ever creates customers, so employees are provisioned here.
//
// Usage: ensure_user <user_code> <name> <owner|employee|customer> [password]
func main() {
	if len(os.Args) < 4 {
		log.Fatal("Usage: ensure_user <user_code> <name> <owner|employee|customer> [password]")
	}
	input := services.ProvisionInput{
		UserCode: os.Args[1],
		Name:     os.Args[2],
		Role:     models.Role(os.Args[3]),
	}
	if len(os.Args) > 4 {
		input.Password = os.Args[4]
	}

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.MySQL.Options())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	svcMgr, err := services.NewServiceManager(persistence.NewMySQLStore(db), services.ManagerOptions{
		Tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
	})
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	user, created, err := svcMgr.Auth.ProvisionUser(ctx, input)
	if err != nil {
		log.Fatalf("Failed to ensure user: %v", err)
	}
	if created {
		log.Printf("✅ Created %s user %s (%s)", user.Type, user.UserCode, user.Name)
	} else {
		log.Printf("ℹ️  User %s already exists as %s", user.UserCode, user.Type)
	}
}
