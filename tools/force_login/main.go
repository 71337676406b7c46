package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/internal/config"
	"github.com/christoffels/menu/internal/infrastructure/database"
	"github.com/christoffels/menu/internal/infrastructure/persistence"
	"github.com/christoffels/menu/pkg/auth"
)

// Prints a session token for a user code without checking its password.
// Intended for E2E tests against a MySQL-backed deployment.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: force_login <user_code>")
	}
	code := os.Args[1]

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

	result, err := svcMgr.Auth.ForceLogin(ctx, code, services.ClientInfo{IPAddress: "127.0.0.1", UserAgent: "E2E Test Force Login"})
	if err != nil {
		log.Fatalf("Failed to open session for %s: %v", code, err)
	}

	// Output Token to stdout
	fmt.Print(result.Token)
}
