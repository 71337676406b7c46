package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/christoffels/menu/internal/application/services"
	"github.com/christoffels/menu/internal/bootstrap"
	"github.com/christoffels/menu/internal/config"
	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/internal/infrastructure/database"
	"github.com/christoffels/menu/internal/infrastructure/metrics"
	"github.com/christoffels/menu/internal/infrastructure/persistence"
	"github.com/christoffels/menu/internal/interfaces/rest"
	"github.com/christoffels/menu/pkg/auth"
	"github.com/christoffels/menu/pkg/constants"
)

func main() {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.UsesDefaultSecret() {
		log.Println("⚠️  JWT_SECRET not set, using the development default")
	}

	ctx := context.Background()

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	if db != nil {
		defer db.Close()
	}

	if cfg.SeedData {
		if err := bootstrap.InitializeSeedData(ctx, store); err != nil {
			log.Fatalf("Failed to initialize seed data: %v", err)
		}
	}

	svcMgr, err := services.NewServiceManager(store, services.ManagerOptions{
		Tokens:        auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL),
		MenuItemRules: cfg.MenuItemRules,
		SweepSchedule: cfg.SessionSweepSchedule,
	})
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}
	log.Println("🔧 Service manager initialized")

	svcMgr.EventBus.Subscribe(events.MenuItemCreated, logMenuEvent("➕ Menu item created"))
	svcMgr.EventBus.Subscribe(events.MenuItemUpdated, logMenuEvent("✏️  Menu item updated"))
	svcMgr.EventBus.Subscribe(events.MenuItemRemoved, logMenuEvent("🗑️  Menu item removed"))

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
		collector.Observe(svcMgr.EventBus, events.All...)
	}

	router := rest.NewRouter(svcMgr, cfg.CORSOrigins, collector)

	if svcMgr.Scheduler != nil {
		svcMgr.Scheduler.Start()
	}

	port := cfg.Port
	log.Println("\n═══════════════════════════════════════════════════════════════════════════")
	log.Println("🚀 Christoffel's Menu Backend Started Successfully")
	log.Println("═══════════════════════════════════════════════════════════════════════════")
	log.Printf("\n📍 Server:         http://localhost:%s", port)
	log.Printf("🔐 Auth API:       http://localhost:%s/api/auth", port)
	log.Printf("🍽️  Menu API:       http://localhost:%s/api/menu", port)
	log.Printf("🧺 Basket API:     http://localhost:%s/api/basket", port)
	log.Printf("💾 Store:          %s", cfg.StoreDriver)
	if collector != nil {
		log.Printf("📈 Metrics:        http://localhost:%s/metrics", port)
	}
	log.Printf("💚 Health check:   http://localhost:%s/health\n", port)
	svcMgr.EventBus.PublishAsync(events.SystemStartup, nil)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if svcMgr.Scheduler != nil {
		svcMgr.Scheduler.Stop()
		log.Println("🛑 Scheduler stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}

// openStore returns the repositories selected by STORE_DRIVER. The *sql.DB is nil for the memory store.
func openStore(ctx context.Context, cfg *config.Config) (*ports.Store, *sql.DB, error) {
	if cfg.StoreDriver != constants.DriverMySQL {
		log.Println("🧠 Using in-memory store (state resets on restart)")
		return persistence.NewMemoryStore(), nil, nil
	}

	db, err := database.Open(ctx, cfg.MySQL.Options())
	if err != nil {
		return nil, nil, err
	}
	log.Println("✅ Database connection established")

	if err := bootstrap.InitializeSchema(ctx, persistence.NewSchemaRepository(db)); err != nil {
		db.Close()
		return nil, nil, err
	}
	return persistence.NewMySQLStore(db), db, nil
}

func logMenuEvent(prefix string) ports.EventHandler {
	return func(_ context.Context, payload interface{}) error {
		if p, ok := payload.(services.MenuItemEventPayload); ok {
			actor := constants.AnonymousUserName
			if p.Actor != nil {
				actor = p.Actor.UserCode
			}
			log.Printf("%s: %s (%s) by %s", prefix, p.Item.Name, p.Item.ID, actor)
		}
		return nil
	}
}
