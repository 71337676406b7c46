package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Options describes how to reach the MySQL server
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	MaxConns int
}

var tlsOnce sync.Once // Ensure TLS config is registered only once

// DSN builds the driver connection string. Remote hosts get TLS.
func (o Options) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = o.User
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%s", o.Host, o.Port)
	cfg.DBName = o.Database
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	if o.isRemote() {
		cfg.TLSConfig = "menu"
	}
	return cfg.FormatDSN()
}

func (o Options) isRemote() bool {
	return o.Host != "" && o.Host != "127.0.0.1" && o.Host != "localhost"
}

// Open connects to MySQL, configures the pool and pings the server
func Open(ctx context.Context, o Options) (*sql.DB, error) {
	if o.isRemote() {
		tlsOnce.Do(func() {
			if err := mysql.RegisterTLSConfig("menu", &tls.Config{
				MinVersion: tls.VersionTLS12,
				ServerName: o.Host,
			}); err != nil {
				log.Printf("Failed to register TLS config: %v\n", err)
			}
		})
	}

	db, err := sql.Open("mysql", o.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxConns := o.MaxConns
	if maxConns <= 0 {
		maxConns = 20
	}
	// Idle must match open to avoid churning connections under load.
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
