package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/christoffels/menu/pkg/constants"
)

// SchemaRepository applies table definitions to the database
type SchemaRepository struct {
	db *sql.DB
}

// NewSchemaRepository creates a new SchemaRepository
func NewSchemaRepository(db *sql.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// CreateTable creates a table if it does not already exist
func (r *SchemaRepository) CreateTable(ctx context.Context, def TableDefinition) error {
	ddl, err := def.CreateTableDDL()
	if err != nil {
		return fmt.Errorf("invalid table definition: %w", err)
	}

	log.Printf("📐 Ensuring table: %s", def.TableName)
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		log.Printf("❌ Failed to create table %s: %v", def.TableName, err)
		return fmt.Errorf("failed to create table %s: %w", def.TableName, err)
	}
	return nil
}

// EnsureTables creates every table in order, stopping at the first failure
func (r *SchemaRepository) EnsureTables(ctx context.Context, defs []TableDefinition) error {
	for _, def := range defs {
		if err := r.CreateTable(ctx, def); err != nil {
			return err
		}
	}
	return nil
}

// DropTables removes the named tables. Foreign key checks are disabled for the
// duration so the order does not matter.
func (r *SchemaRepository) DropTables(ctx context.Context, tables []string) error {
	for _, table := range tables {
		if !constants.IsMenuTable(table) {
			return fmt.Errorf("refusing to drop non-menu table %q", table)
		}
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return fmt.Errorf("failed to disable foreign key checks: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
			log.Printf("⚠️ Failed to re-enable foreign key checks: %v", err)
		}
	}()

	for _, table := range tables {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
		log.Printf("Dropped table: %s", table)
	}
	return nil
}
