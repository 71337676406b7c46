package persistence

import (
	"fmt"
	"strings"

	"github.com/christoffels/menu/pkg/constants"
)

// ColumnDefinition represents a single column in a table
type ColumnDefinition struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Nullable      bool   `json:"nullable,omitempty"`
	Unique        bool   `json:"unique,omitempty"`
	Default       string `json:"default,omitempty"`
	AutoIncrement bool   `json:"auto_increment,omitempty"`
}

// IndexDefinition represents an index on a table
type IndexDefinition struct {
	Name    string   `json:"name,omitempty"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique,omitempty"`
}

// TableDefinition represents a complete table schema
type TableDefinition struct {
	TableName   string             `json:"table_name"`
	Description string             `json:"description"`
	Columns     []ColumnDefinition `json:"columns"`
	PrimaryKey  []string           `json:"primary_key"`
	Indices     []IndexDefinition  `json:"indices,omitempty"`
}

// Validate checks the definition before any DDL is generated
func (d TableDefinition) Validate() error {
	if !constants.IsMenuTable(d.TableName) {
		return fmt.Errorf("table name '%s' must start with %q", d.TableName, constants.TablePrefix)
	}
	if len(d.Columns) == 0 {
		return fmt.Errorf("table '%s' has no columns", d.TableName)
	}
	if len(d.PrimaryKey) == 0 {
		return fmt.Errorf("table '%s' has no primary key", d.TableName)
	}
	known := make(map[string]bool, len(d.Columns))
	for _, col := range d.Columns {
		if col.Name == "" || col.Type == "" {
			return fmt.Errorf("table '%s' has a column without name or type", d.TableName)
		}
		known[col.Name] = true
	}
	for _, pk := range d.PrimaryKey {
		if !known[pk] {
			return fmt.Errorf("primary key column '%s' not defined on '%s'", pk, d.TableName)
		}
	}
	return nil
}

// CreateTableDDL renders a CREATE TABLE IF NOT EXISTS statement for MySQL
func (d TableDefinition) CreateTableDDL() (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(d.Columns)+len(d.Indices)+1)
	for _, col := range d.Columns {
		parts = append(parts, buildColumnDDL(col))
	}
	parts = append(parts, fmt.Sprintf("PRIMARY KEY (%s)", quoteColumns(d.PrimaryKey)))
	for _, idx := range d.Indices {
		parts = append(parts, buildIndexDDL(d.TableName, idx))
	}

	var ddl strings.Builder
	ddl.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` (\n  ", d.TableName))
	ddl.WriteString(strings.Join(parts, ",\n  "))
	ddl.WriteString("\n) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci")
	return ddl.String(), nil
}

func buildColumnDDL(col ColumnDefinition) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("`%s` %s", col.Name, col.Type))
	if col.Nullable {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}
	if col.AutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}
	if col.Default != "" {
		b.WriteString(" DEFAULT " + col.Default)
	}
	if col.Unique {
		b.WriteString(" UNIQUE")
	}
	return b.String()
}

func buildIndexDDL(table string, idx IndexDefinition) string {
	name := idx.Name
	if name == "" {
		name = fmt.Sprintf("idx_%s_%s", table, strings.Join(idx.Columns, "_"))
	}
	kind := "KEY"
	if idx.Unique {
		kind = "UNIQUE KEY"
	}
	return fmt.Sprintf("%s `%s` (%s)", kind, name, quoteColumns(idx.Columns))
}

func quoteColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = "`" + c + "`"
	}
	return strings.Join(quoted, ", ")
}
