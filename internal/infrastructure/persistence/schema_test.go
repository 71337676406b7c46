package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() TableDefinition {
	return TableDefinition{
		TableName: "menu_basket_line",
		Columns: []ColumnDefinition{
			{Name: "session_id", Type: "VARCHAR(64)"},
			{Name: "item_id", Type: "VARCHAR(64)"},
			{Name: "quantity", Type: "INT", Default: "1"},
			{Name: "image_url", Type: "VARCHAR(1024)", Nullable: true},
		},
		PrimaryKey: []string{"session_id", "item_id"},
		Indices:    []IndexDefinition{{Columns: []string{"session_id"}}},
	}
}

func TestCreateTableDDL(t *testing.T) {
	ddl, err := sampleTable().CreateTableDDL()
	require.NoError(t, err)

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS `menu_basket_line`")
	assert.Contains(t, ddl, "`quantity` INT NOT NULL DEFAULT 1")
	assert.Contains(t, ddl, "`image_url` VARCHAR(1024) NULL")
	assert.Contains(t, ddl, "PRIMARY KEY (`session_id`, `item_id`)")
	assert.Contains(t, ddl, "KEY `idx_menu_basket_line_session_id` (`session_id`)")
}

func TestTableDefinitionValidate(t *testing.T) {
	def := sampleTable()
	def.TableName = "basket"
	assert.Error(t, def.Validate())

	def = sampleTable()
	def.PrimaryKey = []string{"missing"}
	assert.Error(t, def.Validate())

	def = sampleTable()
	def.PrimaryKey = nil
	assert.Error(t, def.Validate())
}

func TestSchemaRepository_EnsureTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS `menu_basket_line`").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, NewSchemaRepository(db).EnsureTables(context.Background(), []TableDefinition{sampleTable()}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("SET FOREIGN_KEY_CHECKS = 0").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS `menu_item`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DROP TABLE IF EXISTS `menu_user`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("SET FOREIGN_KEY_CHECKS = 1").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSchemaRepository(db)
	require.NoError(t, repo.DropTables(context.Background(), []string{"menu_item", "menu_user"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropTables_RefusesForeignTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSchemaRepository(db)
	assert.Error(t, repo.DropTables(context.Background(), []string{"menu_item", "accounts"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
