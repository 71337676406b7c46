package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/infrastructure/persistence"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeSeedData_Idempotent(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, InitializeSeedData(ctx, store))
	require.NoError(t, InitializeSeedData(ctx, store))

	users, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	owner, err := store.Users.FindByCode(ctx, "owner001")
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "Christoffel", owner.Name)
	assert.Equal(t, models.RoleOwner, owner.Type)

	items, err := store.Menu.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Tomato Bruschetta", items[0].Name)
	assert.Equal(t, models.CourseStarters, items[0].Course)
	assert.Equal(t, 220.0, items[1].Price)
}

func TestInitializeSeedData_KeepsEditedItems(t *testing.T) {
	store := persistence.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Menu.Insert(ctx, models.MenuItem{ID: "1", Name: "House Bruschetta", Description: "Edited", Course: models.CourseStarters, Price: 70}))

	require.NoError(t, InitializeSeedData(ctx, store))

	item, err := store.Menu.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "House Bruschetta", item.Name)
}

func TestGetMenuTableDefinitions(t *testing.T) {
	defs, err := GetMenuTableDefinitions()
	require.NoError(t, err)

	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.TableName
	}
	assert.ElementsMatch(t, constants.AllTables(), names)
}

type recordingCreator struct {
	defs []persistence.TableDefinition
	err  error
}

func (r *recordingCreator) EnsureTables(_ context.Context, defs []persistence.TableDefinition) error {
	r.defs = defs
	return r.err
}

func TestInitializeSchema(t *testing.T) {
	creator := &recordingCreator{}
	require.NoError(t, InitializeSchema(context.Background(), creator))
	assert.Len(t, creator.defs, 4)

	creator.err = fmt.Errorf("boom")
	assert.Error(t, InitializeSchema(context.Background(), creator))
}

func TestInitializeSchema_WithSchemaRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	defs, err := GetMenuTableDefinitions()
	require.NoError(t, err)
	for _, def := range defs {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS `" + def.TableName + "`").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, InitializeSchema(context.Background(), persistence.NewSchemaRepository(db)))
	assert.NoError(t, mock.ExpectationsWereMet())

	ddl, err := defs[0].CreateTableDDL()
	require.NoError(t, err)
	assert.True(t, strings.Contains(ddl, "`position` BIGINT NOT NULL AUTO_INCREMENT"))
}
