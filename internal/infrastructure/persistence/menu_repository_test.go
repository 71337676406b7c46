package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*MenuRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return NewMenuRepository(db), mock, func() { db.Close() }
}

func TestMenuRepository_List(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "course", "price", "image_url"}).
		AddRow("1", "Tomato Bruschetta", "Fresh tomatoes with basil on toast", "Starters", 65.0, nil).
		AddRow("2", "Grilled Ribeye", "Charred ribeye with herb butter", "Mains", 220.0, "ribeye.jpg")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, course, price, image_url FROM menu_item ORDER BY position ASC")).
		WillReturnRows(rows)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.CourseStarters, items[0].Course)
	assert.Nil(t, items[0].ImageURL)
	require.NotNil(t, items[1].ImageURL)
	assert.Equal(t, "ribeye.jpg", *items[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_GetMissing(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("FROM menu_item WHERE id = ? LIMIT 1")).
		WithArgs("404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "course", "price", "image_url"}))

	item, err := repo.Get(context.Background(), "404")
	assert.NoError(t, err)
	assert.Nil(t, item)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_InsertUpdateDelete(t *testing.T) {
	repo, mock, done := newMock(t)
	defer done()

	item := models.MenuItem{ID: "abc", Name: "Cheesecake", Description: "Baked", Course: models.CourseDesserts, Price: 85}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO menu_item (id, name, description, course, price, image_url) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs("abc", "Cheesecake", "Baked", "Desserts", 85.0, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Insert(context.Background(), item))

	item.Price = 90
	mock.ExpectExec(regexp.QuoteMeta("UPDATE menu_item SET name = ?, description = ?, course = ?, price = ?, image_url = ? WHERE id = ?")).
		WithArgs("Cheesecake", "Baked", "Desserts", 90.0, nil, "abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), item))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_item WHERE id = ?")).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	deleted, err := repo.Delete(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM menu_item WHERE id = ?")).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 0))
	deleted, err = repo.Delete(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
