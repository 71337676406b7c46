package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasketRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM menu_basket_line").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "name", "description", "course", "price", "image_url", "quantity"}).
			AddRow("1", "Tomato Bruschetta", "Fresh", "Starters", 65.0, nil, 2))

	basket, err := NewBasketRepository(db).Get(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, 130.0, basket.Total())
	assert.Equal(t, "s1", basket.SessionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	basket := &models.Basket{SessionID: "s1", Items: []models.BasketItem{
		{MenuItem: models.MenuItem{ID: "1", Name: "Bruschetta", Description: "d", Course: models.CourseStarters, Price: 65}, Quantity: 2},
		{MenuItem: models.MenuItem{ID: "2", Name: "Ribeye", Description: "d", Course: models.CourseMains, Price: 220}, Quantity: 1},
	}}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM menu_basket_line WHERE session_id").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO menu_basket_line").
		WithArgs("s1", "1", 0, "Bruschetta", "d", "Starters", 65.0, nil, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO menu_basket_line").
		WithArgs("s1", "2", 1, "Ribeye", "d", "Mains", 220.0, nil, 1).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, NewBasketRepository(db).Save(context.Background(), basket))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_SaveRetriesDeadlock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	basket := &models.Basket{SessionID: "s1"}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM menu_basket_line").WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM menu_basket_line").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, NewBasketRepository(db).Save(context.Background(), basket))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBasketRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM menu_basket_line WHERE session_id").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, NewBasketRepository(db).Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
