package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
)

// BasketRepository stores basket lines, one row per (session, item)
type BasketRepository struct {
	db *sql.DB
	tx *TransactionManager
}

var _ ports.BasketRepository = (*BasketRepository)(nil)

func NewBasketRepository(db *sql.DB) *BasketRepository {
	return &BasketRepository{db: db, tx: NewTransactionManager(db)}
}

// Get loads the lines of a session's basket in insertion order
func (r *BasketRepository) Get(ctx context.Context, sessionID string) (*models.Basket, error) {
	query := fmt.Sprintf(`
		SELECT item_id, name, description, course, price, image_url, quantity
		FROM %s
		WHERE session_id = ?
		ORDER BY position ASC`,
		constants.TableBasket)

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	basket := &models.Basket{SessionID: sessionID, Items: make([]models.BasketItem, 0)}
	for rows.Next() {
		var line models.BasketItem
		var course string
		var image sql.NullString
		if err := rows.Scan(&line.ID, &line.Name, &line.Description, &course, &line.Price, &image, &line.Quantity); err != nil {
			return nil, err
		}
		line.Course = models.Course(course)
		if image.Valid {
			img := image.String
			line.ImageURL = &img
		}
		basket.Items = append(basket.Items, line)
	}
	return basket, rows.Err()
}

// Save replaces the stored lines of the basket in one transaction
func (r *BasketRepository) Save(ctx context.Context, basket *models.Basket) error {
	return r.tx.WithRetry(ctx, func(tx *sql.Tx) error {
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE session_id = ?", constants.TableBasket)
		if _, err := tx.ExecContext(ctx, deleteQuery, basket.SessionID); err != nil {
			return err
		}

		insertQuery := fmt.Sprintf(`
			INSERT INTO %s (session_id, item_id, position, name, description, course, price, image_url, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			constants.TableBasket)
		for i, line := range basket.Items {
			if _, err := tx.ExecContext(ctx, insertQuery,
				basket.SessionID, line.ID, i, line.Name, line.Description,
				string(line.Course), line.Price, nullString(line.ImageURL), line.Quantity,
			); err != nil {
				return err
			}
		}
		return nil
	}, 3)
}

// Delete drops every line of a session's basket
func (r *BasketRepository) Delete(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE session_id = ?", constants.TableBasket)
	_, err := r.db.ExecContext(ctx, query, sessionID)
	return err
}
