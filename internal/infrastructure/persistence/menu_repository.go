package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
)

// MenuRepository persists menu items in MySQL. The auto-increment position
// column preserves insertion order.
type MenuRepository struct {
	db *sql.DB
}

var _ ports.MenuRepository = (*MenuRepository)(nil)

// NewMenuRepository creates a new MenuRepository
func NewMenuRepository(db *sql.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

var menuColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s",
	constants.FieldID, constants.FieldName, constants.FieldDescription,
	constants.FieldCourse, constants.FieldPrice, constants.FieldImageURL)

// List returns every item in insertion order
func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC",
		menuColumns, constants.TableMenuItem, constants.FieldPosition)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Get returns the item with the given id, or nil when it does not exist
func (r *MenuRepository) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1",
		menuColumns, constants.TableMenuItem, constants.FieldID)

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Insert appends an item
func (r *MenuRepository) Insert(ctx context.Context, item models.MenuItem) error {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?)",
		constants.TableMenuItem, menuColumns)

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, string(item.Course), item.Price, nullString(item.ImageURL))
	return err
}

// Update overwrites the mutable fields of an existing item
func (r *MenuRepository) Update(ctx context.Context, item models.MenuItem) error {
	query := fmt.Sprintf("UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ? WHERE %s = ?",
		constants.TableMenuItem,
		constants.FieldName, constants.FieldDescription, constants.FieldCourse,
		constants.FieldPrice, constants.FieldImageURL, constants.FieldID)

	_, err := r.db.ExecContext(ctx, query,
		item.Name, item.Description, string(item.Course), item.Price, nullString(item.ImageURL), item.ID)
	return err
}

// Delete removes an item, reporting whether a row existed
func (r *MenuRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", constants.TableMenuItem, constants.FieldID)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Scannable is satisfied by *sql.Row and *sql.Rows
type Scannable interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row Scannable) (*models.MenuItem, error) {
	var item models.MenuItem
	var course string
	var image sql.NullString
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &course, &item.Price, &image); err != nil {
		return nil, err
	}
	item.Course = models.Course(course)
	if image.Valid {
		img := image.String
		item.ImageURL = &img
	}
	return &item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
