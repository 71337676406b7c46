package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/christoffels/menu/pkg/utils"
)

// UserRepository persists users in MySQL
type UserRepository struct {
	db *sql.DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
	constants.FieldID, constants.FieldName, constants.FieldUserCode,
	constants.FieldPassword, constants.FieldType)

// List returns all users, oldest first
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s ASC, %s ASC",
		userColumns, constants.TableUser, constants.FieldCreatedDate, constants.FieldID)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// FindByCode looks a user up by code. Codes are stored upper-case.
func (r *UserRepository) FindByCode(ctx context.Context, code string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1",
		userColumns, constants.TableUser, constants.FieldUserCode)
	return r.findOne(ctx, query, utils.NormalizeCode(code))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? LIMIT 1",
		userColumns, constants.TableUser, constants.FieldID)
	return r.findOne(ctx, query, id)
}

// Insert creates a user; a duplicate code surfaces as a ConflictError
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?, ?, ?, ?, NOW())",
		constants.TableUser, userColumns, constants.FieldCreatedDate)

	var hash sql.NullString
	if user.PasswordHash != "" {
		hash = sql.NullString{String: user.PasswordHash, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Name, utils.NormalizeCode(user.UserCode), hash, string(user.Type))
	if isDuplicateEntry(err) {
		return errors.NewConflictError("User", constants.FieldUserCode, user.UserCode)
	}
	return err
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUser(row Scannable) (*models.User, error) {
	var u models.User
	var hash sql.NullString
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.UserCode, &hash, &role); err != nil {
		return nil, err
	}
	u.PasswordHash = hash.String
	u.Type = models.Role(role)
	return &u, nil
}
