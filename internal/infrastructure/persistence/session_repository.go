package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/constants"
)

// SessionRepository handles database operations for user sessions
type SessionRepository struct {
	db *sql.DB
	tx *TransactionManager
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db, tx: NewTransactionManager(db)}
}

// Insert creates a new session
func (r *SessionRepository) Insert(ctx context.Context, session *models.Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, expires_at, ip_address, user_agent, is_revoked, last_activity, created_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		constants.TableSession)

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.ExpiresAt,
		session.IPAddress,
		session.UserAgent,
		session.IsRevoked,
		session.LastActivity,
		session.CreatedDate,
	)
	return err
}

// Get retrieves a session by its ID (the JWT jti), nil when absent
func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, expires_at, ip_address, user_agent, is_revoked, last_activity, created_date
		FROM %s
		WHERE id = ? LIMIT 1`,
		constants.TableSession)

	var s models.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.UserID,
		&s.ExpiresAt,
		&s.IPAddress,
		&s.UserAgent,
		&s.IsRevoked,
		&s.LastActivity,
		&s.CreatedDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Revoke marks a session as revoked
func (r *SessionRepository) Revoke(ctx context.Context, id string) error {
	query := fmt.Sprintf("UPDATE %s SET is_revoked = 1 WHERE id = ?", constants.TableSession)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// Touch updates the last activity timestamp
func (r *SessionRepository) Touch(ctx context.Context, id string, at time.Time) error {
	query := fmt.Sprintf("UPDATE %s SET last_activity = ? WHERE id = ?", constants.TableSession)
	_, err := r.db.ExecContext(ctx, query, at, id)
	return err
}

// DeleteExpired removes revoked sessions and sessions expired before cutoff
func (r *SessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) ([]string, error) {
	var ids []string
	err := r.tx.WithTransaction(ctx, func(tx *sql.Tx) error {
		selectQuery := fmt.Sprintf("SELECT id FROM %s WHERE expires_at < ? OR is_revoked = 1 FOR UPDATE", constants.TableSession)
		rows, err := tx.QueryContext(ctx, selectQuery, cutoff)
		if err != nil {
			return err
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return err
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE expires_at < ? OR is_revoked = 1", constants.TableSession)
		_, err = tx.ExecContext(ctx, deleteQuery, cutoff)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
