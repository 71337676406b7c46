package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/christoffels/menu/internal/domain/events"
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/internal/domain/ports"
	"github.com/christoffels/menu/pkg/auth"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
	"github.com/christoffels/menu/pkg/utils"
)

// AuthService handles authentication, signup and session management
type AuthService struct {
	users       ports.UserRepository
	sessions    ports.SessionRepository
	baskets     ports.BasketRepository
	tokens      *auth.TokenManager
	permissions *PermissionService
	events      ports.EventPublisher
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(store *ports.Store, tokens *auth.TokenManager, permissions *PermissionService, publisher ports.EventPublisher) *AuthService {
	return &AuthService{
		users:       store.Users,
		sessions:    store.Sessions,
		baskets:     store.Baskets,
		tokens:      tokens,
		permissions: permissions,
		events:      publisher,
		now:         time.Now,
	}
}

// ClientInfo describes the caller of a login or signup
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string       `json:"token"`
	User      *models.User `json:"user"`
	SessionID string       `json:"-"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// SignupInput is the payload for creating a customer account
type SignupInput struct {
	Name     string `json:"name"`
	UserCode string `json:"user_code"`
	Password string `json:"password,omitempty"`
}

// Login authenticates a user by code (and password when one is set) and creates a session
func (s *AuthService) Login(ctx context.Context, code, password string, client ClientInfo) (*LoginResult, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return nil, errors.NewValidationError(constants.FieldUserCode, "is required")
	}

	user, err := s.users.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		log.Printf("⚠️ Login failed for %s: user not found", code)
		return nil, errors.NewUnauthorizedError("Invalid user code")
	}

	if user.HasPassword() && !auth.VerifyPassword(password, user.PasswordHash) {
		log.Printf("⚠️ Login failed for %s: invalid password", code)
		return nil, errors.NewUnauthorizedError("Invalid user code or password")
	}

	result, err := s.createSession(ctx, user, client)
	if err != nil {
		return nil, err
	}

	publishOrLog(ctx, s.events, events.UserLoggedIn, AuthEventPayload{UserID: user.ID, UserCode: user.UserCode, SessionID: result.SessionID})
	return result, nil
}

// Signup creates a customer account and logs it in
func (s *AuthService) Signup(ctx context.Context, input SignupInput, client ClientInfo) (*LoginResult, error) {
	name := strings.TrimSpace(input.Name)
	code := utils.NormalizeCode(input.UserCode)

	if name == "" {
		return nil, errors.NewValidationError(constants.FieldName, "is required")
	}
	if code == "" {
		return nil, errors.NewValidationError(constants.FieldUserCode, "is required")
	}
	if !auth.IsValidUserCode(code) {
		return nil, errors.NewValidationError(constants.FieldUserCode, "must be 3-32 letters, digits, '-' or '_'")
	}

	existing, err := s.users.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("user", constants.FieldUserCode, code)
	}

	user := &models.User{
		ID:       utils.GenerateID(),
		Name:     name,
		UserCode: code,
		Type:     models.RoleCustomer,
	}

	if input.Password != "" {
		if err := auth.ValidatePasswordStrength(input.Password); err != nil {
			return nil, errors.NewValidationError("password", err.Error())
		}
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, errors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("👤 New customer signed up: %s (%s)", user.Name, user.UserCode)

	result, err := s.createSession(ctx, user, client)
	if err != nil {
		return nil, err
	}

	publishOrLog(ctx, s.events, events.UserSignedUp, AuthEventPayload{UserID: user.ID, UserCode: user.UserCode, SessionID: result.SessionID})
	return result, nil
}

func (s *AuthService) createSession(ctx context.Context, user *models.User, client ClientInfo) (*LoginResult, error) {
	token, claims, err := s.tokens.GenerateToken(auth.UserSession{
		ID:       user.ID,
		Name:     user.Name,
		UserCode: user.UserCode,
		Role:     string(user.Type),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.now()
	session := &models.Session{
		ID:           claims.ID,
		UserID:       user.ID,
		ExpiresAt:    claims.ExpiresAt.Time,
		IPAddress:    client.IPAddress,
		UserAgent:    client.UserAgent,
		LastActivity: now,
		CreatedDate:  now,
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &LoginResult{
		Token:     token,
		User:      user,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// ValidateSession checks the token signature and expiry, then the session record
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*models.UserSession, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, errors.NewUnauthorizedError("Invalid or expired token")
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.IsRevoked {
		return nil, errors.ErrSessionRevoked
	}
	now := s.now()
	if !session.IsActive(now) {
		return nil, errors.ErrSessionExpired
	}

	if err := s.sessions.Touch(ctx, session.ID, now); err != nil {
		log.Printf("⚠️ Failed to update session activity for %s: %v", session.ID, err)
	}

	return &models.UserSession{
		ID:        claims.User.ID,
		Name:      claims.User.Name,
		UserCode:  claims.User.UserCode,
		Role:      models.Role(claims.User.Role),
		SessionID: session.ID,
	}, nil
}

// Logout revokes the session and discards its basket
func (s *AuthService) Logout(ctx context.Context, user *models.UserSession) error {
	if user == nil || user.SessionID == "" {
		return errors.NewUnauthorizedError("No active session")
	}
	if err := s.sessions.Revoke(ctx, user.SessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if err := s.baskets.Delete(ctx, user.SessionID); err != nil {
		return fmt.Errorf("failed to discard basket: %w", err)
	}

	publishOrLog(ctx, s.events, events.UserLoggedOut, AuthEventPayload{UserID: user.ID, UserCode: user.UserCode, SessionID: user.SessionID})
	return nil
}

// Me resolves the session user to the stored user record
func (s *AuthService) Me(ctx context.Context, user *models.UserSession) (*models.User, models.Permissions, error) {
	if user == nil {
		return nil, models.Permissions{}, errors.NewUnauthorizedError("No active session")
	}
	record, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		return nil, models.Permissions{}, fmt.Errorf("failed to load user: %w", err)
	}
	if record == nil {
		return nil, models.Permissions{}, errors.NewNotFoundError("user", user.ID)
	}
	return record, s.permissions.Permissions(user), nil
}

// ListUsers returns every account; owner only
func (s *AuthService) ListUsers(ctx context.Context, user *models.UserSession) ([]*models.User, error) {
	if err := s.permissions.Require(user, ActionListUsers); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// SweepExpiredSessions removes expired or revoked sessions and their baskets
func (s *AuthService) SweepExpiredSessions(ctx context.Context) ([]string, error) {
	ids, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	for _, id := range ids {
		if err := s.baskets.Delete(ctx, id); err != nil {
			return ids, fmt.Errorf("failed to discard basket for session %s: %w", id, err)
		}
	}
	if len(ids) > 0 {
		publishOrLog(ctx, s.events, events.SessionsSwept, SweepEventPayload{SessionIDs: ids})
	}
	return ids, nil
}

// ProvisionInput describes an account created by an operator rather than through signup
type ProvisionInput struct {
	Name     string
	UserCode string
	Role     models.Role
	Password string
}

// ProvisionUser creates an account of any role. It returns the existing user
// unchanged when the code is already taken.
func (s *AuthService) ProvisionUser(ctx context.Context, input ProvisionInput) (*models.User, bool, error) {
	name := strings.TrimSpace(input.Name)
	code := utils.NormalizeCode(input.UserCode)
	if name == "" {
		return nil, false, errors.NewValidationError(constants.FieldName, "is required")
	}
	if !auth.IsValidUserCode(code) {
		return nil, false, errors.NewValidationError(constants.FieldUserCode, "must be 3-32 letters, digits, '-' or '_'")
	}
	if !input.Role.IsValid() {
		return nil, false, errors.NewValidationError(constants.FieldType, fmt.Sprintf("unknown role %q", input.Role))
	}

	existing, err := s.users.FindByCode(ctx, code)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	user := &models.User{ID: utils.GenerateID(), Name: name, UserCode: code, Type: input.Role}
	if input.Password != "" {
		if err := auth.ValidatePasswordStrength(input.Password); err != nil {
			return nil, false, errors.NewValidationError("password", err.Error())
		}
		if user.PasswordHash, err = auth.HashPassword(input.Password); err != nil {
			return nil, false, errors.NewInternalError("failed to hash password", err)
		}
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// ForceLogin opens a session for a user code without checking the password.
// It backs operator tooling and is not reachable over HTTP.
func (s *AuthService) ForceLogin(ctx context.Context, code string, client ClientInfo) (*LoginResult, error) {
	code = utils.NormalizeCode(code)
	user, err := s.users.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", code)
	}
	return s.createSession(ctx, user, client)
}
