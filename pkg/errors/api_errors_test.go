package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFoundError("MenuItem", "42"), http.StatusNotFound},
		{"validation", NewValidationError("price", "must be positive"), http.StatusBadRequest},
		{"permission", NewPermissionError("remove", "menu items", "employee"), http.StatusForbidden},
		{"unauthorized", NewUnauthorizedError("bad code"), http.StatusUnauthorized},
		{"conflict", NewConflictError("User", "user_code", "EMP001"), http.StatusConflict},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"wrapped validation", fmt.Errorf("add item: %w", NewValidationError("name", "required")), http.StatusBadRequest},
		{"revoked sentinel", fmt.Errorf("validate: %w", ErrSessionRevoked), http.StatusUnauthorized},
		{"plain", fmt.Errorf("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "MenuItem with ID '42' not found", NewNotFoundError("MenuItem", "42").Error())
	assert.Equal(t, "MenuItem not found", NewNotFoundError("MenuItem", "").Error())
	assert.Equal(t, "permission denied: customer cannot add menu items", NewPermissionError("add", "menu items", "customer").Error())
	assert.Equal(t, "permission denied: cannot add menu items", NewPermissionError("add", "menu items", "").Error())
	assert.Equal(t, "User already exists with user_code='EMP001'", NewConflictError("User", "user_code", "EMP001").Error())
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", NewPermissionError("edit", "price", "employee"))
	assert.True(t, IsPermission(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.True(t, IsConflict(NewConflictError("User", "", "")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("")))
	assert.True(t, IsValidation(NewValidationError("", "bad")))
}

func TestToResponse(t *testing.T) {
	resp := ToResponse(NewValidationError("quantity", "must be greater than zero"))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Contains(t, resp.Message, "quantity")

	assert.Equal(t, "UNAUTHORIZED", GetErrorCode(ErrSessionExpired))
	assert.Equal(t, "UNKNOWN_ERROR", GetErrorCode(fmt.Errorf("x")))
}
