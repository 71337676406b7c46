package services

import (
	"github.com/christoffels/menu/internal/domain/models"
	"github.com/christoffels/menu/pkg/constants"
	"github.com/christoffels/menu/pkg/errors"
)

// Actions checked by PermissionService.Require
const (
	ActionAddItem    = "add"
	ActionEditItem   = "edit"
	ActionEditPrice  = "change the price of"
	ActionRemoveItem = "remove"
	ActionListUsers  = "list"
)

// PermissionService answers role-based questions about menu mutations.
// All predicates are pure functions of the role; a nil user is denied.
type PermissionService struct{}

// NewPermissionService creates a new PermissionService
func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

func isStaff(user *models.UserSession) bool {
	return user != nil && (user.Role == models.RoleOwner || user.Role == models.RoleEmployee)
}

func isOwner(user *models.UserSession) bool {
	return user != nil && user.Role == models.RoleOwner
}

// CanAddItem reports whether the user may create menu items
func (ps *PermissionService) CanAddItem(user *models.UserSession) bool {
	return isStaff(user)
}

// CanEditItem reports whether the user may edit menu item details
func (ps *PermissionService) CanEditItem(user *models.UserSession) bool {
	return isStaff(user)
}

// CanEditPrice reports whether the user may change an existing item's price
func (ps *PermissionService) CanEditPrice(user *models.UserSession) bool {
	return isOwner(user)
}

// CanRemoveItem reports whether the user may delete menu items
func (ps *PermissionService) CanRemoveItem(user *models.UserSession) bool {
	return isOwner(user)
}

// CanListUsers reports whether the user may see every account
func (ps *PermissionService) CanListUsers(user *models.UserSession) bool {
	return isOwner(user)
}

// Permissions returns every flag for the user at once
func (ps *PermissionService) Permissions(user *models.UserSession) models.Permissions {
	return models.Permissions{
		CanAddItem:    ps.CanAddItem(user),
		CanEditItem:   ps.CanEditItem(user),
		CanEditPrice:  ps.CanEditPrice(user),
		CanRemoveItem: ps.CanRemoveItem(user),
	}
}

// Require returns a PermissionError when the user may not perform action
func (ps *PermissionService) Require(user *models.UserSession, action string) error {
	var allowed bool
	resource := "menu items"
	switch action {
	case ActionAddItem:
		allowed = ps.CanAddItem(user)
	case ActionEditItem:
		allowed = ps.CanEditItem(user)
	case ActionEditPrice:
		allowed = ps.CanEditPrice(user)
	case ActionRemoveItem:
		allowed = ps.CanRemoveItem(user)
	case ActionListUsers:
		allowed = ps.CanListUsers(user)
		resource = "users"
	}
	if allowed {
		return nil
	}

	role := constants.AnonymousUserName
	if user != nil {
		role = string(user.Role)
	}
	return errors.NewPermissionError(action, resource, role)
}
