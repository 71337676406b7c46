package models

import (
	"github.com/christoffels/menu/pkg/constants"
)

// Role determines which mutating operations a user may perform.
type Role string

const (
	RoleOwner    Role = constants.RoleOwner
	RoleEmployee Role = constants.RoleEmployee
	RoleCustomer Role = constants.RoleCustomer
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// User is a person who can log in with a user code.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	UserCode     string `json:"user_code"`
	PasswordHash string `json:"-"`
	Type         Role   `json:"type"`
}

// HasPassword reports whether login requires a password in addition to the code
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ToSession converts the user into the principal carried by requests
func (u *User) ToSession() *UserSession {
	return &UserSession{ID: u.ID, Name: u.Name, UserCode: u.UserCode, Role: u.Type}
}

// UserSession is the authenticated principal attached to a request
type UserSession struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UserCode  string `json:"user_code"`
	Role      Role   `json:"type"`
	SessionID string `json:"-"`
}

// Permissions is the set of menu actions a user may perform
type Permissions struct {
	CanAddItem    bool `json:"can_add_item"`
	CanEditItem   bool `json:"can_edit_item"`
	CanEditPrice  bool `json:"can_edit_price"`
	CanRemoveItem bool `json:"can_remove_item"`
}
