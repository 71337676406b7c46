package auth

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var userCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePasswordStrength checks the optional password set at signup.
// bcrypt ignores input past 72 bytes so longer passwords are rejected.
func ValidatePasswordStrength(password string) error {
	if len(password) < 4 {
		return errors.New("password must be at least 4 characters long")
	}
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}
	return nil
}

// IsValidUserCode validates the login code format
func IsValidUserCode(code string) bool {
	return userCodePattern.MatchString(strings.TrimSpace(code))
}
