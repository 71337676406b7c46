package utils

import "github.com/google/uuid"

// GenerateID returns a random (v4) UUID for new records.
// uuid.NewString panics only if the system entropy source fails.
func GenerateID() string {
	return uuid.NewString()
}
