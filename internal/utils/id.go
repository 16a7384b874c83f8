package utils

import "github.com/google/uuid"

// NewID returns a random identifier used for object-store keys.
func NewID() string {
	return uuid.NewString()
}
